package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classifyd/internal/classifier"
	"classifyd/internal/common/fsutil"
	"classifyd/internal/config"
)

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     config.Config
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "classifyd",
		Short:         "Image classification service backed by a preloaded model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", os.Getenv("CLASSIFYD_CONFIG"), "Config file (.yaml, .json or .toml)")
	pf.String("log-level", "", "Log level: debug|info|warn|error")
	pf.String("log-format", "", "Log format: json|console")
	pf.String("model-path", "", "Model artifact; relative paths resolve against the executable directory")
	pf.String("ort-library-path", "", "ONNX Runtime shared library")
	pf.Int("intra-op-threads", 0, "Threads per inference (0 = runtime default)")
	pf.StringSlice("labels", nil, "Class labels in model output order")
	pf.Int("image-size", 0, "Side length images are resized to")
	pf.Int64("max-image-pixels", 0, "Largest accepted image, in pixels")
	pf.String("resample", "", "Resize filter: nearest|bilinear|bicubic|mitchell|lanczos2|lanczos3")
	bindFlags(a.v, pf)

	root.AddCommand(a.serveCmd(), a.predictCmd(), a.checkCmd())
	return root
}

// setup resolves configuration (flag > env > file > default) and builds the logger.
func (a *app) setup() error {
	var cfg config.Config
	if a.cfgPath != "" {
		path, err := fsutil.ExpandHome(a.cfgPath)
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Overlay(a.v)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	modelPath, err := fsutil.ResolvePath(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("model_path: %w", err)
	}
	cfg.ModelPath = modelPath
	libPath, err := fsutil.ExpandHome(cfg.ORTLibraryPath)
	if err != nil {
		return fmt.Errorf("ort_library_path: %w", err)
	}
	cfg.ORTLibraryPath = libPath

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

// newClassifier loads the configured model. The result is inert when loading
// fails; callers decide whether that is fatal.
func (a *app) newClassifier() *classifier.Classifier {
	return classifier.New(classifier.Config{
		ModelPath: a.cfg.ModelPath,
		Labels:    a.cfg.Labels,
		ImageSize: a.cfg.ImageSize,
		Resample:  a.cfg.Resample,
		MaxPixels: a.cfg.MaxImagePixels,
		Loader: &classifier.ONNXLoader{
			LibraryPath:    a.cfg.ORTLibraryPath,
			IntraOpThreads: a.cfg.IntraOpThreads,
			InputName:      a.cfg.InputName,
			OutputName:     a.cfg.OutputName,
		},
		Publisher: logPublisher{log: a.log},
		Logger:    a.log.With().Str("component", "classifier").Logger(),
	})
}

// logPublisher records classifier lifecycle events in the process log.
type logPublisher struct{ log zerolog.Logger }

func (p logPublisher) Publish(e classifier.Event) {
	p.log.Debug().Str("event", e.Name).Fields(e.Fields).Msg("classifier event")
}
