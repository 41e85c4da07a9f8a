package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"classifyd/internal/classifier"
)

// predictResult is one line of `classifyd predict` output.
type predictResult struct {
	File       string `json:"file"`
	Result     string `json:"result,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	Error      string `json:"error,omitempty"`
}

type imageClassifier interface {
	Classify(ctx context.Context, r io.Reader) (classifier.Prediction, error)
}

func (a *app) predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "predict <image>...",
		Short:   "Classify local image files and print one JSON object per file",
		Example: "  classifyd predict scan1.jpg scan2.png",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clf := a.newClassifier()
			defer clf.Close()
			return predictFiles(cmd.Context(), clf, args, cmd.OutOrStdout())
		},
	}
}

// predictFiles classifies every path, reporting failures inline. It returns
// an error when at least one file failed.
func predictFiles(ctx context.Context, clf imageClassifier, paths []string, out io.Writer) error {
	enc := json.NewEncoder(out)
	failed := 0
	for _, path := range paths {
		res := predictResult{File: path}
		p, err := classifyFile(ctx, clf, path)
		if err != nil {
			res.Error = err.Error()
			failed++
		} else {
			res.Result = p.Label
			res.Confidence = p.Confidence()
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(paths))
	}
	return nil
}

func classifyFile(ctx context.Context, clf imageClassifier, path string) (classifier.Prediction, error) {
	f, err := os.Open(path)
	if err != nil {
		return classifier.Prediction{}, err
	}
	defer f.Close()
	return clf.Classify(ctx, f)
}
