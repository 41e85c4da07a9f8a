package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"classifyd/internal/httpapi"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP server (default)",
		Example: "  classifyd serve --addr :8000 --model-path models/brain_tumor_classifier.onnx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	fs := cmd.Flags()
	fs.String("addr", "", "HTTP listen address, e.g. :8000")
	fs.Int64("max-body-bytes", 0, "Maximum upload size in bytes")
	fs.Bool("cors-enabled", false, "Enable CORS for browser clients")
	fs.StringSlice("cors-origins", nil, "Allowed CORS origins")
	fs.Bool("swagger", false, "Serve Swagger UI under /swagger/")
	fs.Bool("require-model", false, "Exit when the model cannot be loaded instead of serving inert")
	fs.Int("shutdown-timeout-seconds", 0, "Grace period for in-flight requests on shutdown")
	bindFlags(a.v, fs)
	return cmd
}

func (a *app) serve(parent context.Context) error {
	clf := a.newClassifier()
	release := true
	defer func() {
		if release {
			clf.Close()
		}
	}()
	if !clf.Ready() {
		if a.cfg.RequireModel {
			return fmt.Errorf("model not ready: %s", clf.Status().Error)
		}
		a.log.Warn().Str("model", a.cfg.ModelPath).Msg("serving without a model; classify requests will fail")
	}

	httpapi.SetLogger(a.log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(a.cfg.CORSEnabled, a.cfg.CORSOrigins, nil, nil)
	httpapi.SetSwaggerEnabled(a.cfg.Swagger)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(clf),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Str("model", a.cfg.ModelPath).Bool("ready", clf.Ready()).Msg("classifyd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// Handlers may still be inside the runtime; Close would wait on
		// them. Process exit releases the session instead.
		release = false
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
