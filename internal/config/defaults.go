package config

import (
	"errors"
	"fmt"
	"strings"

	"classifyd/internal/classifier"
	"classifyd/internal/imageproc"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr                         = ":8000"
	DefaultModelPath                    = "models/brain_tumor_classifier.onnx"
	DefaultMaxBodyBytes           int64 = 10 << 20
	DefaultLogLevel                     = "info"
	DefaultLogFormat                    = "json"
	DefaultShutdownTimeoutSeconds       = 5
)

// ApplyDefaults fills every unspecified field.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ModelPath == "" {
		c.ModelPath = DefaultModelPath
	}
	if len(c.Labels) == 0 {
		c.Labels = append([]string(nil), classifier.DefaultLabels...)
	}
	if c.ImageSize <= 0 {
		c.ImageSize = classifier.DefaultImageSize
	}
	if c.Resample == "" {
		c.Resample = imageproc.DefaultResample
	}
	if c.MaxImagePixels <= 0 {
		c.MaxImagePixels = imageproc.DefaultMaxPixels
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSeconds
	}
	if c.CORSEnabled && len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
}

// Validate reports settings that cannot work. Call after ApplyDefaults.
func (c Config) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Labels))
	for _, l := range c.Labels {
		if strings.TrimSpace(l) == "" {
			errs = append(errs, errors.New("labels: empty label"))
			continue
		}
		if seen[l] {
			errs = append(errs, fmt.Errorf("labels: duplicate label %q", l))
		}
		seen[l] = true
	}
	if _, err := imageproc.ParseResample(c.Resample); err != nil {
		errs = append(errs, fmt.Errorf("resample: %w", err))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format: must be json or console, got %q", c.LogFormat))
	}
	if c.IntraOpThreads < 0 {
		errs = append(errs, errors.New("intra_op_threads: must not be negative"))
	}
	return errors.Join(errs...)
}
