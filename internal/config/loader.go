package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// ModelPath is resolved against the executable directory when relative.
	ModelPath      string   `json:"model_path" yaml:"model_path" toml:"model_path"`
	ORTLibraryPath string   `json:"ort_library_path" yaml:"ort_library_path" toml:"ort_library_path"`
	IntraOpThreads int      `json:"intra_op_threads" yaml:"intra_op_threads" toml:"intra_op_threads"`
	InputName      string   `json:"input_name" yaml:"input_name" toml:"input_name"`
	OutputName     string   `json:"output_name" yaml:"output_name" toml:"output_name"`
	Labels         []string `json:"labels" yaml:"labels" toml:"labels"`
	ImageSize      int      `json:"image_size" yaml:"image_size" toml:"image_size"`
	Resample       string   `json:"resample" yaml:"resample" toml:"resample"`
	// MaxImagePixels caps width*height read from an upload's header.
	MaxImagePixels int64    `json:"max_image_pixels" yaml:"max_image_pixels" toml:"max_image_pixels"`
	MaxBodyBytes   int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat      string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSEnabled    bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	Swagger        bool     `json:"swagger" yaml:"swagger" toml:"swagger"`
	// RequireModel makes serve exit when the model cannot be loaded instead
	// of running inert.
	RequireModel           bool `json:"require_model" yaml:"require_model" toml:"require_model"`
	ShutdownTimeoutSeconds int  `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
