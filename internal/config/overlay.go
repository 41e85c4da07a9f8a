package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. CLASSIFYD_MODEL_PATH.
const EnvPrefix = "CLASSIFYD"

// NewViper returns a viper instance reading CLASSIFYD_* environment variables.
// Keys use the config file names; dashes in bound flag names map to
// underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Overlay copies every key explicitly set in v (changed flag or environment
// variable) over c. Keys left unset keep the file or default value.
func (c *Config) Overlay(v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flag := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	list := func(key string, dst *[]string) {
		if !v.IsSet(key) {
			return
		}
		// Environment values arrive as one string; slices come from flags.
		if raw, ok := v.Get(key).(string); ok {
			*dst = splitList([]string{raw})
			return
		}
		*dst = splitList(v.GetStringSlice(key))
	}
	str("addr", &c.Addr)
	str("model_path", &c.ModelPath)
	str("ort_library_path", &c.ORTLibraryPath)
	num("intra_op_threads", &c.IntraOpThreads)
	str("input_name", &c.InputName)
	str("output_name", &c.OutputName)
	list("labels", &c.Labels)
	num("image_size", &c.ImageSize)
	str("resample", &c.Resample)
	num64 := func(key string, dst *int64) {
		if v.IsSet(key) {
			*dst = v.GetInt64(key)
		}
	}
	num64("max_image_pixels", &c.MaxImagePixels)
	num64("max_body_bytes", &c.MaxBodyBytes)
	str("log_level", &c.LogLevel)
	str("log_format", &c.LogFormat)
	flag("cors_enabled", &c.CORSEnabled)
	list("cors_origins", &c.CORSOrigins)
	flag("swagger", &c.Swagger)
	flag("require_model", &c.RequireModel)
	num("shutdown_timeout_seconds", &c.ShutdownTimeoutSeconds)
}

// splitList flattens comma-separated entries, as environment variables carry
// lists in a single string.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
