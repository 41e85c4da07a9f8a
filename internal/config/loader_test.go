package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodel_path: /m/model.onnx\nimage_size: 224\nlabels:\n  - cat\n  - dog\ncors_enabled: true\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelPath != "/m/model.onnx" || cfg.ImageSize != 224 || !cfg.CORSEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Labels, []string{"cat", "dog"}) {
		t.Fatalf("labels: %v", cfg.Labels)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_path":"m.onnx","max_body_bytes":2048,"resample":"bilinear","swagger":true}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelPath != "m.onnx" || cfg.MaxBodyBytes != 2048 || cfg.Resample != "bilinear" || !cfg.Swagger {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nort_library_path=\"/usr/lib/libonnxruntime.so\"\nintra_op_threads=2\nlog_format=\"console\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ORTLibraryPath != "/usr/lib/libonnxruntime.so" || cfg.IntraOpThreads != 2 || cfg.LogFormat != "console" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr != DefaultAddr || cfg.ModelPath != DefaultModelPath {
		t.Fatalf("addr/model: %+v", cfg)
	}
	if cfg.ImageSize != 150 || cfg.Resample != "bicubic" || cfg.MaxBodyBytes != 10<<20 || cfg.MaxImagePixels != 89_478_485 {
		t.Fatalf("image defaults: %+v", cfg)
	}
	want := []string{"Glioma Tumor", "Meningioma Tumor", "No Tumor", "Pituitary Tumor"}
	if !reflect.DeepEqual(cfg.Labels, want) {
		t.Fatalf("labels: %v", cfg.Labels)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.ShutdownTimeoutSeconds != 5 {
		t.Fatalf("log/shutdown defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{Addr: ":1", ImageSize: 64, Labels: []string{"a"}, CORSEnabled: true}
	cfg.ApplyDefaults()
	if cfg.Addr != ":1" || cfg.ImageSize != 64 || len(cfg.Labels) != 1 {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Fatalf("cors origins default: %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"duplicate label":  {func(c *Config) { c.Labels = []string{"a", "a"} }, "duplicate label"},
		"empty label":      {func(c *Config) { c.Labels = []string{"a", " "} }, "empty label"},
		"bad resample":     {func(c *Config) { c.Resample = "sinc" }, "resample"},
		"bad log format":   {func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		"negative threads": {func(c *Config) { c.IntraOpThreads = -1 }, "intra_op_threads"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "classifyd.example.yaml"))
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("example config invalid: %v", err)
	}
	if cfg.Addr != ":8000" || len(cfg.Labels) != 4 || cfg.MaxBodyBytes != 10<<20 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}
