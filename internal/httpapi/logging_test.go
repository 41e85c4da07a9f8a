package httpapi

import (
	"bytes"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/classifier"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	// no override
	r = httptest.NewRequest("GET", "/x", nil)
	if got := requestLogLevel(r); got != defaultLogLevel {
		t.Fatalf("default level not used: %v", got)
	}
}

func TestLogEnd_StdFallback(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	defer log.SetOutput(orig)
	log.SetOutput(&buf)

	prev := zlog
	zlog = nil
	defer func() { zlog = prev }()

	r := httptest.NewRequest("POST", "/api/classify", nil)
	p := classifier.Prediction{Label: "No Tumor", Probability: 0.5}
	logEnd(r, LevelInfo, 200, time.Now(), &p, nil)
	if out := buf.String(); !strings.Contains(out, `label="No Tumor"`) || !strings.Contains(out, "confidence=50.00%") {
		t.Fatalf("unexpected log line: %q", out)
	}

	buf.Reset()
	logEnd(r, LevelOff, 200, time.Now(), &p, nil)
	if buf.Len() != 0 {
		t.Fatalf("LevelOff should not log: %q", buf.String())
	}
}

func TestLogEnd_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	prev := zlog
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = prev }()

	r := httptest.NewRequest("POST", "/api/classify", nil)
	logEnd(r, LevelError, 500, time.Now(), nil, classifier.ErrModelUnavailable(nil))
	out := buf.String()
	if !strings.Contains(out, `"reason":"model_unavailable"`) || !strings.Contains(out, `"status":500`) {
		t.Fatalf("unexpected log line: %q", out)
	}

	buf.Reset()
	logEnd(r, LevelError, 200, time.Now(), &classifier.Prediction{Label: "x"}, nil)
	if buf.Len() != 0 {
		t.Fatalf("success should not log at LevelError: %q", buf.String())
	}
}
