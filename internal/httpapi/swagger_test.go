package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSwagger_DocJSONWhenEnabled(t *testing.T) {
	SetSwaggerEnabled(true)
	t.Cleanup(func() { SetSwaggerEnabled(false) })
	h := NewMux(&mockService{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/classify") {
		t.Fatalf("doc.json missing classify route: %.200s", w.Body.String())
	}
}

func TestSwagger_NotMountedByDefault(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}
