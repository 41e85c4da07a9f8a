package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"classifyd/internal/classifier"
	"classifyd/internal/httpapi"
	"classifyd/internal/imageproc"
	"classifyd/pkg/types"
)

// stubModel returns fixed probabilities for every input.
type stubModel struct {
	probs []float32

	mu    sync.Mutex
	shape []int64
}

func (m *stubModel) Predict(_ context.Context, in imageproc.Tensor) ([]float32, error) {
	m.mu.Lock()
	m.shape = append([]int64(nil), in.Shape...)
	m.mu.Unlock()
	return append([]float32(nil), m.probs...), nil
}

func (m *stubModel) lastShape() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shape
}

func (m *stubModel) Info() types.ModelInfo {
	return types.ModelInfo{Path: "stub.onnx", OutputWidth: len(m.probs)}
}

func (m *stubModel) Close() error { return nil }

// newServer wires a real classifier behind the real router.
func newServer(t *testing.T, loader classifier.Loader) (*httptest.Server, *classifier.Classifier) {
	t.Helper()
	clf := classifier.New(classifier.Config{
		ModelPath: "models/stub.onnx",
		Loader:    loader,
		Logger:    zerolog.Nop(),
	})
	srv := httptest.NewServer(httpapi.NewMux(clf))
	t.Cleanup(func() {
		srv.Close()
		_ = clf.Close()
	})
	return srv, clf
}

func stubLoader(m *stubModel) classifier.Loader {
	return classifier.LoaderFunc(func(string, []int64) (classifier.Model, error) { return m, nil })
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func rgbPNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 3), uint8(y * 5), 90, 255})
		}
	}
	return encodePNG(t, img)
}

// postImage uploads content under the image field and decodes the JSON reply.
func postImage(t *testing.T, url string, content []byte) (int, map[string]string) {
	t.Helper()
	status, body, err := upload(url, content)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return status, body
}

// upload is safe to call from goroutines other than the test's.
func upload(url string, content []byte) (int, map[string]string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "upload.png")
	if err != nil {
		return 0, nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return 0, nil, err
	}
	if err := mw.Close(); err != nil {
		return 0, nil, err
	}
	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	out := map[string]string{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, out, nil
}
