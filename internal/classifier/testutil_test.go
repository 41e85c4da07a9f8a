package classifier

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"classifyd/internal/imageproc"
	"classifyd/pkg/types"
)

// fakeModel returns fixed probabilities and records the last input shape.
type fakeModel struct {
	probs     []float32
	err       error
	width     int
	calls     atomic.Int64
	lastShape atomic.Pointer[[]int64]
	lastLen   atomic.Int64
	closed    atomic.Bool
}

func (f *fakeModel) Predict(ctx context.Context, in imageproc.Tensor) ([]float32, error) {
	f.calls.Add(1)
	shape := append([]int64(nil), in.Shape...)
	f.lastShape.Store(&shape)
	f.lastLen.Store(int64(len(in.Data)))
	if f.err != nil {
		return nil, f.err
	}
	return append([]float32(nil), f.probs...), nil
}

func (f *fakeModel) Info() types.ModelInfo {
	return types.ModelInfo{Path: "fake.onnx", InputName: "input", OutputName: "probs", OutputWidth: f.width}
}

func (f *fakeModel) Close() error {
	f.closed.Store(true)
	return nil
}

func loaderFor(m Model) Loader {
	return LoaderFunc(func(string, []int64) (Model, error) { return m, nil })
}

func failingLoader(msg string) Loader {
	return LoaderFunc(func(string, []int64) (Model, error) { return nil, errors.New(msg) })
}

func newTestClassifier(t *testing.T, m Model) *Classifier {
	t.Helper()
	c := New(Config{ModelPath: "fake.onnx", Loader: loaderFor(m), Logger: zerolog.Nop()})
	require.True(t, c.Ready(), "expected classifier to be ready")
	return c
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func rgbImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 255})
		}
	}
	return img
}
