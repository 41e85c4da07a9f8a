package classifier

import (
	"context"

	"classifyd/internal/imageproc"
	"classifyd/pkg/types"
)

// Model abstracts the runtime holding a loaded classification network.
// Implementations must allow concurrent Predict calls.
type Model interface {
	// Predict runs one forward pass and returns the class probabilities.
	Predict(ctx context.Context, input imageproc.Tensor) ([]float32, error)
	// Info describes the loaded artifact.
	Info() types.ModelInfo
	// Close releases runtime resources.
	Close() error
}

// Loader opens a model artifact. inputShape is the tensor shape the
// classifier will feed; loaders should reject artifacts that cannot accept it.
type Loader interface {
	Load(path string, inputShape []int64) (Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string, inputShape []int64) (Model, error)

func (f LoaderFunc) Load(path string, inputShape []int64) (Model, error) { return f(path, inputShape) }
