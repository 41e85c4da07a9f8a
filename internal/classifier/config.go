package classifier

import (
	"github.com/rs/zerolog"

	"classifyd/internal/imageproc"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultImageSize = 150
)

// DefaultLabels is the class order the bundled brain MRI model was trained with.
var DefaultLabels = []string{"Glioma Tumor", "Meningioma Tumor", "No Tumor", "Pituitary Tumor"}

// Config encapsulates all tunables for Classifier construction.
type Config struct {
	// ModelPath is the resolved location of the model artifact.
	ModelPath string
	// Labels in model output order. Defaults to DefaultLabels.
	Labels []string
	// ImageSize is the square side images are resized to.
	ImageSize int
	// Resample names the resize filter (see imageproc.ParseResample).
	Resample string
	// MaxPixels caps the decoded width*height of an upload.
	// Defaults to imageproc.DefaultMaxPixels.
	MaxPixels int64
	// Loader opens the model artifact. A nil Loader leaves the classifier inert.
	Loader Loader
	// Publisher receives lifecycle events. Defaults to a no-op publisher.
	Publisher EventPublisher
	Logger    zerolog.Logger
}

func (cfg *Config) applyDefaults() {
	if len(cfg.Labels) == 0 {
		cfg.Labels = append([]string(nil), DefaultLabels...)
	}
	if cfg.ImageSize <= 0 {
		cfg.ImageSize = DefaultImageSize
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = imageproc.DefaultMaxPixels
	}
	if cfg.Resample == "" {
		cfg.Resample = imageproc.DefaultResample
	}
	if cfg.Publisher == nil {
		cfg.Publisher = noopPublisher{}
	}
}
