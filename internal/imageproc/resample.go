package imageproc

import (
	"fmt"
	"strings"

	"github.com/nfnt/resize"
)

// DefaultResample matches Pillow's default filter for Image.resize.
const DefaultResample = "bicubic"

var resamplers = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseResample maps a filter name to an interpolation function.
// An empty name selects DefaultResample.
func ParseResample(name string) (resize.InterpolationFunction, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = DefaultResample
	}
	f, ok := resamplers[n]
	if !ok {
		return 0, fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}
