package imageproc

import (
	"image"

	"github.com/nfnt/resize"
)

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// InputShape returns the NHWC shape for a batch of one square image.
func InputShape(size int) []int64 {
	return []int64{1, int64(size), int64(size), Channels}
}

// ToTensor resizes img to size x size (aspect ratio is not preserved) and
// returns it as a (1, size, size, 3) tensor of raw channel intensities.
// Images that do not carry exactly three channels are rejected before any
// resizing work is done.
func ToTensor(img image.Image, size int, interp resize.InterpolationFunction) (Tensor, error) {
	ch, err := ChannelCount(img.ColorModel())
	if err != nil {
		return Tensor{}, err
	}
	if ch != Channels {
		return Tensor{}, ChannelError{Channels: ch, Size: size}
	}
	resized := resize.Resize(uint(size), uint(size), img, interp)
	b := resized.Bounds()
	data := make([]float32, 0, size*size*Channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := resized.At(x, y).RGBA()
			data = append(data, float32(r>>8), float32(g>>8), float32(bl>>8))
		}
	}
	return Tensor{Shape: InputShape(size), Data: data}, nil
}
