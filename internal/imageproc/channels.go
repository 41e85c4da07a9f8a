package imageproc

import (
	"fmt"
	"image/color"
)

// Channels is the number of color channels the model input expects.
const Channels = 3

// ChannelCount returns how many channels a decoded image with color model m
// carries, following the usual mode naming: L/P = 1, RGB/YCbCr = 3,
// RGBA/CMYK = 4.
func ChannelCount(m color.Model) (int, error) {
	if _, ok := m.(color.Palette); ok {
		return 1, nil
	}
	switch m {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1, nil
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel:
		return 3, nil
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.CMYKModel:
		return 4, nil
	}
	return 0, fmt.Errorf("unsupported color model %T", m)
}
