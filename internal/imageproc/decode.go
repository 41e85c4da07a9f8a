package imageproc

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels caps width*height of an upload before its pixels are
// decoded; a few KiB of compressed data can otherwise expand to gigabytes.
const DefaultMaxPixels int64 = 89_478_485

// Decode is DecodeLimited with DefaultMaxPixels.
func Decode(r io.Reader) (image.Image, string, error) {
	return DecodeLimited(r, DefaultMaxPixels)
}

// DecodeLimited sniffs the format, checks the dimensions declared in the
// header and only then decodes r. Images without pixels or with more than
// maxPixels pixels are rejected; maxPixels <= 0 means DefaultMaxPixels. The
// returned format is the name the decoder registered under (jpeg, png, gif,
// bmp, tiff, webp).
func DecodeLimited(r io.Reader, maxPixels int64) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, "", DecodeError{Err: err}
	}
	if err := checkSize(cfg.Width, cfg.Height, maxPixels); err != nil {
		return nil, "", DecodeError{Err: err}
	}
	img, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, "", DecodeError{Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, "", DecodeError{Err: SizeError{Width: b.Dx(), Height: b.Dy(), Limit: maxPixels}}
	}
	return img, format, nil
}

func checkSize(w, h int, limit int64) error {
	if w <= 0 || h <= 0 || int64(w)*int64(h) > limit {
		return SizeError{Width: w, Height: h, Limit: limit}
	}
	return nil
}
