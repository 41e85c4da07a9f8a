package imageproc

import (
	"errors"
	"fmt"
)

// DecodeError reports bytes that could not be decoded as a supported image.
type DecodeError struct{ Err error }

func (e DecodeError) Error() string {
	var se SizeError
	if errors.As(e.Err, &se) {
		return se.Error()
	}
	return "cannot identify image file: " + e.Err.Error()
}

func (e DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err came from decoding the upload.
func IsDecodeError(err error) bool {
	var de DecodeError
	return errors.As(err, &de)
}

// ChannelError reports an image whose channel count does not fit the tensor.
// There is no channel conversion: grayscale and alpha images are rejected.
type ChannelError struct {
	Channels int
	Size     int
}

func (e ChannelError) Error() string {
	return fmt.Sprintf("cannot reshape image with %d channel(s) into shape (1, %d, %d, %d)", e.Channels, e.Size, e.Size, Channels)
}

// IsChannelError reports whether err is a channel-count mismatch.
func IsChannelError(err error) bool {
	var ce ChannelError
	return errors.As(err, &ce)
}

// SizeError reports declared dimensions that are empty or exceed the pixel
// limit. It is always returned wrapped in a DecodeError.
type SizeError struct {
	Width, Height int
	Limit         int64
}

func (e SizeError) Error() string {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Sprintf("image has no pixels (%dx%d)", e.Width, e.Height)
	}
	return fmt.Sprintf("image size (%d pixels) exceeds limit of %d pixels", int64(e.Width)*int64(e.Height), e.Limit)
}
