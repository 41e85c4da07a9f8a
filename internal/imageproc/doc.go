// Package imageproc turns an uploaded image into the tensor a classification
// model consumes: decode, resize to a square, and lay pixels out as NHWC
// float32 values in the 0-255 range.
package imageproc
