package classifier

import (
	"errors"
	"fmt"

	"classifyd/internal/imageproc"
)

// modelUnavailableError signals that the model failed to load at startup.
type modelUnavailableError struct{ cause error }

func (e modelUnavailableError) Error() string {
	if e.cause == nil {
		return "model unavailable"
	}
	return "model unavailable: " + e.cause.Error()
}

func (e modelUnavailableError) Unwrap() error { return e.cause }

// ErrModelUnavailable constructs a modelUnavailableError around the load failure.
func ErrModelUnavailable(cause error) error { return modelUnavailableError{cause: cause} }

// IsModelUnavailable reports whether err indicates an absent model.
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// outputMismatchError signals a model whose output width disagrees with the label set.
type outputMismatchError struct{ got, want int }

func (e outputMismatchError) Error() string {
	return fmt.Sprintf("model output has %d classes, label set has %d", e.got, e.want)
}

// IsOutputMismatch reports whether err indicates a label/output width disagreement.
func IsOutputMismatch(err error) bool {
	var e outputMismatchError
	return errors.As(err, &e)
}

// inferenceError wraps a failure inside the model runtime.
type inferenceError struct{ err error }

func (e inferenceError) Error() string { return "inference failed: " + e.err.Error() }

func (e inferenceError) Unwrap() error { return e.err }

// IsInferenceError reports whether err came from the forward pass.
func IsInferenceError(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}

// Reason returns a short, low-cardinality label for err, used for metrics
// and logs. It does not influence the HTTP status code.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case imageproc.IsDecodeError(err):
		return "decode"
	case imageproc.IsChannelError(err):
		return "channels"
	case IsModelUnavailable(err):
		return "model_unavailable"
	case IsOutputMismatch(err):
		return "output_mismatch"
	case IsInferenceError(err):
		return "inference"
	case errors.Is(err, errInvalidOutput):
		return "invalid_output"
	}
	return "other"
}
