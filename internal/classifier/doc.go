// Package classifier owns the loaded model and runs the classification
// pipeline for a single uploaded image. It is structured into small files by
// concern:
//
//   - classifier.go: Classifier type, constructor, Classify.
//   - config.go: Config and package defaults (labels, image size).
//   - types.go: State and Prediction.
//   - errors.go: error types and helpers (IsModelUnavailable, Reason).
//   - predict.go: arg-max selection and confidence formatting.
//   - adapter_iface.go: Model and Loader interfaces for runtimes.
//   - adapter_onnx.go: ONNX Runtime loader (production runtime).
//   - status.go: Status reporting for /status.
//   - sanity.go: SanityCheck for the model artifact and runtime library.
//   - events.go: lifecycle events and publishers.
//
// The model is loaded exactly once in New. A failed load never fails
// construction: the classifier stays inert and every Classify call returns a
// model-unavailable error. After New returns nothing is mutated except atomic
// counters, so Classify is safe for concurrent use.
package classifier
