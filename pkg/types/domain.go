package types

// ModelInfo describes the loaded model artifact.
type ModelInfo struct {
	// Absolute path to the model file on disk.
	// example: /opt/classifyd/models/brain_tumor_classifier.onnx
	Path string `json:"path" example:"/opt/classifyd/models/brain_tumor_classifier.onnx"`
	// Name of the graph input fed with the image tensor.
	// example: input_1
	InputName string `json:"input_name,omitempty" example:"input_1"`
	// Name of the graph output holding class probabilities.
	// example: dense_1
	OutputName string `json:"output_name,omitempty" example:"dense_1"`
	// Input tensor shape as declared by the model (-1 for dynamic dims).
	// example: [-1,150,150,3]
	InputShape []int64 `json:"input_shape,omitempty"`
	// Number of classes the model emits.
	// example: 4
	OutputWidth int `json:"output_width,omitempty" example:"4"`
}
