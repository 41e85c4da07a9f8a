package types

// ClassifyResponse is returned by POST /api/classify on success.
type ClassifyResponse struct {
	// Predicted class label.
	// example: Meningioma Tumor
	Result string `json:"result" example:"Meningioma Tumor"`
	// Probability of the predicted class as a percentage with two decimals.
	// example: 85.00%
	Confidence string `json:"confidence" example:"85.00%"`
}

// ErrorResponse is the JSON error payload for every failed request.
type ErrorResponse struct {
	// Error message.
	// example: No image provided
	Error string `json:"error" example:"No image provided"`
}

// LabelsResponse is returned by GET /api/labels.
type LabelsResponse struct {
	// Class labels in model output order.
	// example: ["Glioma Tumor","Meningioma Tumor","No Tumor","Pituitary Tumor"]
	Labels []string `json:"labels"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Classifier state: ready or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Model artifact the classifier was configured with.
	Model ModelInfo `json:"model"`
	// Class labels in model output order.
	Labels []string `json:"labels"`
	// Side length in pixels images are resized to.
	// example: 150
	ImageSize int `json:"image_size" example:"150"`
	// Load error when the model is unavailable.
	Error string `json:"error,omitempty"`
	// Classifications that produced a label.
	// example: 42
	ClassificationsTotal uint64 `json:"classifications_total" example:"42"`
	// Classifications that failed after an image was supplied.
	// example: 3
	FailuresTotal uint64 `json:"failures_total" example:"3"`
	// Uptime of the classifier in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
