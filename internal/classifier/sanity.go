package classifier

import (
	"os"
)

// SanityReport describes startup checks for the model artifact and runtime.
type SanityReport struct {
	ModelPath    string   `json:"model_path"`
	ModelFound   bool     `json:"model_found"`
	ModelLoaded  bool     `json:"model_loaded"`
	RuntimeLib   string   `json:"runtime_lib,omitempty"`
	RuntimeFound bool     `json:"runtime_found"`
	Labels       []string `json:"labels"`
	OutputWidth  int      `json:"output_width,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// OK reports whether the classifier can serve predictions.
func (r SanityReport) OK() bool { return r.ModelFound && r.ModelLoaded }

// SanityCheck inspects the model file and, when runtimeLib is non-empty, the
// runtime shared library. It does not mutate state and is safe to call at any
// time.
func (c *Classifier) SanityCheck(runtimeLib string) SanityReport {
	model, loadErr := c.current()
	r := SanityReport{
		ModelPath:   c.modelPath,
		ModelLoaded: model != nil,
		RuntimeLib:  runtimeLib,
		Labels:      c.Labels(),
		OutputWidth: c.info.OutputWidth,
	}
	if fi, err := os.Stat(c.modelPath); err == nil && !fi.IsDir() {
		r.ModelFound = true
	}
	if runtimeLib == "" {
		// left to the runtime's default library lookup
		r.RuntimeFound = r.ModelLoaded
	} else if fi, err := os.Stat(runtimeLib); err == nil && !fi.IsDir() {
		r.RuntimeFound = true
	}
	if loadErr != nil {
		r.Error = loadErr.Error()
	}
	return r
}
