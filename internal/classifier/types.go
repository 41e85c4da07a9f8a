package classifier

// State represents whether the classifier can serve predictions.
type State string

const (
	StateReady State = "ready"
	StateError State = "error"
)

// Prediction is the outcome of one classification.
type Prediction struct {
	// Label is the class with the highest probability.
	Label string
	// Index of Label in the label set.
	Index int
	// Probability of Label as emitted by the model.
	Probability float32
	// Probabilities is the full output vector in label order.
	Probabilities []float32
}

// Confidence renders Probability as a percentage with two decimals.
func (p Prediction) Confidence() string { return FormatConfidence(p.Probability) }
