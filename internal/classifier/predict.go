package classifier

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var errInvalidOutput = errors.New("model produced a probability outside [0, 1]")

// probabilitySlack absorbs float32 rounding in a softmax that sums past 1.
const probabilitySlack = 1e-6

// argmax returns the index and value of the largest element. Ties resolve to
// the first occurrence. probs must be non-empty.
func argmax(probs []float32) (int, float32) {
	best, bestVal := 0, probs[0]
	for i := 1; i < len(probs); i++ {
		if probs[i] > bestVal {
			best, bestVal = i, probs[i]
		}
	}
	return best, bestVal
}

// FormatConfidence renders a probability as a percentage with two decimals,
// e.g. 0.85 -> "85.00%".
func FormatConfidence(p float32) string {
	return strconv.FormatFloat(float64(p)*100, 'f', 2, 64) + "%"
}

// selectLabel maps a probability vector onto labels.
func selectLabel(probs []float32, labels []string) (Prediction, error) {
	if len(probs) != len(labels) {
		return Prediction{}, outputMismatchError{got: len(probs), want: len(labels)}
	}
	for i, p := range probs {
		if !validProbability(p) {
			return Prediction{}, fmt.Errorf("%w: %v at index %d", errInvalidOutput, p, i)
		}
	}
	idx, val := argmax(probs)
	return Prediction{
		Label:         labels[idx],
		Index:         idx,
		Probability:   val,
		Probabilities: append([]float32(nil), probs...),
	}, nil
}

// validProbability is false for NaN, infinities and values outside [0, 1].
func validProbability(p float32) bool {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= 0 && f <= 1+probabilitySlack
}
