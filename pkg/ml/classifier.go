// Package ml wraps the externally trained scam/safe text classifier. The
// model is a frozen artifact; this package owns loading it and exposing a
// probability contract to the decision engine, nothing about training.
package ml

import "context"

// Canonical labels. Model-specific label strings are mapped onto these by
// the adapter; nothing downstream ever sees a raw model label.
const (
	LabelSafe = "SAFE"
	LabelScam = "SCAM"
)

// Verdict is the classifier's raw output for one message. The two
// probabilities are complementary (they sum to 1) and Label is the hard
// prediction implied by them.
type Verdict struct {
	Label           string
	ScamProbability float64
	SafeProbability float64
}

// Classifier is the contract the decision engine consumes. Implementations
// must be deterministic for identical input and loaded model state, and
// safe for concurrent callers.
type Classifier interface {
	// ClassifyProbabilities classifies already-normalized text.
	ClassifyProbabilities(ctx context.Context, normalized string) (Verdict, error)
}

// isScamLabel maps a model's own label string to the SCAM class. Different
// checkpoints use different conventions ("SCAM", "spam", "LABEL_1"); the
// mapping is by name, never by class position, since the provider's label
// ordering is not guaranteed.
func isScamLabel(label string) bool {
	switch label {
	case "SCAM", "scam", "spam", "SPAM", "fraud", "LABEL_1", "1":
		return true
	default:
		return false
	}
}
