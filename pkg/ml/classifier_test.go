package ml

import (
	"math"
	"testing"
)

func TestIsScamLabel(t *testing.T) {
	testCases := []struct {
		label string
		want  bool
	}{
		{"SCAM", true},
		{"scam", true},
		{"spam", true},
		{"SPAM", true},
		{"fraud", true},
		{"LABEL_1", true},
		{"1", true},
		{"SAFE", false},
		{"ham", false},
		{"LABEL_0", false},
		{"0", false},
		{"benign", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := isScamLabel(tc.label); got != tc.want {
			t.Errorf("isScamLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestVerdictFromOutput(t *testing.T) {
	testCases := []struct {
		name      string
		label     string
		score     float64
		wantLabel string
		wantScamP float64
	}{
		{"scam prediction", "SCAM", 0.93, LabelScam, 0.93},
		{"safe prediction", "ham", 0.88, LabelSafe, 0.12},
		{"positional label one", "LABEL_1", 0.55, LabelScam, 0.55},
		{"positional label zero", "LABEL_0", 0.75, LabelSafe, 0.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := verdictFromOutput(tc.label, tc.score)
			if v.Label != tc.wantLabel {
				t.Errorf("Label = %s, want %s", v.Label, tc.wantLabel)
			}
			if math.Abs(v.ScamProbability-tc.wantScamP) > 1e-9 {
				t.Errorf("ScamProbability = %v, want %v", v.ScamProbability, tc.wantScamP)
			}
			if sum := v.ScamProbability + v.SafeProbability; math.Abs(sum-1) > 1e-9 {
				t.Errorf("probabilities sum to %v, want 1", sum)
			}
		})
	}
}
