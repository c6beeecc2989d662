package analysis

import "testing"

func TestOverallLabel_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		want     string
	}{
		{"exactly positive threshold", 0.05, "positive"},
		{"exactly negative threshold", -0.05, "negative"},
		{"zero is neutral", 0.0, "neutral"},
		{"just below positive threshold", 0.049, "neutral"},
		{"just above negative threshold", -0.049, "neutral"},
		{"strongly positive", 0.9, "positive"},
		{"strongly negative", -0.9, "negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := overallLabel(tc.compound)
			if got != tc.want {
				t.Errorf("overallLabel(%v) = %q, want %q", tc.compound, got, tc.want)
			}
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	scorer := NewSentimentScorer()
	text := "This is a wonderful and amazing tutorial about cooking pasta."

	first := scorer.Score(text)
	second := scorer.Score(text)

	if first != second {
		t.Errorf("identical text produced different results: %+v vs %+v", first, second)
	}
}

func TestScore_PositiveText(t *testing.T) {
	scorer := NewSentimentScorer()

	result := scorer.Score("This is a wonderful and amazing tutorial about cooking pasta.")

	if result.Overall != "positive" {
		t.Errorf("Expected positive overall, got %q (compound %v)", result.Overall, result.Compound)
	}
	if result.Compound < 0.05 {
		t.Errorf("Expected compound >= 0.05, got %v", result.Compound)
	}
}

func TestScore_NegativeText(t *testing.T) {
	scorer := NewSentimentScorer()

	result := scorer.Score("This was a horrible, terrible, awful experience.")

	if result.Overall != "negative" {
		t.Errorf("Expected negative overall, got %q (compound %v)", result.Overall, result.Compound)
	}
}
