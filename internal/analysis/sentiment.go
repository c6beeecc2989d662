package analysis

import (
	"github.com/jonreiter/govader"

	"vidsum-backend/internal/models"
)

// Compound-score thresholds for the overall label.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// SentimentScorer wraps the VADER lexicon analyzer. Scoring is pure and
// deterministic: the same text always yields the same result.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *SentimentScorer) Score(text string) models.SentimentResult {
	scores := s.analyzer.PolarityScores(text)

	return models.SentimentResult{
		Overall:  overallLabel(scores.Compound),
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
		Compound: scores.Compound,
	}
}

func overallLabel(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return "positive"
	case compound <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
