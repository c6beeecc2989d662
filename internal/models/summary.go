package models

import (
	"time"

	"github.com/google/uuid"
)

// Summary format options
const (
	FormatBulletPoints = "bullet_points"
	FormatNarrative    = "narrative"
	FormatMarkdown     = "markdown"
)

// Summary length options
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// VideoMetadata describes the source video. Views and Thumbnail are only
// available for YouTube sources; uploads carry filename-derived placeholders.
type VideoMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Length    int    `json:"length"` // duration in seconds
	Views     *int64 `json:"views,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// SentimentResult holds VADER polarity scores. Overall is derived from the
// compound score: >= 0.05 positive, <= -0.05 negative, otherwise neutral.
type SentimentResult struct {
	Overall  string  `json:"overall"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// SummaryRecord is one persisted result of a full pipeline run. Immutable
// after creation except for deletion.
type SummaryRecord struct {
	ID         uuid.UUID        `json:"id"`
	Summary    string           `json:"summary"`
	Metadata   VideoMetadata    `json:"metadata"`
	Transcript string           `json:"transcript"`
	Sentiment  *SentimentResult `json:"sentiment"`
	Keywords   []string         `json:"keywords"`
	CreatedAt  time.Time        `json:"timestamp"`
}

// SummarizeRequest carries the user-facing summarization parameters.
type SummarizeRequest struct {
	URL              string `json:"url"`
	Format           string `json:"format"`  // "bullet_points" | "narrative" | "markdown"
	Length           string `json:"length"`  // "short" | "medium" | "long"
	Language         string `json:"language"`
	IncludeSentiment bool   `json:"include_sentiment"`
}

// API Error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
