package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"vidsum-backend/internal/analysis"
	"vidsum-backend/internal/models"
	"vidsum-backend/internal/services"
)

const keywordCount = 10

// RecordStore is the persistence boundary of the pipeline. The store assigns
// the id and creation timestamp; List returns records in insertion order.
type RecordStore interface {
	Create(ctx context.Context, rec *models.SummaryRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SummaryRecord, error)
	List(ctx context.Context) ([]*models.SummaryRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranscriptAcquirer resolves a video reference into transcript + metadata.
type TranscriptAcquirer interface {
	AcquireFromURL(ctx context.Context, url string) (string, models.VideoMetadata, error)
	AcquireFromUpload(ctx context.Context, file io.Reader, filename, declaredMIME string) (string, models.VideoMetadata, error)
}

// Options tune orchestrator behavior per deployment.
type Options struct {
	// SummarizeTimeout bounds each LLM completion call.
	SummarizeTimeout time.Duration
	// SummarizeRetries is the number of additional attempts after a failed
	// summarization. Zero means no retry.
	SummarizeRetries int
}

// Orchestrator sequences acquire → prompt → summarize → analyze → persist.
// Either a complete record is persisted or nothing is: no stage failure
// leaves a partial record behind.
type Orchestrator struct {
	acquirer   TranscriptAcquirer
	summarizer services.Summarizer
	sentiment  *analysis.SentimentScorer
	store      RecordStore
	opts       Options
}

func NewOrchestrator(acquirer TranscriptAcquirer, summarizer services.Summarizer, sentiment *analysis.SentimentScorer, store RecordStore, opts Options) *Orchestrator {
	if opts.SummarizeTimeout <= 0 {
		opts.SummarizeTimeout = 2 * time.Minute
	}
	return &Orchestrator{
		acquirer:   acquirer,
		summarizer: summarizer,
		sentiment:  sentiment,
		store:      store,
		opts:       opts,
	}
}

// RunURL executes the full pipeline for a YouTube URL.
func (o *Orchestrator) RunURL(ctx context.Context, url string, params models.SummarizeRequest) (*models.SummaryRecord, error) {
	prompt, err := services.BuildSummaryPrompt(params.Format, params.Length, params.Language)
	if err != nil {
		return nil, err
	}

	transcript, meta, err := o.acquirer.AcquireFromURL(ctx, url)
	if err != nil {
		return nil, err
	}

	return o.finish(ctx, transcript, meta, prompt, params)
}

// RunUpload executes the full pipeline for an uploaded video file.
func (o *Orchestrator) RunUpload(ctx context.Context, file io.Reader, filename, declaredMIME string, params models.SummarizeRequest) (*models.SummaryRecord, error) {
	prompt, err := services.BuildSummaryPrompt(params.Format, params.Length, params.Language)
	if err != nil {
		return nil, err
	}

	transcript, meta, err := o.acquirer.AcquireFromUpload(ctx, file, filename, declaredMIME)
	if err != nil {
		return nil, err
	}

	return o.finish(ctx, transcript, meta, prompt, params)
}

func (o *Orchestrator) finish(ctx context.Context, transcript string, meta models.VideoMetadata, prompt string, params models.SummarizeRequest) (*models.SummaryRecord, error) {
	if transcript == "" {
		return nil, fmt.Errorf("%w: acquisition produced an empty transcript", services.ErrAcquisition)
	}

	summary, err := o.summarize(ctx, transcript, prompt)
	if err != nil {
		return nil, err
	}

	rec := &models.SummaryRecord{
		Summary:    summary,
		Metadata:   meta,
		Transcript: transcript,
		Keywords:   analysis.ExtractKeywords(transcript, keywordCount),
	}

	// Scored over the transcript, not the summary.
	if params.IncludeSentiment {
		s := o.sentiment.Score(transcript)
		rec.Sentiment = &s
	}

	if err := o.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist summary record: %w", err)
	}

	return rec, nil
}

func (o *Orchestrator) summarize(ctx context.Context, transcript, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= o.opts.SummarizeRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, o.opts.SummarizeTimeout)
		summary, err := o.summarizer.Summarize(callCtx, transcript, prompt)
		cancel()
		if err == nil {
			return summary, nil
		}
		lastErr = err
		if attempt < o.opts.SummarizeRetries {
			log.Printf("summarization attempt %d failed, retrying: %v", attempt+1, err)
		}
	}
	return "", lastErr
}
