package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"vidsum-backend/internal/analysis"
	"vidsum-backend/internal/models"
	"vidsum-backend/internal/repository"
	"vidsum-backend/internal/services"
)

const pastaTranscript = "This is a wonderful and amazing tutorial about cooking pasta. " +
	"The tutorial covers pasta sauce and pasta shapes in detail."

type fakeAcquirer struct {
	transcript string
	meta       models.VideoMetadata
	err        error
}

func (f *fakeAcquirer) AcquireFromURL(_ context.Context, _ string) (string, models.VideoMetadata, error) {
	return f.transcript, f.meta, f.err
}

func (f *fakeAcquirer) AcquireFromUpload(_ context.Context, _ io.Reader, filename, _ string) (string, models.VideoMetadata, error) {
	if f.err != nil {
		return "", models.VideoMetadata{}, f.err
	}
	return f.transcript, models.VideoMetadata{Title: filename, Author: "uploaded file"}, nil
}

type fakeSummarizer struct {
	summary  string
	err      error
	failures int // fail this many calls before succeeding
	calls    int
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls <= f.failures {
		return "", fmt.Errorf("%w: transient failure", services.ErrSummarization)
	}
	if f.summary != "" {
		return f.summary, nil
	}
	return "Summary: " + transcript[:20], nil
}

func newTestOrchestrator(acq *fakeAcquirer, sum *fakeSummarizer, store RecordStore, opts Options) *Orchestrator {
	return NewOrchestrator(acq, sum, analysis.NewSentimentScorer(), store, opts)
}

func defaultParams() models.SummarizeRequest {
	return models.SummarizeRequest{
		Format:           "bullet_points",
		Length:           "short",
		Language:         "english",
		IncludeSentiment: true,
	}
}

func TestRunURL_EndToEnd(t *testing.T) {
	views := int64(1000)
	acq := &fakeAcquirer{
		transcript: pastaTranscript,
		meta: models.VideoMetadata{
			Title: "Pasta 101", Author: "Chef", Length: 300, Views: &views,
		},
	}
	sum := &fakeSummarizer{summary: "- Cook pasta\n- Make sauce"}
	store := repository.NewMemoryStore()

	o := newTestOrchestrator(acq, sum, store, Options{})

	record, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if err != nil {
		t.Fatalf("RunURL failed: %v", err)
	}

	if record.Summary == "" || record.Summary == record.Transcript {
		t.Errorf("summary should be non-empty and distinct from the transcript, got %q", record.Summary)
	}
	if record.Sentiment == nil {
		t.Fatal("expected sentiment in record")
	}
	if record.Sentiment.Overall != "positive" {
		t.Errorf("expected positive sentiment, got %q (compound %v)", record.Sentiment.Overall, record.Sentiment.Compound)
	}

	keywords := strings.Join(record.Keywords, " ")
	if !strings.Contains(keywords, "pasta") || !strings.Contains(keywords, "tutorial") {
		t.Errorf("expected pasta and tutorial among keywords, got %v", record.Keywords)
	}

	// Round trip through the store returns the same record.
	fetched, err := store.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.ID != record.ID || fetched.Summary != record.Summary || fetched.Transcript != record.Transcript {
		t.Error("fetched record differs from the one returned at creation")
	}
}

func TestRunURL_SentimentOmittedWhenNotRequested(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	store := repository.NewMemoryStore()
	o := newTestOrchestrator(acq, &fakeSummarizer{}, store, Options{})

	params := defaultParams()
	params.IncludeSentiment = false

	record, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", params)
	if err != nil {
		t.Fatalf("RunURL failed: %v", err)
	}
	if record.Sentiment != nil {
		t.Errorf("expected nil sentiment, got %+v", record.Sentiment)
	}
}

func TestRunURL_SummarizerFailureIsAtomic(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	sum := &fakeSummarizer{err: fmt.Errorf("%w: rate limited", services.ErrSummarization)}
	store := repository.NewMemoryStore()
	o := newTestOrchestrator(acq, sum, store, Options{})

	before, _ := store.List(context.Background())

	_, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if !errors.Is(err, services.ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}

	after, _ := store.List(context.Background())
	if len(after) != len(before) {
		t.Errorf("failed request changed store size from %d to %d", len(before), len(after))
	}
}

func TestRunURL_AcquisitionFailureIsAtomic(t *testing.T) {
	acq := &fakeAcquirer{err: fmt.Errorf("%w: video is private", services.ErrAcquisition)}
	store := repository.NewMemoryStore()
	o := newTestOrchestrator(acq, &fakeSummarizer{}, store, Options{})

	_, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected ErrAcquisition, got %v", err)
	}

	records, _ := store.List(context.Background())
	if len(records) != 0 {
		t.Errorf("expected nothing persisted, found %d records", len(records))
	}
}

func TestRunURL_InvalidParamsRejectedBeforeAcquisition(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	o := newTestOrchestrator(acq, &fakeSummarizer{}, repository.NewMemoryStore(), Options{})

	params := defaultParams()
	params.Format = "interpretive_dance"

	_, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", params)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestRunURL_EmptyTranscriptIsAcquisitionError(t *testing.T) {
	acq := &fakeAcquirer{transcript: ""}
	o := newTestOrchestrator(acq, &fakeSummarizer{}, repository.NewMemoryStore(), Options{})

	_, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected ErrAcquisition for empty transcript, got %v", err)
	}
}

func TestRunURL_RetriesAreBounded(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	sum := &fakeSummarizer{failures: 2}
	o := newTestOrchestrator(acq, sum, repository.NewMemoryStore(), Options{SummarizeRetries: 2})

	record, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if sum.calls != 3 {
		t.Errorf("expected 3 summarize calls, got %d", sum.calls)
	}
	if record.Summary == "" {
		t.Error("expected non-empty summary after retry")
	}
}

func TestRunURL_NoRetryByDefault(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	sum := &fakeSummarizer{failures: 1}
	o := newTestOrchestrator(acq, sum, repository.NewMemoryStore(), Options{})

	_, err := o.RunURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", defaultParams())
	if !errors.Is(err, services.ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}
	if sum.calls != 1 {
		t.Errorf("expected exactly 1 summarize call, got %d", sum.calls)
	}
}

func TestRunUpload_EndToEnd(t *testing.T) {
	acq := &fakeAcquirer{transcript: pastaTranscript}
	store := repository.NewMemoryStore()
	o := newTestOrchestrator(acq, &fakeSummarizer{}, store, Options{})

	record, err := o.RunUpload(context.Background(), strings.NewReader("fake video bytes"), "lecture.mp4", "video/mp4", defaultParams())
	if err != nil {
		t.Fatalf("RunUpload failed: %v", err)
	}

	if record.Metadata.Title != "lecture.mp4" {
		t.Errorf("expected filename-derived title, got %q", record.Metadata.Title)
	}
	if record.Metadata.Views != nil {
		t.Errorf("uploads have no view count, got %v", *record.Metadata.Views)
	}
}
