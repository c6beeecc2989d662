package services

import "context"

// Summarizer issues one completion request combining the transcript with the
// rendered prompt. Implementations never mutate the transcript and keep no
// per-request state.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, prompt string) (string, error)
}

// Transcriber converts an audio file on disk to plain text. The caller owns
// the file and its cleanup.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, mimeType string) (string, error)
}
