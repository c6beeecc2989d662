package services

import "errors"

// Pipeline error taxonomy. Each stage normalizes its internal failures to one
// of these before returning, so handlers can map errors to status codes with
// errors.Is without seeing provider details.
var (
	// ErrAcquisition covers unreachable/private videos, unsupported file
	// formats, and caption + speech-to-text both failing.
	ErrAcquisition = errors.New("transcript acquisition failed")

	// ErrConfiguration covers invalid format/length/language parameters.
	ErrConfiguration = errors.New("invalid summary configuration")

	// ErrSummarization covers LLM auth failures, rate limits, and malformed
	// or empty completions.
	ErrSummarization = errors.New("summary generation failed")
)
