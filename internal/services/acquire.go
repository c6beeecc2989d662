package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"vidsum-backend/internal/models"
)

// AcquireTimeouts bounds each external call made during acquisition.
type AcquireTimeouts struct {
	Caption    time.Duration
	Download   time.Duration
	Transcribe time.Duration
}

// Acquirer turns a video reference into a transcript plus metadata. For URLs
// it prefers the caption track and falls back to downloading audio and
// running speech-to-text; uploads always go through audio extraction and
// speech-to-text. Every temp artifact is removed before returning, on success
// and on failure alike.
type Acquirer struct {
	youtube     *YouTubeService
	media       *MediaService
	transcriber Transcriber
	cache       *TranscriptCache
	tmpDir      string
	timeouts    AcquireTimeouts
}

func NewAcquirer(youtube *YouTubeService, media *MediaService, transcriber Transcriber, cache *TranscriptCache, tmpDir string, timeouts AcquireTimeouts) *Acquirer {
	return &Acquirer{
		youtube:     youtube,
		media:       media,
		transcriber: transcriber,
		cache:       cache,
		tmpDir:      tmpDir,
		timeouts:    timeouts,
	}
}

// AcquireFromURL resolves a YouTube URL into transcript and metadata.
func (a *Acquirer) AcquireFromURL(ctx context.Context, url string) (string, models.VideoMetadata, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}

	metaCtx, cancel := context.WithTimeout(ctx, a.timeouts.Caption)
	meta, err := a.youtube.GetMetadata(metaCtx, videoID)
	cancel()
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}

	if cached, ok := a.cache.Get(ctx, videoID); ok {
		return cached, meta, nil
	}

	transcript, captionErr := a.fetchCaptions(ctx, videoID)
	if captionErr != nil {
		log.Printf("caption fetch failed for %s, falling back to speech-to-text: %v", videoID, captionErr)
		transcript, err = a.transcribeFromStream(ctx, videoID)
		if err != nil {
			return "", models.VideoMetadata{}, fmt.Errorf("%w: captions failed (%v) and speech-to-text failed (%v)", ErrAcquisition, captionErr, err)
		}
	}

	a.cache.Set(ctx, videoID, transcript)
	return transcript, meta, nil
}

// AcquireFromUpload persists an uploaded video to a temp file, extracts its
// audio track, and runs speech-to-text over it.
func (a *Acquirer) AcquireFromUpload(ctx context.Context, file io.Reader, filename, declaredMIME string) (string, models.VideoMetadata, error) {
	if !SupportedUploadExt(filename) {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: unsupported file format: %s", ErrAcquisition, filepath.Ext(filename))
	}

	tmp, err := os.CreateTemp(a.tmpDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: failed to store upload: %v", ErrAcquisition, err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, file)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: failed to store upload: %v", ErrAcquisition, err)
	}

	extractCtx, cancel := context.WithTimeout(ctx, a.timeouts.Download)
	audioPath, err := a.media.ExtractAudio(extractCtx, tmp.Name())
	cancel()
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	defer os.Remove(audioPath)

	transcript, err := a.transcribeFile(ctx, audioPath, "audio/wav")
	if err != nil {
		return "", models.VideoMetadata{}, fmt.Errorf("%w: speech-to-text failed: %v", ErrAcquisition, err)
	}

	meta := uploadMetadata(filename, declaredMIME)
	return transcript, meta, nil
}

func (a *Acquirer) fetchCaptions(ctx context.Context, videoID string) (string, error) {
	// The transcript API client has no context plumbing; run it in a
	// goroutine so the caption timeout still applies.
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := a.youtube.GetTranscript(videoID)
		ch <- result{text, err}
	}()

	timer := time.NewTimer(a.timeouts.Caption)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-timer.C:
		return "", fmt.Errorf("caption fetch timed out after %s", a.timeouts.Caption)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (a *Acquirer) transcribeFromStream(ctx context.Context, videoID string) (string, error) {
	downloadCtx, cancel := context.WithTimeout(ctx, a.timeouts.Download)
	audioPath, mimeType, err := a.youtube.DownloadAudio(downloadCtx, videoID, a.tmpDir)
	cancel()
	if err != nil {
		return "", err
	}
	defer os.Remove(audioPath)

	return a.transcribeFile(ctx, audioPath, mimeType)
}

func (a *Acquirer) transcribeFile(ctx context.Context, audioPath, mimeType string) (string, error) {
	transcribeCtx, cancel := context.WithTimeout(ctx, a.timeouts.Transcribe)
	defer cancel()

	transcript, err := a.transcriber.Transcribe(transcribeCtx, audioPath, mimeType)
	if err != nil {
		return "", err
	}
	if transcript == "" {
		return "", fmt.Errorf("transcription resolved to empty text")
	}
	return transcript, nil
}

// uploadMetadata derives placeholder metadata for uploads, where no platform
// data exists.
func uploadMetadata(filename, declaredMIME string) models.VideoMetadata {
	if declaredMIME == "" {
		declaredMIME = mime.TypeByExtension(filepath.Ext(filename))
	}
	meta := models.VideoMetadata{
		Title:  filename,
		Author: "uploaded file",
	}
	if declaredMIME != "" {
		meta.Author = fmt.Sprintf("uploaded file (%s)", declaredMIME)
	}
	return meta
}
