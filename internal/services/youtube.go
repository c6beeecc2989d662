package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"

	"vidsum-backend/internal/models"
)

var youtubeIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([\w-]{11})`)

type YouTubeService struct {
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

func NewYouTubeService() *YouTubeService {
	return &YouTubeService{
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
	}
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(url string) (string, error) {
	matches := youtubeIDRegex.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid YouTube URL: %s", url)
	}
	return matches[1], nil
}

// GetTranscript fetches the caption track for a YouTube video.
func (s *YouTubeService) GetTranscript(videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		// Fallback: request any available language
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
		if err != nil {
			return "", fmt.Errorf("no subtitles available: %w", err)
		}
	}

	if len(transcript.Entries) == 0 {
		return "", fmt.Errorf("subtitle track is empty")
	}

	var fullText strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		fullText.WriteString(text)
		fullText.WriteString(" ")
	}

	cleaned := strings.TrimSpace(fullText.String())
	if cleaned == "" {
		return "", fmt.Errorf("subtitle text resolved to empty content")
	}

	return cleaned, nil
}

// GetMetadata fetches title, author, duration, view count, and thumbnail.
func (s *YouTubeService) GetMetadata(ctx context.Context, videoID string) (models.VideoMetadata, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("failed to fetch YouTube video metadata: %w", err)
	}

	views := int64(video.Views)
	meta := models.VideoMetadata{
		Title:  video.Title,
		Author: video.Author,
		Length: int(video.Duration.Seconds()),
		Views:  &views,
	}

	best := 0
	for _, t := range video.Thumbnails {
		if int(t.Width) >= best {
			best = int(t.Width)
			meta.Thumbnail = t.URL
		}
	}
	if meta.Thumbnail == "" {
		meta.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
	}

	return meta, nil
}

// DownloadAudio streams the best available audio-only format into a temp file
// under dir and returns its path and MIME type. The caller removes the file.
func (s *YouTubeService) DownloadAudio(ctx context.Context, videoID, dir string) (string, string, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch YouTube video: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", "", fmt.Errorf("no audio formats available")
	}

	best := formats[0]
	for _, f := range formats {
		if f.Bitrate > best.Bitrate {
			best = f
		}
	}

	stream, _, err := s.ytClient.GetStreamContext(ctx, video, &best)
	if err != nil {
		return "", "", fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	tmp, err := os.CreateTemp(dir, "audio-*.m4a")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp audio file: %w", err)
	}

	const maxAudioBytes = 100 * 1024 * 1024 // 100MB safety cap
	n, err := io.Copy(tmp, io.LimitReader(stream, maxAudioBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("failed to download audio stream: %w", err)
	}
	if n > maxAudioBytes {
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("audio stream exceeds %d MB limit", maxAudioBytes/(1024*1024))
	}

	mimeType := strings.TrimSpace(strings.Split(best.MimeType, ";")[0])
	if mimeType == "" {
		mimeType = "audio/mp4"
	}

	return tmp.Name(), mimeType, nil
}
