package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var supportedUploadExts = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// MediaService extracts audio tracks from video files with ffmpeg.
type MediaService struct{}

func NewMediaService() *MediaService {
	return &MediaService{}
}

// SupportedUploadExt reports whether the filename has a video extension the
// pipeline can process.
func SupportedUploadExt(filename string) bool {
	return supportedUploadExts[strings.ToLower(filepath.Ext(filename))]
}

// CheckFFmpeg verifies ffmpeg is available on PATH.
func (s *MediaService) CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH")
	}
	return nil
}

// ExtractAudio writes a mono 16kHz WAV of the video's audio track next to the
// source file and returns its path. The caller removes the file.
func (s *MediaService) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		"-v", "quiet",
		audioPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("audio extraction failed: %w (output: %s)", err, string(output))
	}

	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file was not created: %s", audioPath)
	}

	return audioPath, nil
}
