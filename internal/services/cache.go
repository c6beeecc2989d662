package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const transcriptCacheTTL = 24 * time.Hour

// TranscriptCache caches acquired transcripts by video ID so repeated
// requests for the same video skip caption fetch and speech-to-text. A nil
// client disables caching.
type TranscriptCache struct {
	client *redis.Client
}

func NewTranscriptCache(client *redis.Client) *TranscriptCache {
	return &TranscriptCache{client: client}
}

func (c *TranscriptCache) Get(ctx context.Context, videoID string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, transcriptKey(videoID)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (c *TranscriptCache) Set(ctx context.Context, videoID, transcript string) {
	if c == nil || c.client == nil {
		return
	}
	// Cache failures are not worth failing a request over.
	c.client.Set(ctx, transcriptKey(videoID), transcript, transcriptCacheTTL)
}

func transcriptKey(videoID string) string {
	return fmt.Sprintf("transcript:%s", videoID)
}
