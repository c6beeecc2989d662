package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const summarizerRole = "You are a helpful assistant that summarizes video transcripts. Follow the formatting, length, and language instructions exactly."

// OpenAIService implements Summarizer via chat completions and Transcriber
// via Whisper.
type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (s *OpenAIService) Summarize(ctx context.Context, transcript, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarizerRole,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\nTranscript:\n%s\n\nSummary:\n", prompt, transcript),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: OpenAI API error: %v", ErrSummarization, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: OpenAI returned no choices", ErrSummarization)
	}

	text := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: OpenAI returned empty completion", ErrSummarization)
	}

	return text, nil
}

func (s *OpenAIService) Transcribe(ctx context.Context, audioPath, mimeType string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("Whisper transcription error: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("Whisper returned empty transcription")
	}

	return text, nil
}
