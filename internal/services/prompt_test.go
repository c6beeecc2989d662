package services

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildSummaryPrompt_Deterministic(t *testing.T) {
	first, err := BuildSummaryPrompt("bullet_points", "short", "english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := BuildSummaryPrompt("bullet_points", "short", "english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("same parameters produced different prompts")
	}
}

func TestBuildSummaryPrompt_Instructions(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		length   string
		language string
		contains []string
	}{
		{
			name: "bullet points short english",
			format: "bullet_points", length: "short", language: "english",
			contains: []string{"bullet points", "100-150 words", "in english"},
		},
		{
			name: "narrative medium spanish",
			format: "narrative", length: "medium", language: "spanish",
			contains: []string{"narrative", "200-300 words", "in spanish"},
		},
		{
			name: "markdown long french",
			format: "markdown", length: "long", language: "french",
			contains: []string{"markdown", "400-500 words", "in french"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prompt, err := BuildSummaryPrompt(tc.format, tc.length, tc.language)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tc.contains {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt missing %q:\n%s", want, prompt)
				}
			}
		})
	}
}

func TestBuildSummaryPrompt_RejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		length   string
		language string
	}{
		{"unknown format", "haiku", "short", "english"},
		{"unknown length", "bullet_points", "gigantic", "english"},
		{"unknown language", "bullet_points", "short", "klingon"},
		{"empty format", "", "short", "english"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSummaryPrompt(tc.format, tc.length, tc.language)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
