package services

import (
	"fmt"
	"strings"
)

var formatInstructions = map[string]string{
	"bullet_points": "Provide the summary in clear bullet points",
	"narrative":     "Write the summary as a flowing narrative story",
	"markdown":      "Format the summary using markdown with appropriate headings and structure",
}

var lengthInstructions = map[string]string{
	"short":  "Keep the summary concise, around 100-150 words",
	"medium": "Provide a comprehensive summary of 200-300 words",
	"long":   "Create a detailed summary of 400-500 words",
}

var supportedLanguages = map[string]bool{
	"english":  true,
	"spanish":  true,
	"french":   true,
	"german":   true,
	"japanese": true,
	"chinese":  true,
}

// ValidateSummaryParams rejects unrecognized enum values instead of silently
// defaulting them.
func ValidateSummaryParams(format, length, language string) error {
	if _, ok := formatInstructions[format]; !ok {
		return fmt.Errorf("%w: unknown format %q", ErrConfiguration, format)
	}
	if _, ok := lengthInstructions[length]; !ok {
		return fmt.Errorf("%w: unknown length %q", ErrConfiguration, length)
	}
	if !supportedLanguages[language] {
		return fmt.Errorf("%w: unsupported language %q", ErrConfiguration, language)
	}
	return nil
}

// BuildSummaryPrompt renders the instruction text for the summarization call.
// Pure and deterministic: the same parameters always produce the same prompt.
// The transcript itself is appended by the provider, not here.
func BuildSummaryPrompt(format, length, language string) (string, error) {
	if err := ValidateSummaryParams(format, length, language); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("Please summarize the following video transcript.\n\n")
	b.WriteString(fmt.Sprintf("Format: %s\n", formatInstructions[format]))
	b.WriteString(fmt.Sprintf("Length: %s\n", lengthInstructions[length]))
	b.WriteString(fmt.Sprintf("Language: Please provide the summary in %s\n\n", language))
	b.WriteString("Focus on the main topics, key insights, and important information covered in the video.\n")

	return b.String(), nil
}
