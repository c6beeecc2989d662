package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		topN int
		want []string
	}{
		{
			name: "empty input returns empty slice",
			text: "",
			topN: 5,
			want: []string{},
		},
		{
			name: "descending frequency with first-occurrence tie break",
			text: "a a a b b c",
			topN: 2,
			want: []string{"a", "b"},
		},
		{
			name: "tie broken by first occurrence",
			text: "zebra apple zebra apple mango",
			topN: 3,
			want: []string{"zebra", "apple", "mango"},
		},
		{
			name: "stop words removed",
			text: "this that with pasta pasta tutorial",
			topN: 5,
			want: []string{"pasta", "tutorial"},
		},
		{
			name: "punctuation stripped and lowercased",
			text: "Pasta! pasta, PASTA. Cooking?",
			topN: 2,
			want: []string{"pasta", "cooking"},
		},
		{
			name: "fewer qualifying tokens than topN",
			text: "hello world",
			topN: 10,
			want: []string{"hello", "world"},
		},
		{
			name: "zero topN returns empty slice",
			text: "hello world",
			topN: 0,
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractKeywords(tc.text, tc.topN)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractKeywords(%q, %d) = %v, want %v", tc.text, tc.topN, got, tc.want)
			}
		})
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	text := "This is a wonderful and amazing tutorial about cooking pasta. " +
		strings.Repeat("pasta sauce garlic basil ", 3)

	first := ExtractKeywords(text, 5)
	for i := 0; i < 20; i++ {
		again := ExtractKeywords(text, 5)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %v vs %v", i, again, first)
		}
	}
}
