package services

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch URL with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"not a YouTube URL", "https://example.com/video/123", "", true},
		{"empty string", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractVideoID(tc.url)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got id %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestSupportedUploadExt(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"lecture.mp4", true},
		{"LECTURE.MP4", true},
		{"clip.mov", true},
		{"clip.avi", true},
		{"clip.mkv", true},
		{"notes.pdf", false},
		{"song.mp3", false},
		{"noextension", false},
	}

	for _, tc := range tests {
		if got := SupportedUploadExt(tc.filename); got != tc.want {
			t.Errorf("SupportedUploadExt(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}
