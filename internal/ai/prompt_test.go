package ai

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt([]string{"fast", "fast and"}, "Bulgarian")

	if !strings.Contains(prompt, "Bulgarian") {
		t.Error("prompt does not name the target language")
	}
	for _, term := range []string{"fast\n", "fast and\n"} {
		if !strings.Contains(prompt, term) {
			t.Errorf("prompt missing term %q:\n%s", term, prompt)
		}
	}
}

func TestParseTranslations(t *testing.T) {
	words := []string{"fast", "furious", "fast and"}

	tests := []struct {
		name     string
		response string
		want     []Translation
	}{
		{
			name:     "clean equals format",
			response: "fast = бърз\nfurious = яростен\nfast and = бързо и",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: "яростен"},
				{Term: "fast and", Translation: "бързо и"},
			},
		},
		{
			name:     "tab separated",
			response: "fast\tбърз\nfurious\tяростен\nfast and\tбързо и",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: "яростен"},
				{Term: "fast and", Translation: "бързо и"},
			},
		},
		{
			name: "bullets and noise tolerated",
			response: `Here are your translations:
- fast = бърз
* furious = яростен

fast and = бързо и
Hope that helps!`,
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: "яростен"},
				{Term: "fast and", Translation: "бързо и"},
			},
		},
		{
			name:     "numbered lines tolerated",
			response: "1. fast = бърз\n2) furious = яростен\n3. fast and = бързо и",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: "яростен"},
				{Term: "fast and", Translation: "бързо и"},
			},
		},
		{
			name:     "missing terms keep empty translations",
			response: "fast = бърз",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: ""},
				{Term: "fast and", Translation: ""},
			},
		},
		{
			name:     "case-insensitive term matching",
			response: "Fast = бърз\nFURIOUS = яростен\nFast And = бързо и",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: "яростен"},
				{Term: "fast and", Translation: "бързо и"},
			},
		},
		{
			name:     "first line wins on duplicates",
			response: "fast = бърз\nfast = скоростен",
			want: []Translation{
				{Term: "fast", Translation: "бърз"},
				{Term: "furious", Translation: ""},
				{Term: "fast and", Translation: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTranslations(words, tt.response); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseTranslations() = %v, want %v", got, tt.want)
			}
		})
	}
}
