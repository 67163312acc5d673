package illustration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name          string
		config        *Config
		wantModel     string
		wantSize      string
		wantAvailable bool
	}{
		{
			name: "with API key",
			config: &Config{
				APIKey: "test-key",
				Model:  "dall-e-3",
				Size:   "1024x1024",
			},
			wantModel:     "dall-e-3",
			wantSize:      "1024x1024",
			wantAvailable: true,
		},
		{
			name:          "without API key",
			config:        &Config{},
			wantModel:     "dall-e-2",
			wantSize:      "512x512",
			wantAvailable: false,
		},
		{
			name:          "with defaults",
			config:        &Config{APIKey: "test-key"},
			wantModel:     "dall-e-2",
			wantSize:      "512x512",
			wantAvailable: true,
		},
		{
			name:          "nil config",
			config:        nil,
			wantModel:     "dall-e-2",
			wantSize:      "512x512",
			wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.config)
			if g == nil {
				t.Fatal("NewGenerator() returned nil")
			}
			if g.model != tt.wantModel {
				t.Errorf("model = %s, want %s", g.model, tt.wantModel)
			}
			if g.size != tt.wantSize {
				t.Errorf("size = %s, want %s", g.size, tt.wantSize)
			}
			if g.IsAvailable() != tt.wantAvailable {
				t.Errorf("IsAvailable() = %v, want %v", g.IsAvailable(), tt.wantAvailable)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	g := NewGenerator(&Config{APIKey: "test-key"})

	tests := []struct {
		term         string
		translation  string
		wantContains []string
	}{
		{
			term:         "ябълка",
			translation:  "apple",
			wantContains: []string{"apple", "educational", "flashcard"},
		},
		{
			term:         "котка",
			translation:  "cat",
			wantContains: []string{"cat", "simple", "clear"},
		},
		{
			// A translation the prompt can use may not exist yet.
			term:         "serendipity",
			translation:  "",
			wantContains: []string{"serendipity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			prompt := g.buildPrompt(tt.term, tt.translation)
			for _, want := range tt.wantContains {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt missing expected word %q: %s", want, prompt)
				}
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(&Config{APIKey: "test-key", OutputDir: dir})

	path1 := g.cachePath("ябълка")
	path2 := g.cachePath("ябълка")
	if path1 != path2 {
		t.Errorf("cache paths differ for same input: %s vs %s", path1, path2)
	}

	path3 := g.cachePath("котка")
	if path1 == path3 {
		t.Error("cache paths same for different inputs")
	}

	if filepath.Dir(path1) != dir {
		t.Errorf("cache path not under output dir: %s", path1)
	}
	if !strings.HasSuffix(path1, ".jpg") {
		t.Errorf("cache path has wrong extension: %s", path1)
	}
}

func TestCachePathVariesWithSettings(t *testing.T) {
	small := NewGenerator(&Config{APIKey: "test-key", Size: "512x512", OutputDir: "."})
	large := NewGenerator(&Config{APIKey: "test-key", Size: "1024x1024", OutputDir: "."})

	if small.cachePath("apple") == large.cachePath("apple") {
		t.Error("expected different cache paths for different image sizes")
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	g := NewGenerator(&Config{OutputDir: t.TempDir()})

	_, err := g.Generate(context.Background(), "apple", "apple")
	if err == nil {
		t.Fatal("expected error when no API key is configured")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if genErr.Code != "missing_api_key" {
		t.Errorf("error code = %s, want missing_api_key", genErr.Code)
	}
}

func TestGenerateEmptyTerm(t *testing.T) {
	g := NewGenerator(&Config{APIKey: "test-key", OutputDir: t.TempDir()})
	if _, err := g.Generate(context.Background(), "", "apple"); err == nil {
		t.Error("expected error for empty term")
	}
}

func TestGenerateReturnsCachedFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(&Config{OutputDir: dir}) // no API key on purpose

	cached := g.cachePath("apple")
	if err := os.WriteFile(cached, []byte("cached"), 0644); err != nil {
		t.Fatalf("failed to seed cache file: %v", err)
	}

	got, err := g.Generate(context.Background(), "apple", "apple")
	if err != nil {
		t.Fatalf("Generate() with cached file failed: %v", err)
	}
	if got != cached {
		t.Errorf("Generate() = %s, want cached path %s", got, cached)
	}
}

func TestErrorMessages(t *testing.T) {
	genErr := &GenerationError{Provider: "openai", Code: "empty_response", Message: "no image data returned"}
	if genErr.Error() != "openai: no image data returned" {
		t.Errorf("GenerationError.Error() = %s", genErr.Error())
	}

	rateErr := &RateLimitError{Provider: "openai"}
	if rateErr.Error() != "openai: rate limit exceeded" {
		t.Errorf("RateLimitError.Error() = %s", rateErr.Error())
	}
}
