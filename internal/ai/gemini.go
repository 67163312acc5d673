package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider translates terms through the Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini translation provider
func NewGeminiProvider(config *Config) (*GeminiProvider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	model := config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		apiKey: config.GeminiKey,
		model:  model,
		client: client,
	}, nil
}

// TranslateWords sends all terms in one generation request and parses
// the line-per-term response.
func (p *GeminiProvider) TranslateWords(ctx context.Context, words []string, targetLanguage string) ([]Translation, error) {
	if len(words) == 0 {
		return nil, nil
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(buildPrompt(words, targetLanguage)), nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		return nil, fmt.Errorf("no translation returned")
	}
	return parseTranslations(words, content), nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks whether the provider is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
