package illustration

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lexipick/internal"
)

// GenerationError represents an error reported by the image provider
type GenerationError struct {
	Provider string
	Code     string
	Message  string
}

func (e *GenerationError) Error() string {
	return e.Provider + ": " + e.Message
}

// RateLimitError indicates that the provider refused the request due to quota
type RateLimitError struct {
	Provider   string
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RateLimitError) Error() string {
	return e.Provider + ": rate limit exceeded"
}

// Config configures illustration generation
type Config struct {
	APIKey    string
	Model     string // Image model (default "dall-e-2")
	Size      string // Requested image size (default "512x512")
	Quality   string // Quality, dall-e-3 only (default "standard")
	Style     string // Style, dall-e-3 only (default "natural")
	OutputDir string // Directory where JPEG files are saved
}

// DefaultConfig returns sensible defaults for flashcard illustrations
func DefaultConfig() *Config {
	return &Config{
		Model:     openai.CreateImageModelDallE2,
		Size:      openai.CreateImageSize512x512,
		Quality:   openai.CreateImageQualityStandard,
		Style:     openai.CreateImageStyleNatural,
		OutputDir: "./illustrations",
	}
}

// Generator creates illustrations through the OpenAI image API
type Generator struct {
	client    *openai.Client
	model     string
	size      string
	quality   string
	style     string
	outputDir string
}

// NewGenerator creates a new illustration generator. A generator without an
// API key is still usable for cached lookups but fails on generation.
func NewGenerator(config *Config) *Generator {
	if config == nil {
		config = DefaultConfig()
	}

	g := &Generator{
		model:     config.Model,
		size:      config.Size,
		quality:   config.Quality,
		style:     config.Style,
		outputDir: config.OutputDir,
	}
	if g.model == "" {
		g.model = openai.CreateImageModelDallE2
	}
	if g.size == "" {
		g.size = openai.CreateImageSize512x512
	}
	if g.quality == "" {
		g.quality = openai.CreateImageQualityStandard
	}
	if g.style == "" {
		g.style = openai.CreateImageStyleNatural
	}
	if g.outputDir == "" {
		g.outputDir = "./illustrations"
	}
	if config.APIKey != "" {
		g.client = openai.NewClient(config.APIKey)
	}
	return g
}

// IsAvailable checks if the generator is configured with an API key
func (g *Generator) IsAvailable() bool {
	return g.client != nil
}

// Generate creates an illustration for the given term and returns the path
// of the saved JPEG file. Both the term and its translation go into the
// prompt so the model can work from whichever side it understands.
// Results are cached per term and generation settings, so repeated calls
// for the same term never hit the API again.
func (g *Generator) Generate(ctx context.Context, term, translation string) (string, error) {
	if term == "" {
		return "", fmt.Errorf("term must not be empty")
	}

	path := g.cachePath(term)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if g.client == nil {
		return "", &GenerationError{
			Provider: "openai",
			Code:     "missing_api_key",
			Message:  "no API key configured",
		}
	}

	req := openai.ImageRequest{
		Prompt:         g.buildPrompt(term, translation),
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}
	// Quality and style are only understood by dall-e-3.
	if g.model == openai.CreateImageModelDallE3 {
		req.Quality = g.quality
		req.Style = g.style
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", &RateLimitError{Provider: "openai"}
		}
		return "", fmt.Errorf("failed to generate illustration: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", &GenerationError{
			Provider: "openai",
			Code:     "empty_response",
			Message:  "no image data returned",
		}
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return "", fmt.Errorf("failed to decode image payload: %w", err)
	}

	img, err := decodeAndScale(raw, maxDimension)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeJPEG(img, path, jpegQuality); err != nil {
		return "", err
	}
	return path, nil
}

// buildPrompt creates an image prompt suited for vocabulary flashcards
func (g *Generator) buildPrompt(term, translation string) string {
	subject := term
	if translation != "" {
		subject = term + " (" + translation + ")"
	}
	return fmt.Sprintf("A simple, clear educational illustration of %q for a language learning flashcard. Single subject on a minimal background, no text in the image.", subject)
}

// cachePath returns the deterministic output path for a term. The hash
// covers the generation settings so changing the model or size produces a
// fresh file instead of reusing a stale one.
func (g *Generator) cachePath(term string) string {
	sum := md5.Sum([]byte(term + "|" + g.model + "|" + g.size + "|" + g.quality + "|" + g.style))
	name := fmt.Sprintf("%s_%s.jpg", internal.SanitizeFilename(term), hex.EncodeToString(sum[:])[:8])
	return filepath.Join(g.outputDir, name)
}
