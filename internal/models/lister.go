package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels lists all available OpenAI models categorized by type
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lexipick.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	chatModels, imageModels := categorize(ids)

	// Print models
	fmt.Println("Available OpenAI Models:")

	fmt.Println("\nImage Generation Models (for illustrations):")
	if len(imageModels) == 0 {
		fmt.Println("  No image models found")
	} else {
		for _, model := range imageModels {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nChat Models (for word translation):")
	if len(chatModels) > 10 {
		// Show only relevant models
		relevantModels := []string{}
		for _, model := range chatModels {
			if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
				relevantModels = append(relevantModels, model)
			}
		}
		for _, model := range relevantModels {
			fmt.Printf("  %s\n", model)
		}
		fmt.Printf("  ... and %d more models\n", len(chatModels)-len(relevantModels))
	} else {
		for _, model := range chatModels {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}

// categorize splits model IDs into chat and image generation models, sorted
// alphabetically. Models that are neither (embeddings, audio, moderation)
// are dropped.
func categorize(ids []string) (chatModels, imageModels []string) {
	for _, id := range ids {
		switch {
		case strings.Contains(id, "dall-e") || strings.Contains(id, "image"):
			imageModels = append(imageModels, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			chatModels = append(chatModels, id)
		}
	}
	sort.Strings(chatModels)
	sort.Strings(imageModels)
	return chatModels, imageModels
}
