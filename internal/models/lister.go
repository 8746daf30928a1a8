package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Categorize splits model IDs into reasoning and chat models, sorted.
// Audio, image, embedding and moderation models are dropped.
func Categorize(ids []string) (reasoning, chat []string) {
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts"), strings.Contains(id, "audio"), strings.Contains(id, "realtime"),
			strings.Contains(id, "transcribe"), strings.Contains(id, "dall-e"), strings.Contains(id, "image"),
			strings.Contains(id, "embedding"), strings.Contains(id, "moderation"), strings.Contains(id, "whisper"):
			continue
		case len(id) > 1 && id[0] == 'o' && id[1] >= '0' && id[1] <= '9':
			reasoning = append(reasoning, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			chat = append(chat, id)
		}
	}
	sort.Strings(reasoning)
	sort.Strings(chat)
	return reasoning, chat
}

// ListAvailableModels writes the translation capable models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .rimlocale.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	reasoning, chat := Categorize(ids)

	fmt.Fprintln(w, "Available OpenAI Models:")

	fmt.Fprintln(w, "\nReasoning Models (recommended for translation):")
	if len(reasoning) == 0 {
		fmt.Fprintln(w, "  No reasoning models found")
	}
	for _, model := range reasoning {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat Models:")
	if len(chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range chat {
		fmt.Fprintf(w, "  %s\n", model)
	}

	return nil
}
