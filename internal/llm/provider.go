package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Role identifies the author of a prompt message
type Role string

const (
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role tagged entry of a prompt. The order of messages in a
// prompt is significant.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion request
type Request struct {
	Model    string
	Messages []Message
}

// Response is the provider neutral completion result. It is also the shape
// persisted in the prompt cache, so it must round trip through JSON.
type Response struct {
	Text        string          `json:"text"`
	Model       string          `json:"model,omitempty"`
	TotalTokens int             `json:"total_tokens"`
	Raw         json.RawMessage `json:"raw,omitempty"`

	// Cached is set when the response was served from the prompt cache
	Cached bool `json:"-"`
}

// Provider performs completion requests against a model gateway
type Provider interface {
	// Complete sends the request and returns the model's answer
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name
	Name() string
}

// ErrMissingAPIKey is returned when a provider is built without credentials
var ErrMissingAPIKey = errors.New("API key is required")

// Config holds the settings needed to build a provider
type Config struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	BaseURL  string // optional, OpenAI compatible endpoints only
}

// NewProvider creates the provider named in config
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	switch config.Provider {
	case "", "openai":
		return NewOpenAIProvider(config)
	case "gemini":
		return NewGeminiProvider(ctx, config)
	default:
		return nil, fmt.Errorf("unknown model provider: %s", config.Provider)
	}
}
