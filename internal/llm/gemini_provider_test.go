package llm

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeminiProvider_NoAPIKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), Config{Provider: "gemini"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]Message{
		{Role: RoleSystem, Content: "translate mods"},
		{Role: RoleDeveloper, Content: "use backticks"},
		{Role: RoleUser, Content: "Language: 'German'"},
		{Role: RoleAssistant, Content: "ok"},
		{Role: RoleUser, Content: "Defs/x.xml"},
	})

	if system != "translate mods\n\nuse backticks" {
		t.Errorf("system = %q", system)
	}
	if len(contents) != 3 {
		t.Fatalf("got %d contents, want 3", len(contents))
	}

	wantRoles := []string{string(genai.RoleUser), string(genai.RoleModel), string(genai.RoleUser)}
	wantText := []string{"Language: 'German'", "ok", "Defs/x.xml"}
	for i := range contents {
		if contents[i].Role != wantRoles[i] {
			t.Errorf("content %d role = %s, want %s", i, contents[i].Role, wantRoles[i])
		}
		if len(contents[i].Parts) != 1 || contents[i].Parts[0].Text != wantText[i] {
			t.Errorf("content %d text mismatch: %+v", i, contents[i].Parts)
		}
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{name: "default is openai", config: Config{APIKey: "k"}, wantName: "openai"},
		{name: "explicit openai", config: Config{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{name: "gemini", config: Config{Provider: "gemini", APIKey: "k"}, wantName: "gemini"},
		{name: "unknown", config: Config{Provider: "claude", APIKey: "k"}, wantErr: true},
		{name: "missing key", config: Config{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.Name() != tt.wantName {
				t.Errorf("Name() = %s, want %s", p.Name(), tt.wantName)
			}
		})
	}
}
