package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/rimlocale/internal/llm"
)

// StubProvider is an llm.Provider that answers from a function and records
// every call. It is safe for concurrent use.
type StubProvider struct {
	// Respond builds the answer text for a request. When nil, Text is returned.
	Respond func(req llm.Request) (string, error)
	Text    string
	Tokens  int
	Cached  bool // mark answers as served from the prompt cache

	mu    sync.Mutex
	calls []llm.Request
}

// Name returns the provider name
func (s *StubProvider) Name() string {
	return "stub"
}

// Complete records the request and returns the stubbed answer
func (s *StubProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := s.Text
	if s.Respond != nil {
		var err error
		text, err = s.Respond(req)
		if err != nil {
			return nil, err
		}
	}

	return &llm.Response{
		Text:        text,
		Model:       req.Model,
		TotalTokens: s.Tokens,
		Cached:      s.Cached,
		Raw:         []byte(fmt.Sprintf(`{"stub":true,"length":%d}`, len(text))),
	}, nil
}

// Calls returns the number of live calls made
func (s *StubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Requests returns a copy of every request seen
func (s *StubProvider) Requests() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Request(nil), s.calls...)
}

// LanguageOf extracts the target language from a translation prompt
func LanguageOf(req llm.Request) string {
	for _, m := range req.Messages {
		if lang, ok := strings.CutPrefix(m.Content, "Language: '"); ok {
			return strings.TrimSuffix(lang, "'")
		}
	}
	return ""
}

// SourcePathOf extracts the relative source path from a translation prompt
func SourcePathOf(req llm.Request) string {
	if len(req.Messages) == 0 {
		return ""
	}
	last := req.Messages[len(req.Messages)-1].Content
	path, _, _ := strings.Cut(last, "\n")
	return path
}

// FencedOutput renders a model answer in the expected format
func FencedOutput(outPath, body string) string {
	return outPath + "\n```xml\n" + body + "\n```"
}
