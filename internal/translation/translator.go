package translation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/rimlocale/internal/batch"
	"codeberg.org/snonux/rimlocale/internal/llm"
)

// DefaultModel is the model used when none is configured
const DefaultModel = "o4-mini"

// Result is the outcome of translating one unit
type Result struct {
	Unit       batch.Unit
	OutputPath string
	Tokens     int // live usage only, zero for cache hits
	Cached     bool
	Duration   time.Duration
	Err        error
}

// OK reports whether the unit was translated and written
func (r Result) OK() bool {
	return r.Err == nil
}

// Translator translates mod files into RimWorld language files
type Translator struct {
	provider llm.Provider
	files    *FileContentCache
	root     string
	model    string
	log      zerolog.Logger
}

// NewTranslator creates a translator writing below root
func NewTranslator(provider llm.Provider, files *FileContentCache, root, model string, log zerolog.Logger) *Translator {
	if model == "" {
		model = DefaultModel
	}
	return &Translator{
		provider: provider,
		files:    files,
		root:     root,
		model:    model,
		log:      log,
	}
}

// Files returns the translator's source file cache
func (t *Translator) Files() *FileContentCache {
	return t.files
}

// TranslateUnit loads the unit's source, asks the model for a translation and
// writes the answer to the path the model chose. Every failure is returned in
// the result; nothing is retried.
func (t *Translator) TranslateUnit(ctx context.Context, unit batch.Unit) Result {
	start := time.Now()
	result := Result{Unit: unit}
	log := t.log.With().Str("file", unit.RelPath).Str("language", unit.Language).Logger()

	contents, err := t.files.Load(unit.SourcePath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		log.Error().Err(err).Msg("failed to load source file")
		return result
	}

	if unit.IsFirst {
		log.Info().Msg("converting first unit before dispatching the rest")
	} else {
		log.Info().Msg("converting")
	}

	resp, err := t.provider.Complete(ctx, llm.Request{
		Model:    t.model,
		Messages: BuildPrompt(unit.Language, unit.RelPath, contents),
	})
	if err != nil {
		result.Err = fmt.Errorf("failed to translate %s: %w", unit, err)
		result.Duration = time.Since(start)
		log.Error().Err(err).Msg("model call failed")
		return result
	}
	// A cache hit spent nothing
	result.Cached = resp.Cached
	if !resp.Cached {
		result.Tokens = resp.TotalTokens
	}

	outPath, body, err := ParseOutput(resp.Text)
	if err != nil {
		result.Err = fmt.Errorf("invalid output for %s: %w", unit, err)
		result.Duration = time.Since(start)
		log.Error().
			Err(err).
			Int("output_length", len(resp.Text)).
			Str("output_head", snippet(resp.Text, 120)).
			Msg("invalid output format")
		return result
	}

	written, err := WriteOutput(t.root, outPath, body)
	result.OutputPath = written
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = fmt.Errorf("failed to write %s: %w", unit, err)
		log.Error().
			Err(err).
			Str("output_path", outPath).
			Int("output_length", len(resp.Text)).
			Int("content_length", len(body)).
			Str("output_head", snippet(resp.Text, 120)).
			Str("content_head", snippet(body, 120)).
			Msg("failed to write translation")
		return result
	}

	log.Debug().
		Str("output_path", outPath).
		Bool("cached", resp.Cached).
		Int("tokens", resp.TotalTokens).
		Dur("elapsed", result.Duration).
		Msg("translation written")
	return result
}

// snippet shortens s to at most n bytes for log output
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
