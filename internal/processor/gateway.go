package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/rimlocale/internal/cli"
	"codeberg.org/snonux/rimlocale/internal/llm"
	"codeberg.org/snonux/rimlocale/internal/promptcache"
)

// BuildProvider creates the model provider selected by flags. The live
// provider is optionally wrapped in a circuit breaker and then in the prompt
// cache, so cache hits never reach the breaker. The returned CachedProvider
// is nil when caching is disabled.
func BuildProvider(ctx context.Context, flags *cli.Flags, apiKey string, log zerolog.Logger) (llm.Provider, *promptcache.CachedProvider, error) {
	live, err := llm.NewProvider(ctx, llm.Config{
		Provider: flags.Provider,
		APIKey:   apiKey,
		BaseURL:  flags.BaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s provider: %w", flags.Provider, err)
	}

	var provider llm.Provider = live
	if flags.BreakerFailures > 0 {
		provider = llm.NewBreakerProvider(provider, uint32(flags.BreakerFailures), flags.BreakerTimeout, log)
	}

	if flags.NoCache {
		log.Info().Msg("prompt cache disabled")
		return provider, nil, nil
	}

	cached := promptcache.NewCachedProvider(provider, promptcache.New(flags.CacheDir, log), log)
	return cached, cached, nil
}
