package promptcache

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/rimlocale/internal/llm"
)

// Stats counts cache activity of a CachedProvider
type Stats struct {
	Hits          int64
	Misses        int64
	Writes        int64
	WriteFailures int64
}

// CachedProvider wraps a provider with the prompt cache. A hit returns the
// stored response without calling the wrapped provider; a miss calls it and
// stores the result. Errors from the wrapped provider are returned as is.
type CachedProvider struct {
	next  llm.Provider
	cache *Cache
	log   zerolog.Logger

	hits, misses, writes, writeFailures atomic.Int64
}

var _ llm.Provider = (*CachedProvider)(nil)

// NewCachedProvider wraps next with cache
func NewCachedProvider(next llm.Provider, cache *Cache, log zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: cache,
		log:   log.With().Str("component", "promptcache").Logger(),
	}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.next.Name()
}

// Complete serves req from the cache or the wrapped provider
func (p *CachedProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if payload, ok := p.cache.Lookup(req.Messages); ok {
		var resp llm.Response
		err := json.Unmarshal([]byte(payload), &resp)
		if err == nil {
			p.hits.Add(1)
			p.log.Debug().Msg("cache hit for prompt")
			resp.Cached = true
			return &resp, nil
		}
		p.log.Warn().Err(err).Msg("ignoring unreadable cache entry")
	}
	p.misses.Add(1)

	resp, err := p.next.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		p.writeFailures.Add(1)
		p.log.Error().Err(err).Msg("failed to encode response for cache")
		return resp, nil
	}

	switch result := p.cache.Store(req.Messages, string(payload)); result.Status {
	case StoreWritten:
		p.writes.Add(1)
	case StoreFailed:
		p.writeFailures.Add(1)
	}
	return resp, nil
}

// Stats returns a snapshot of the cache counters
func (p *CachedProvider) Stats() Stats {
	return Stats{
		Hits:          p.hits.Load(),
		Misses:        p.misses.Load(),
		Writes:        p.writes.Load(),
		WriteFailures: p.writeFailures.Load(),
	}
}
