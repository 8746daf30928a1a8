package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling the wrapped provider after a run of
// consecutive failures. While open, calls fail with gobreaker.ErrOpenState
// until Timeout has passed and a probe request succeeds.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a circuit breaker that opens after
// maxFailures consecutive failures
func NewBreakerProvider(next Provider, maxFailures uint32, timeout time.Duration, log zerolog.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A cancelled run is not the gateway's fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name
func (p *BreakerProvider) Name() string {
	return p.next.Name()
}

// Complete forwards the request unless the breaker is open
func (p *BreakerProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*Response), nil
}

// State reports the breaker state
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
