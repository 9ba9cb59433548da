package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
)

// BreakerSettings tunes a retriever circuit breaker.
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears closed-state counts; 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// MinRequests before the failure ratio is considered.
	MinRequests uint32
	// FailureRatio at or above which the breaker trips.
	FailureRatio float64
}

// DefaultBreakerSettings returns conservative breaker tuning.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  1,
		Interval:     30 * time.Second,
		Timeout:      10 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// Breaker short-circuits a failing retriever so a dead store fails fast.
// Calls abandoned by the caller do not count as failures.
type Breaker struct {
	inner Retriever
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner with a circuit breaker named after its entity type.
func NewBreaker(inner Retriever, s BreakerSettings, logger *zap.Logger) *Breaker {
	typ := string(inner.Type())
	st := gobreaker.Settings{
		Name:        typ,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			logger.Warn("Retriever breaker state changed",
				zap.String("type", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	metrics.BreakerState.WithLabelValues(typ).Set(float64(gobreaker.StateClosed))
	return &Breaker{inner: inner, cb: gobreaker.NewCircuitBreaker(st)}
}

// Type returns the wrapped retriever's entity type.
func (b *Breaker) Type() entity.Type { return b.inner.Type() }

// State reports the current breaker state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Name returns the breaker name, the entity type.
func (b *Breaker) Name() string { return b.cb.Name() }

// Open reports whether calls are currently short-circuited.
func (b *Breaker) Open() bool { return b.cb.State() == gobreaker.StateOpen }

// Retrieve delegates through the breaker. An open breaker yields domain.ErrRetrieverOpen.
func (b *Breaker) Retrieve(ctx context.Context, q query.Query, limit int) ([]candidate.Candidate, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Retrieve(ctx, q, limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", b.Type(), domain.ErrRetrieverOpen)
	}
	if err != nil {
		return nil, err //nolint:wrapcheck // inner error already carries context
	}
	return res.([]candidate.Candidate), nil
}
