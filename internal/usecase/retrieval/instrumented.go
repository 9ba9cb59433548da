package retrieval

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
)

// Instrumented wraps a Retriever with duration and outcome metrics and logging.
type Instrumented struct {
	inner  Retriever
	logger *zap.Logger
}

// NewInstrumented wraps inner with observability.
func NewInstrumented(inner Retriever, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, logger: logger}
}

// Type returns the wrapped retriever's entity type.
func (i *Instrumented) Type() entity.Type { return i.inner.Type() }

// Retrieve delegates to the inner retriever and records the outcome.
func (i *Instrumented) Retrieve(ctx context.Context, q query.Query, limit int) ([]candidate.Candidate, error) {
	typ := string(i.inner.Type())
	start := time.Now()

	cands, err := i.inner.Retrieve(ctx, q, limit)

	duration := time.Since(start)
	outcome := retrievalOutcome(err)
	metrics.RetrievalDuration.WithLabelValues(typ).Observe(duration.Seconds())
	metrics.RetrievalsTotal.WithLabelValues(typ, outcome).Inc()

	if err != nil {
		i.logger.Warn("Retrieval failed",
			zap.String("type", typ),
			zap.String("outcome", outcome),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RetrievedCandidates.WithLabelValues(typ).Add(float64(len(cands)))
	i.logger.Debug("Retrieval completed",
		zap.String("type", typ),
		zap.Duration("duration", duration),
		zap.Int("candidates", len(cands)),
	)
	return cands, nil
}

func retrievalOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRetrieverOpen):
		return "open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
