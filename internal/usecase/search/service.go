package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/omnisearch/internal/logger"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
)

// Defaults for Config.
const (
	DefaultPerTypeLimit     = 50
	DefaultRetrieverTimeout = 2 * time.Second
)

// Config bounds the fan-out.
type Config struct {
	// PerTypeLimit caps candidates per entity type.
	PerTypeLimit int
	// RetrieverTimeout turns a slow retriever into a partial failure.
	RetrieverTimeout time.Duration
}

// Response is one page of merged results.
type Response struct {
	Results []result.Result
	Total   int
	// Partial is set when at least one entity type failed to retrieve.
	Partial bool
	// Failed lists the entity types that failed, in priority order.
	Failed []entity.Type
	// Token echoes the caller's request token, or a generated one.
	Token string
}

// Service orchestrates retrieval, visibility, scoring and merging.
type Service struct {
	retrievers []Retriever
	scorer     *Scorer
	cfg        Config
	logger     *zap.Logger
}

// New creates a search service. Retrievers run concurrently, one per entity type.
func New(retrievers []Retriever, scorer *Scorer, cfg Config, logger *zap.Logger) *Service {
	if cfg.PerTypeLimit <= 0 {
		cfg.PerTypeLimit = DefaultPerTypeLimit
	}
	if cfg.RetrieverTimeout <= 0 {
		cfg.RetrieverTimeout = DefaultRetrieverTimeout
	}
	return &Service{retrievers: retrievers, scorer: scorer, cfg: cfg, logger: logger}
}

type outcome struct {
	typ   entity.Type
	cands []candidate.Candidate
	err   error
}

// Search runs q across every retriever. A failure of some types yields a
// partial response; failure of all of them returns domain.ErrSearchUnavailable.
// An empty query returns an empty page without retrieving.
func (s *Service) Search(ctx context.Context, q query.Query) (Response, error) {
	start := time.Now()
	log := logpkg.FromContextOr(ctx, s.logger)
	token := q.Token()
	if token == "" {
		token = uuid.NewString()
	}

	if q.IsEmpty() {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return Response{Results: []result.Result{}, Token: token}, nil
	}

	outcomes := s.retrieve(ctx, q)

	if err := ctx.Err(); err != nil {
		metrics.SearchesTotal.WithLabelValues("canceled").Inc()
		return Response{}, fmt.Errorf("search canceled: %w", err)
	}

	perType := make(map[entity.Type][]result.Result, len(outcomes))
	var failed []entity.Type
	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			failed = append(failed, o.typ)
			errs = append(errs, &domain.RetrievalError{Type: string(o.typ), Err: o.err})
			continue
		}
		cands := o.cands
		if o.typ == entity.Parent {
			cands = filterVisibility(cands)
		}
		scored := make([]result.Result, len(cands))
		for i := range cands {
			scored[i] = result.New(cands[i], s.scorer.Score(&cands[i]))
		}
		perType[o.typ] = scored
	}

	if len(outcomes) > 0 && len(failed) == len(outcomes) {
		metrics.SearchesTotal.WithLabelValues("unavailable").Inc()
		err := errors.Join(errs...)
		log.Error("All retrievers failed",
			zap.String("token", token),
			zap.Error(err),
		)
		return Response{Token: token}, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	results, total := merge(perType, q.Page())
	resp := Response{
		Results: results,
		Total:   total,
		Partial: len(failed) > 0,
		Failed:  failed,
		Token:   token,
	}

	status := "ok"
	if resp.Partial {
		status = "partial"
		log.Warn("Partial search results",
			zap.String("token", token),
			zap.Stringers("failed", failed),
			zap.Error(errors.Join(errs...)),
		)
	}
	metrics.SearchesTotal.WithLabelValues(status).Inc()
	metrics.SearchResults.Observe(float64(total))
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	log.Debug("Search completed",
		zap.String("token", token),
		zap.Int("tokens", len(q.Tokens())),
		zap.Bool("phone", q.HasPhone()),
		zap.Int("total", total),
		zap.Int("returned", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// retrieve fans out to every retriever and joins on all of them. Goroutines
// record their outcome instead of returning errors so one failure never
// cancels the others. A retriever that outlives its timeout is abandoned and
// counted as failed even if it ignores its context.
func (s *Service) retrieve(ctx context.Context, q query.Query) []outcome {
	outcomes := make([]outcome, len(s.retrievers))

	var g errgroup.Group
	for i, r := range s.retrievers {
		outcomes[i].typ = r.Type()
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, s.cfg.RetrieverTimeout)
			defer cancel()

			cands, err := s.retrieveOne(rctx, r, q)
			outcomes[i].cands, outcomes[i].err = cands, err
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return outcomes
}

type retrieved struct {
	cands []candidate.Candidate
	err   error
}

// retrieveOne runs r under rctx and returns as soon as either r finishes or
// rctx is done. A result that arrives after the deadline is discarded.
func (s *Service) retrieveOne(rctx context.Context, r Retriever, q query.Query) ([]candidate.Candidate, error) {
	done := make(chan retrieved, 1) // buffered: an abandoned retriever never blocks
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- retrieved{err: fmt.Errorf("retriever panic: %v", p)}
			}
		}()
		cands, err := r.Retrieve(rctx, q, s.cfg.PerTypeLimit)
		done <- retrieved{cands: cands, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if err := rctx.Err(); err != nil {
			return nil, fmt.Errorf("retrieve %s: %w", r.Type(), err)
		}
		return res.cands, nil
	case <-rctx.Done():
		return nil, fmt.Errorf("retrieve %s: %w", r.Type(), rctx.Err())
	}
}
