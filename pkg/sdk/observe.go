package omnisearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/domain"
)

// outcome classifies how a client call ended. It is the "outcome" label of
// every SDK metric.
type outcome string

const (
	outcomeOK          outcome = "ok"
	outcomePartial     outcome = "partial"
	outcomeInvalid     outcome = "invalid"
	outcomeUnavailable outcome = "unavailable"
	outcomeCanceled    outcome = "canceled"
	outcomeTimeout     outcome = "timeout"
	outcomeError       outcome = "error"
)

// classify maps an error returned by the client to its outcome.
// ErrSearchUnavailable wins over the context errors it may wrap.
func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrInvalidQuery):
		return outcomeInvalid
	case errors.Is(err, domain.ErrSearchUnavailable):
		return outcomeUnavailable
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	default:
		return outcomeError
	}
}

type sdkMetrics struct {
	calls       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	failedTypes *prometheus.CounterVec
	results     prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omnisearch",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Client calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "omnisearch",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Client call latency by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		failedTypes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omnisearch",
			Subsystem: "sdk",
			Name:      "search_failed_types_total",
			Help:      "Entity types missing from partial search responses.",
		}, []string{"type"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "omnisearch",
			Subsystem: "sdk",
			Name:      "search_results",
			Help:      "Ranked results before pagination per successful search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.failedTypes); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points it at the collector already
// registered under the same descriptor so two clients can share a registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("omnisearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("omnisearch: metric registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records client calls. A nil observer, logger or metrics set is a no-op.
type observer struct {
	logger  *zap.Logger
	metrics *sdkMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records a non-search call.
func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	o.record(op, classify(err), time.Since(start), err)
}

// observeSearch records a search call. A response carrying failed entity
// types counts as partial, and each failed type is tallied.
func (o *observer) observeSearch(start time.Time, resp *SearchResponse, err error) {
	if o == nil {
		return
	}
	out := classify(err)
	if out == outcomeOK && resp != nil && resp.Partial {
		out = outcomePartial
	}
	dur := time.Since(start)

	if o.metrics != nil && resp != nil {
		o.metrics.results.Observe(float64(resp.Total))
		for _, t := range resp.Failed {
			o.metrics.failedTypes.WithLabelValues(string(t)).Inc()
		}
	}
	if out == outcomePartial && o.logger != nil {
		failed := make([]string, len(resp.Failed))
		for i, t := range resp.Failed {
			failed[i] = string(t)
		}
		o.logger.Info("search partial",
			zap.Strings("failed_types", failed),
			zap.Int("total", resp.Total),
			zap.Duration("duration", dur),
		)
	}
	o.record("search", out, dur, err)
}

func (o *observer) record(op string, out outcome, dur time.Duration, err error) {
	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, string(out)).Inc()
		o.metrics.duration.WithLabelValues(op, string(out)).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("outcome", string(out)),
		zap.Duration("duration", dur),
	}
	switch out {
	case outcomeOK, outcomePartial:
		o.logger.Debug("call completed", fields...)
	case outcomeInvalid, outcomeCanceled:
		// caller side, not an SDK fault
		o.logger.Debug("call rejected", append(fields, zap.Error(err))...)
	default:
		o.logger.Warn("call failed", append(fields, zap.Error(err))...)
	}
}
