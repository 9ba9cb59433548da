package omnisearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs      []string
	username   string
	password   string
	db         int
	standalone bool

	keyPrefix        string
	retrieverTimeout time.Duration
	perTypeLimit     int
	fuzzyThreshold   float64
	noBreaker        bool

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis 8+ instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCluster configures the client for a Redis cluster seeded by addrs.
func WithCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.username = username
		c.password = password
	})
}

// WithDB selects the logical database (standalone only).
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix namespaces every key and index. Must end with ':'.
// Default: "omni:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithRetrieverTimeout bounds each entity type's retrieval. Default: 2s.
func WithRetrieverTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.retrieverTimeout = d
	})
}

// WithPerTypeLimit caps candidates kept per entity type. Default: 100.
func WithPerTypeLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.perTypeLimit = n
	})
}

// WithFuzzyThreshold sets the minimum similarity for a fuzzy match.
// Default: 0.3.
func WithFuzzyThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.fuzzyThreshold = t
	})
}

// WithoutBreaker disables per-type circuit breakers.
func WithoutBreaker() Option {
	return optionFunc(func(c *clientConfig) {
		c.noBreaker = true
	})
}

// WithLogger enables structured logging for client and pipeline operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (calls by outcome, latency and the
// entity types missing from partial searches) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
