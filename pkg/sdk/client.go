package omnisearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/app"
	"github.com/kailas-cloud/omnisearch/internal/db"
	dbRedis "github.com/kailas-cloud/omnisearch/internal/db/redis"
	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	healthuc "github.com/kailas-cloud/omnisearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/omnisearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) (searchuc.Response, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type schemaUseCase interface {
	EnsureSchema(ctx context.Context, logger *zap.Logger) error
}

type profileWriter interface {
	Upsert(ctx context.Context, row domprofile.Profile) error
}

type catalogWriter interface {
	UpsertBatch(ctx context.Context, rows []domcatalog.Item) error
}

type graphWriter interface {
	Follow(ctx context.Context, follower, target string) error
	Request(ctx context.Context, requester, target string) error
}

type conn interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the omnisearch entry point.
type Client struct {
	conn      conn
	searchSvc searchUseCase
	healthSvc healthUseCase
	schema    schemaUseCase
	profiles  profileWriter
	sitters   catalogWriter
	products  catalogWriter
	graph     graphWriter
	logger    *zap.Logger
	obs       *observer
}

// New creates a Client and connects to Redis.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("omnisearch: database address required (use WithRedis or WithCluster)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		DB:         cfg.db,
		Standalone: cfg.standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("omnisearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("omnisearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func settingsFor(cfg *clientConfig) app.Settings {
	s := app.DefaultSettings()
	s.KeyPrefix = cfg.keyPrefix
	s.Search.PerTypeLimit = cfg.perTypeLimit
	s.Search.RetrieverTimeout = cfg.retrieverTimeout
	if cfg.fuzzyThreshold > 0 {
		s.Matcher.Threshold = cfg.fuzzyThreshold
	}
	if cfg.noBreaker {
		s.Breaker = nil
	}
	return s
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a, err := app.Build(store, settingsFor(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("omnisearch: %w", err)
	}

	return &Client{
		conn:      store,
		searchSvc: a.Search,
		healthSvc: a.Health,
		schema:    a,
		profiles:  a.Profiles,
		sitters:   a.Sitters,
		products:  a.Products,
		graph:     a.Social,
		logger:    logger,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureSchema creates the parent, sitter and product indexes if missing.
func (c *Client) EnsureSchema(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ensure_schema", start, err) }()

	return c.schema.EnsureSchema(ctx, c.logger) //nolint:wrapcheck // already wrapped by app
}

// Search runs one query across every entity type. It fails with
// ErrInvalidQuery for a rejected request and with ErrSearchUnavailable when
// no entity type could be retrieved; any other per-type failure yields a
// response with Partial set.
func (c *Client) Search(ctx context.Context, req SearchRequest) (resp *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observeSearch(start, resp, err) }()

	page, err := query.NewPage(req.Offset, req.Size)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	q, err := query.New(req.Query, req.RequesterID, page, req.Token)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResponse(&out, page), nil
}
