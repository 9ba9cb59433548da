// Package app is the composition root shared by the HTTP server and the
// embeddable client: store -> repositories -> retrievers -> search service.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/config"
	"github.com/kailas-cloud/omnisearch/internal/db"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/similarity"
	catalogrepo "github.com/kailas-cloud/omnisearch/internal/repository/catalog"
	profilerepo "github.com/kailas-cloud/omnisearch/internal/repository/profile"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
	socialrepo "github.com/kailas-cloud/omnisearch/internal/repository/social"
	healthuc "github.com/kailas-cloud/omnisearch/internal/usecase/health"
	"github.com/kailas-cloud/omnisearch/internal/usecase/retrieval"
	searchuc "github.com/kailas-cloud/omnisearch/internal/usecase/search"
)

// Settings tunes the search pipeline.
type Settings struct {
	KeyPrefix string
	Matcher   similarity.Matcher
	Scoring   searchuc.ScoringConfig
	Search    searchuc.Config
	Overfetch int
	// Breaker is nil when circuit breaking is disabled.
	Breaker *retrieval.BreakerSettings
}

// DefaultSettings returns the default pipeline tuning.
func DefaultSettings() Settings {
	b := retrieval.DefaultBreakerSettings()
	return Settings{
		Matcher:   similarity.DefaultMatcher(),
		Scoring:   searchuc.DefaultScoring(),
		Overfetch: 3,
		Breaker:   &b,
	}
}

// SettingsFromConfig maps the file configuration onto pipeline settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	sc := cfg.Search
	s := Settings{
		KeyPrefix: cfg.Storage.KeyPrefix,
		Matcher: similarity.Matcher{
			Threshold:         sc.FuzzyThreshold,
			JaroWinklerWeight: sc.JaroWinklerWeight,
			SoundexFloor:      sc.SoundexFloor,
		},
		Scoring: searchuc.ScoringConfig{
			Priors: map[entity.Type]float64{
				entity.Parent:  sc.Scoring.ParentPrior,
				entity.Sitter:  sc.Scoring.SitterPrior,
				entity.Product: sc.Scoring.ProductPrior,
			},
			MaxBoost:         sc.Scoring.MaxBoost,
			ReviewSaturation: sc.Scoring.ReviewSaturation,
			MutualSaturation: sc.Scoring.MutualSaturation,
		},
		Search: searchuc.Config{
			PerTypeLimit:     sc.PerTypeLimit,
			RetrieverTimeout: time.Duration(sc.RetrieverTimeoutMs) * time.Millisecond,
		},
		Overfetch: sc.Overfetch,
	}
	if !sc.Breaker.Disabled {
		s.Breaker = &retrieval.BreakerSettings{
			MaxRequests:  sc.Breaker.MaxRequests,
			Interval:     time.Duration(sc.Breaker.IntervalSec) * time.Second,
			Timeout:      time.Duration(sc.Breaker.OpenSec) * time.Second,
			MinRequests:  sc.Breaker.MinRequests,
			FailureRatio: sc.Breaker.FailureRatio,
		}
	}
	return s
}

// App holds the wired services and the repositories writers need.
type App struct {
	Keys     schema.Keys
	Search   *searchuc.Service
	Health   *healthuc.Service
	Profiles *profilerepo.Repo
	Sitters  *catalogrepo.Repo
	Products *catalogrepo.Repo
	Social   *socialrepo.Repo
	Breakers []*retrieval.Breaker

	store db.Store
}

// Build wires the pipeline over store. Each retriever is wrapped in a
// breaker (when enabled) and then in metrics instrumentation, so an open
// breaker still shows up in retrieval metrics.
func Build(store db.Store, s Settings, logger *zap.Logger) (*App, error) {
	scorer, err := searchuc.NewScorer(s.Scoring)
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	keys := schema.NewKeys(s.KeyPrefix)
	profiles := profilerepo.New(store, keys)
	graph := socialrepo.New(store, keys)
	sitters, err := catalogrepo.New(store, keys, entity.Sitter)
	if err != nil {
		return nil, fmt.Errorf("sitter repository: %w", err)
	}
	products, err := catalogrepo.New(store, keys, entity.Product)
	if err != nil {
		return nil, fmt.Errorf("product repository: %w", err)
	}

	base := []retrieval.Retriever{
		retrieval.NewProfileRetriever(profiles, graph, s.Matcher, s.Overfetch, logger),
		retrieval.NewCatalogRetriever(sitters, s.Matcher, s.Overfetch),
		retrieval.NewCatalogRetriever(products, s.Matcher, s.Overfetch),
	}

	var (
		retrievers []searchuc.Retriever
		breakers   []*retrieval.Breaker
		circuits   []healthuc.CircuitReporter
	)
	for _, r := range base {
		if s.Breaker != nil {
			b := retrieval.NewBreaker(r, *s.Breaker, logger)
			breakers = append(breakers, b)
			circuits = append(circuits, b)
			r = b
		}
		retrievers = append(retrievers, retrieval.NewInstrumented(r, logger))
	}

	return &App{
		Keys:     keys,
		Search:   searchuc.New(retrievers, scorer, s.Search, logger),
		Health:   healthuc.New(store, indexNames(keys), circuits...),
		Profiles: profiles,
		Sitters:  sitters,
		Products: products,
		Social:   graph,
		Breakers: breakers,
		store:    store,
	}, nil
}

func indexNames(keys schema.Keys) []string {
	types := entity.All()
	names := make([]string, 0, len(types))
	for _, typ := range types {
		names = append(names, keys.Index(typ))
	}
	return names
}

// EnsureSchema creates any missing search index.
func (a *App) EnsureSchema(ctx context.Context, logger *zap.Logger) error {
	if err := schema.Ensure(ctx, a.store, a.Keys, logger); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
