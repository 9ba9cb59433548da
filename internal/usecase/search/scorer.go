package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/result"
)

// Prior bounds.
const (
	MinPrior = 0.5
	MaxPrior = 1.5
	// BoostCeiling caps the popularity term regardless of priors.
	BoostCeiling = 0.1
)

// ScoringConfig holds relevance tuning.
type ScoringConfig struct {
	// Priors is the multiplicative weight per entity type.
	Priors map[entity.Type]float64
	// MaxBoost is the largest additive popularity term.
	MaxBoost float64
	// ReviewSaturation is the review count that earns half the rating boost.
	ReviewSaturation float64
	// MutualSaturation is the mutual connection count that earns half the boost.
	MutualSaturation float64
}

// DefaultScoring favors people over products slightly.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Priors: map[entity.Type]float64{
			entity.Parent:  1.0,
			entity.Sitter:  0.95,
			entity.Product: 0.9,
		},
		MaxBoost:         0.1,
		ReviewSaturation: 20,
		MutualSaturation: 5,
	}
}

// Validate checks bounds. The boost must stay below the smallest scaled gap
// between the exact and prefix tiers so popularity never lifts a prefix match
// over an exact one of the same type.
func (c ScoringConfig) Validate() error {
	minPrior := math.Inf(1)
	for _, t := range entity.All() {
		p, ok := c.Priors[t]
		if !ok {
			return fmt.Errorf("missing prior for %s", t)
		}
		if p < MinPrior || p > MaxPrior {
			return fmt.Errorf("prior for %s must be in [%.1f, %.1f], got %v", t, MinPrior, MaxPrior, p)
		}
		minPrior = math.Min(minPrior, p)
	}
	if c.MaxBoost < 0 || c.MaxBoost > BoostCeiling {
		return fmt.Errorf("max boost must be in [0, %.1f], got %v", BoostCeiling, c.MaxBoost)
	}
	if gap := minPrior * match.TierGap; c.MaxBoost >= gap {
		return fmt.Errorf("max boost %v must be below the scaled tier gap %v", c.MaxBoost, gap)
	}
	if c.ReviewSaturation <= 0 || c.MutualSaturation <= 0 {
		return errors.New("saturation points must be positive")
	}
	return nil
}

// Scorer computes the unified relevance score. It is pure.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer validates cfg and returns a scorer.
func NewScorer(cfg ScoringConfig) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	priors := make(map[entity.Type]float64, len(cfg.Priors))
	for k, v := range cfg.Priors {
		priors[k] = v
	}
	cfg.Priors = priors
	return &Scorer{cfg: cfg}, nil
}

// Score returns clamp(base * prior + boost, 0, result.MaxScore).
// A phone match has base 1.0; a parent with mutual connections still gets
// the boost on top, so two phone matches order by mutuals.
func (s *Scorer) Score(c *candidate.Candidate) float64 {
	prior, ok := s.cfg.Priors[c.Ref.Type]
	if !ok {
		prior = MinPrior
	}
	v := c.Base()*prior + s.boost(c)
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > result.MaxScore:
		return result.MaxScore
	default:
		return v
	}
}

// boost returns a popularity term in [0, MaxBoost).
func (s *Scorer) boost(c *candidate.Candidate) float64 {
	var signal float64
	switch c.Ref.Type {
	case entity.Parent:
		signal = saturate(float64(c.MutualCount), s.cfg.MutualSaturation)
	case entity.Sitter, entity.Product:
		rating := math.Max(0, math.Min(c.Rating/5, 1))
		signal = rating * saturate(float64(c.ReviewCount), s.cfg.ReviewSaturation)
	}
	return s.cfg.MaxBoost * signal
}

// saturate maps n >= 0 onto [0, 1), reaching 0.5 at half.
func saturate(n, half float64) float64 {
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return n / (n + half)
}
