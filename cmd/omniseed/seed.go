package main

import (
	"context"
	"fmt"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
)

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

// Seeder writes a fixture through the repositories.
type Seeder struct {
	profiles profileWriter
	sitters  catalogWriter
	products catalogWriter
	graph    graphWriter
}

// Stats counts what a Seed call wrote.
type Stats struct {
	Profiles, Sitters, Products, Follows, Requests int
}

// Seed writes profiles, catalog rows and then graph edges. It stops at the
// first failure; rows written before it stay written.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (Stats, error) {
	var st Stats
	for _, p := range f.DomainProfiles() {
		if err := s.profiles.Upsert(ctx, p); err != nil {
			return st, fmt.Errorf("profile %s: %w", p.ID, err)
		}
		st.Profiles++
	}

	if len(f.Sitters) > 0 {
		if err := s.sitters.UpsertBatch(ctx, domainItems(f.Sitters)); err != nil {
			return st, fmt.Errorf("sitters: %w", err)
		}
		st.Sitters = len(f.Sitters)
	}
	if len(f.Products) > 0 {
		if err := s.products.UpsertBatch(ctx, domainItems(f.Products)); err != nil {
			return st, fmt.Errorf("products: %w", err)
		}
		st.Products = len(f.Products)
	}

	for _, e := range f.Follows {
		if err := s.graph.Follow(ctx, e.From, e.To); err != nil {
			return st, fmt.Errorf("follow %s -> %s: %w", e.From, e.To, err)
		}
		st.Follows++
	}
	for _, e := range f.Requests {
		if err := s.graph.Request(ctx, e.From, e.To); err != nil {
			return st, fmt.Errorf("request %s -> %s: %w", e.From, e.To, err)
		}
		st.Requests++
	}
	return st, nil
}
