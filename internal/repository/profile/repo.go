package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/omnisearch/internal/db"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// phoneLimit caps phone lookups; a number is shared by at most a household.
const phoneLimit = 10

// store is the consumer interface for profile operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo reads and writes parent profiles.
type Repo struct {
	store store
	keys  schema.Keys
}

// New creates a profile repository.
func New(s store, keys schema.Keys) *Repo {
	return &Repo{store: s, keys: keys}
}

// FindByText returns up to limit profiles whose name or username matches every token.
func (r *Repo) FindByText(ctx context.Context, tokens []string, limit int) ([]domprofile.Profile, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	expr := schema.TextQuery(tokens, schema.FieldName, schema.FieldUsername)
	if expr == "" {
		return nil, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.keys.Index(entity.Parent),
		Query:        expr,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("find profiles by text: %w", err)
	}
	return r.parse(sr), nil
}

// FindByPhoneDigits returns profiles whose normalized phone equals digits and
// whose owner allows phone lookup.
func (r *Repo) FindByPhoneDigits(ctx context.Context, digits string) ([]domprofile.Profile, error) {
	if digits == "" {
		return nil, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.keys.Index(entity.Parent),
		Filters: []db.TagFilter{
			{Field: schema.FieldPhoneDigits, Value: digits},
			{Field: schema.FieldPhoneSearchable, Value: schema.TagTrue},
		},
		Limit:        phoneLimit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("find profiles by phone: %w", err)
	}
	return r.parse(sr), nil
}

// Upsert writes a profile hash.
func (r *Repo) Upsert(ctx context.Context, row domprofile.Profile) error {
	if row.ID == "" {
		return errors.New("profile id is required")
	}
	if err := r.store.HSet(ctx, r.keys.Entity(entity.Parent, row.ID), rowToHash(row)); err != nil {
		return fmt.Errorf("upsert profile %s: %w", row.ID, err)
	}
	return nil
}

func (r *Repo) parse(sr *db.SearchResult) []domprofile.Profile {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	prefix := r.keys.EntityPrefix(entity.Parent)
	rows := make([]domprofile.Profile, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		rows = append(rows, rowFromHash(e.Key, prefix, e.Fields))
	}
	return rows
}
