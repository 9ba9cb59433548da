package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/omnisearch/internal/db"
	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo reads and writes one catalog entity type (sitters or products).
type Repo struct {
	store  store
	keys   schema.Keys
	typ    entity.Type
	fields []string
}

// New creates a catalog repository for typ. Parents have their own repository.
func New(s store, keys schema.Keys, typ entity.Type) (*Repo, error) {
	var fields []string
	switch typ {
	case entity.Sitter:
		fields = []string{schema.FieldName, schema.FieldUsername}
	case entity.Product:
		fields = []string{schema.FieldName}
	default:
		return nil, fmt.Errorf("catalog does not hold %q", typ)
	}
	return &Repo{store: s, keys: keys, typ: typ, fields: fields}, nil
}

// Type returns the entity type served by this repository.
func (r *Repo) Type() entity.Type { return r.typ }

// FindByText returns up to limit rows whose searchable fields match every token.
func (r *Repo) FindByText(ctx context.Context, tokens []string, limit int) ([]domcatalog.Item, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	expr := schema.TextQuery(tokens, r.fields...)
	if expr == "" {
		return nil, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.keys.Index(r.typ),
		Query:        expr,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s by text: %w", r.typ, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	prefix := r.keys.EntityPrefix(r.typ)
	rows := make([]domcatalog.Item, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		rows = append(rows, rowFromHash(e.Key, prefix, e.Fields))
	}
	return rows, nil
}

// UpsertBatch writes rows in one pipelined round-trip.
func (r *Repo) UpsertBatch(ctx context.Context, rows []domcatalog.Item) error {
	items := make([]db.HashSetItem, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return fmt.Errorf("%s id is required", r.typ)
		}
		items = append(items, db.HashSetItem{
			Key:    r.keys.Entity(r.typ, row.ID),
			Fields: rowToHash(row),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %s batch: %w", r.typ, err)
	}
	return nil
}
