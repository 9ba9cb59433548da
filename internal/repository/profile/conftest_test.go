package profile

import (
	"context"
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/db"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn       func(ctx context.Context, key string, fields map[string]string) error
	searchTextFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, schema.NewKeys("")), ms
}
