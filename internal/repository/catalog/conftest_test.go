package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/db"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn  func(ctx context.Context, items []db.HashSetItem) error
	searchTextFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T, typ entity.Type) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo, err := New(ms, schema.NewKeys(""), typ)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return repo, ms
}
