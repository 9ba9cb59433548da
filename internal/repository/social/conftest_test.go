package social

import (
	"context"
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// mockStore is an in-memory set store.
type mockStore struct {
	sets         map[string]map[string]bool
	smismemberFn func(ctx context.Context, key string, members ...string) ([]bool, error)
	interCardFn  func(ctx context.Context, keySets [][]string) ([]int64, error)
	calls        int
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	if m.sets == nil {
		m.sets = make(map[string]map[string]bool)
	}
	if m.sets[key] == nil {
		m.sets[key] = make(map[string]bool)
	}
	for _, mem := range members {
		m.sets[key][mem] = true
	}
	return nil
}

func (m *mockStore) SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error) {
	m.calls++
	if m.smismemberFn != nil {
		return m.smismemberFn(ctx, key, members...)
	}
	out := make([]bool, len(members))
	for i, mem := range members {
		out[i] = m.sets[key][mem]
	}
	return out, nil
}

func (m *mockStore) SInterCardMulti(ctx context.Context, keySets [][]string) ([]int64, error) {
	m.calls++
	if m.interCardFn != nil {
		return m.interCardFn(ctx, keySets)
	}
	out := make([]int64, len(keySets))
	for i, keys := range keySets {
		for mem := range m.sets[keys[0]] {
			all := true
			for _, k := range keys[1:] {
				if !m.sets[k][mem] {
					all = false
					break
				}
			}
			if all {
				out[i]++
			}
		}
	}
	return out, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, schema.NewKeys("")), ms
}
