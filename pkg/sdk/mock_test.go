package omnisearch

import (
	"context"

	"go.uber.org/zap"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	healthuc "github.com/kailas-cloud/omnisearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/omnisearch/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, q query.Query) (searchuc.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q query.Query) (searchuc.Response, error) {
	return m.searchFn(ctx, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- schemaUseCase mock ---

type mockSchema struct {
	calls int
	err   error
}

func (m *mockSchema) EnsureSchema(_ context.Context, _ *zap.Logger) error {
	m.calls++
	return m.err
}

// --- writers mock ---

type mockWriters struct {
	profiles []domprofile.Profile
	batches  map[string][]domcatalog.Item
	follows  [][2]string
	requests [][2]string
	err      error
}

func (m *mockWriters) Upsert(_ context.Context, row domprofile.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.profiles = append(m.profiles, row)
	return nil
}

func (m *mockWriters) Follow(_ context.Context, follower, target string) error {
	if m.err != nil {
		return m.err
	}
	m.follows = append(m.follows, [2]string{follower, target})
	return nil
}

func (m *mockWriters) Request(_ context.Context, requester, target string) error {
	if m.err != nil {
		return m.err
	}
	m.requests = append(m.requests, [2]string{requester, target})
	return nil
}

type mockBatch struct {
	name string
	w    *mockWriters
}

func (m mockBatch) UpsertBatch(_ context.Context, rows []domcatalog.Item) error {
	if m.w.err != nil {
		return m.w.err
	}
	if m.w.batches == nil {
		m.w.batches = map[string][]domcatalog.Item{}
	}
	m.w.batches[m.name] = append(m.w.batches[m.name], rows...)
	return nil
}

// --- conn mock ---

type mockConn struct {
	pingErr error
	closed  bool
}

func (m *mockConn) Ping(_ context.Context) error { return m.pingErr }

func (m *mockConn) Close() { m.closed = true }
