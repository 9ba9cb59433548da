package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	SetStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
}

// SetStore provides set membership operations (social graph edges).
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	// SMIsMember reports membership of each member, in order.
	SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error)
	// SInterCardMulti returns the intersection size of each key set, pipelined.
	SInterCardMulti(ctx context.Context, keySets [][]string) ([]int64, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides text search over FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}
