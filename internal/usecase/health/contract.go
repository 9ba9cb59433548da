package health

import "context"

// Database checks availability and that each search index is in place.
type Database interface {
	Ping(ctx context.Context) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// CircuitReporter exposes a retriever's breaker. Open reports whether the
// entity type is currently short-circuited.
type CircuitReporter interface {
	Name() string
	Open() bool
}
