package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals a search query rejected by validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSearchUnavailable signals that every retriever failed. Callers may retry.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrRetrieverOpen signals a retriever short-circuited by its breaker.
	ErrRetrieverOpen = errors.New("retriever circuit open")
)

// RetrievalError records the failure of a single entity type's retriever.
// On its own it degrades a search to a partial result.
type RetrievalError struct {
	Type string
	Err  error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Type, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
