package omnisearch

import "github.com/kailas-cloud/omnisearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrSearchUnavailable = domain.ErrSearchUnavailable
	ErrRetrieverOpen     = domain.ErrRetrieverOpen
)
