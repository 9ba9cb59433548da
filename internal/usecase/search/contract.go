package search

import (
	"context"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
)

// Retriever fetches match candidates of one entity type.
type Retriever interface {
	Type() entity.Type
	Retrieve(ctx context.Context, q query.Query, limit int) ([]candidate.Candidate, error)
}
