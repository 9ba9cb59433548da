package retrieval

import (
	"context"
	"fmt"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/similarity"
)

// CatalogRetriever finds sitters or products by name. They carry no privacy state.
type CatalogRetriever struct {
	store     CatalogStore
	matcher   similarity.Matcher
	overfetch int
}

// NewCatalogRetriever creates a retriever for the store's entity type.
func NewCatalogRetriever(store CatalogStore, matcher similarity.Matcher, overfetch int) *CatalogRetriever {
	if overfetch < 1 {
		overfetch = 1
	}
	return &CatalogRetriever{store: store, matcher: matcher, overfetch: overfetch}
}

// Type returns the entity type of the underlying store.
func (r *CatalogRetriever) Type() entity.Type { return r.store.Type() }

// Retrieve classifies text matches and keeps the top limit.
func (r *CatalogRetriever) Retrieve(
	ctx context.Context, q query.Query, limit int,
) ([]candidate.Candidate, error) {
	tokens := q.Tokens()
	if limit <= 0 || len(tokens) == 0 || (q.HasPhone() && isPhoneOnly(tokens)) {
		return nil, nil
	}

	items, err := r.store.FindByText(ctx, tokens, limit*r.overfetch)
	if err != nil {
		return nil, fmt.Errorf("%s text lookup: %w", r.Type(), err)
	}

	cands := make([]candidate.Candidate, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		if seen[it.ID] {
			continue
		}
		kind, sim, ok := r.matcher.Classify(tokens, nameFields(it.Name, it.Username)...)
		if !ok {
			continue
		}
		seen[it.ID] = true
		cands = append(cands, r.candidate(it, kind, sim))
	}
	return topK(cands, limit), nil
}

func (r *CatalogRetriever) candidate(it *domcatalog.Item, kind match.Kind, sim float64) candidate.Candidate {
	return candidate.Candidate{
		Ref:         entity.Ref{Type: r.Type(), ID: it.ID},
		Name:        it.Name,
		Username:    it.Username,
		ImageURL:    it.ImageURL,
		Description: it.Description,
		Kind:        kind,
		Similarity:  sim,
		Rating:      it.Rating,
		ReviewCount: it.ReviewCount,
	}
}
