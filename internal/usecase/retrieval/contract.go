package retrieval

import (
	"context"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
)

// Retriever fetches match candidates of one entity type.
// Implementations return at most limit candidates, preferring stronger matches.
type Retriever interface {
	Type() entity.Type
	Retrieve(ctx context.Context, q query.Query, limit int) ([]candidate.Candidate, error)
}

// ProfileStore reads parent profiles.
type ProfileStore interface {
	FindByText(ctx context.Context, tokens []string, limit int) ([]domprofile.Profile, error)
	FindByPhoneDigits(ctx context.Context, digits string) ([]domprofile.Profile, error)
}

// CatalogStore reads sitters or products.
type CatalogStore interface {
	Type() entity.Type
	FindByText(ctx context.Context, tokens []string, limit int) ([]domcatalog.Item, error)
}

// SocialGraph resolves the requester's relationship to target profiles.
type SocialGraph interface {
	FollowStatuses(ctx context.Context, requester string, targets []string) (map[string]social.FollowStatus, error)
	MutualCounts(ctx context.Context, requester string, targets []string) (map[string]int, error)
}
