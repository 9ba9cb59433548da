package search

import (
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/visibility"
)

// filterVisibility applies privacy rules to parent candidates. Hidden
// profiles are dropped; profiles not fully visible lose their private fields.
// Other types pass through untouched. It never fails.
func filterVisibility(cands []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Ref.Type != entity.Parent {
			out = append(out, c)
			continue
		}
		tier := visibility.Decide(c.Privacy, c.FollowStatus)
		if tier == visibility.Hidden {
			continue
		}
		if !tier.ExposesPrivateFields() {
			c = c.Redacted()
		}
		c.Visibility = tier
		out = append(out, c)
	}
	return out
}
