package result

import (
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
)

// MaxScore is the upper bound of a final relevance score.
const MaxScore = 1.5

// Result is a scored candidate with its position in the merged ranking.
type Result struct {
	cand  candidate.Candidate
	score float64
	rank  int
}

// New creates a scored result. Rank is assigned later by the merger.
func New(c candidate.Candidate, score float64) Result {
	return Result{cand: c, score: score, rank: -1}
}

// Ref returns the (type, id) identity.
func (r *Result) Ref() entity.Ref { return r.cand.Ref }

// Type returns the entity type.
func (r *Result) Type() entity.Type { return r.cand.Ref.Type }

// ID returns the entity id (unique within its type only).
func (r *Result) ID() string { return r.cand.Ref.ID }

// Score returns the final relevance score.
func (r *Result) Score() float64 { return r.score }

// Rank returns the 0-based position in the full ordering, or -1 before merging.
func (r *Result) Rank() int { return r.rank }

// MatchKind returns how the candidate was retrieved.
func (r *Result) MatchKind() match.Kind { return r.cand.Kind }

// Candidate returns the underlying candidate.
func (r *Result) Candidate() candidate.Candidate { return r.cand }

// WithRank returns a copy positioned at rank.
func (r Result) WithRank(rank int) Result {
	r.rank = rank
	return r
}
