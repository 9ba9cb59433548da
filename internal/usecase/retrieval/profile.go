package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/similarity"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
)

// ProfileRetriever finds parent profiles by name, username or phone number
// and attaches the requester's relationship to each.
type ProfileRetriever struct {
	store     ProfileStore
	graph     SocialGraph
	matcher   similarity.Matcher
	overfetch int
	logger    *zap.Logger
}

// NewProfileRetriever creates a parent retriever. The store is asked for
// limit*overfetch text rows so that scoring here picks the top-k.
func NewProfileRetriever(
	store ProfileStore, graph SocialGraph, matcher similarity.Matcher,
	overfetch int, logger *zap.Logger,
) *ProfileRetriever {
	if overfetch < 1 {
		overfetch = 1
	}
	return &ProfileRetriever{
		store:     store,
		graph:     graph,
		matcher:   matcher,
		overfetch: overfetch,
		logger:    logger,
	}
}

// Type returns entity.Parent.
func (r *ProfileRetriever) Type() entity.Type { return entity.Parent }

// Retrieve runs the text path (requester excluded) and, when the query carries
// phone digits, the phone path (requester included). A profile found by both
// keeps the stronger match.
func (r *ProfileRetriever) Retrieve(
	ctx context.Context, q query.Query, limit int,
) ([]candidate.Candidate, error) {
	if limit <= 0 || q.IsEmpty() {
		return nil, nil
	}

	requester := q.RequesterID()
	tokens := q.Tokens()
	byID := make(map[string]candidate.Candidate)

	keep := func(c candidate.Candidate) {
		if prev, ok := byID[c.Ref.ID]; ok && !c.StrongerThan(&prev) {
			return
		}
		byID[c.Ref.ID] = c
	}

	if len(tokens) > 0 && !(q.HasPhone() && isPhoneOnly(tokens)) {
		rows, err := r.store.FindByText(ctx, tokens, limit*r.overfetch)
		if err != nil {
			return nil, fmt.Errorf("profile text lookup: %w", err)
		}
		for i := range rows {
			row := &rows[i]
			if row.ID == requester {
				continue
			}
			kind, sim, ok := r.matcher.Classify(tokens, nameFields(row.Name, row.Username)...)
			if !ok {
				continue
			}
			keep(profileCandidate(row, kind, sim))
		}
	}

	if q.HasPhone() {
		rows, err := r.store.FindByPhoneDigits(ctx, q.PhoneDigits())
		if err != nil {
			return nil, fmt.Errorf("profile phone lookup: %w", err)
		}
		for i := range rows {
			if !rows[i].PhoneSearchable {
				continue
			}
			keep(profileCandidate(&rows[i], match.Phonetic, 1))
		}
	}

	cands := make([]candidate.Candidate, 0, len(byID))
	for _, c := range byID {
		cands = append(cands, c)
	}
	cands = topK(cands, limit)
	r.annotate(ctx, requester, cands)
	return cands, nil
}

// annotate attaches follow status and mutual counts. Lookup failures degrade
// to not_following and zero mutuals.
func (r *ProfileRetriever) annotate(ctx context.Context, requester string, cands []candidate.Candidate) {
	if len(cands) == 0 {
		return
	}
	ids := make([]string, len(cands))
	for i := range cands {
		ids[i] = cands[i].Ref.ID
	}

	statuses, err := r.graph.FollowStatuses(ctx, requester, ids)
	if err != nil {
		metrics.SocialLookupFailures.WithLabelValues("follow_status").Inc()
		r.logger.Warn("Follow status lookup failed, treating as not following",
			zap.String("requester", requester),
			zap.Int("targets", len(ids)),
			zap.Error(err),
		)
		statuses = nil
	}

	mutuals, err := r.graph.MutualCounts(ctx, requester, ids)
	if err != nil {
		metrics.SocialLookupFailures.WithLabelValues("mutual_count").Inc()
		r.logger.Warn("Mutual count lookup failed",
			zap.String("requester", requester),
			zap.Error(err),
		)
		mutuals = nil
	}

	for i := range cands {
		id := cands[i].Ref.ID
		status, ok := statuses[id]
		if !ok {
			status = social.NotFollowing
		}
		cands[i].FollowStatus = status
		cands[i].MutualCount = mutuals[id]
	}
}

func profileCandidate(p *domprofile.Profile, kind match.Kind, sim float64) candidate.Candidate {
	return candidate.Candidate{
		Ref:          entity.Ref{Type: entity.Parent, ID: p.ID},
		Name:         p.Name,
		Username:     p.Username,
		ImageURL:     p.ImageURL,
		Kind:         kind,
		Similarity:   sim,
		Privacy:      p.Privacy,
		FollowStatus: social.NotFollowing,
		Contact: candidate.Contact{
			Bio:      p.Bio,
			Phone:    p.Phone,
			Location: p.Location,
		},
	}
}
