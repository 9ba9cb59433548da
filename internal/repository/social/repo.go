// Package social reads the follow graph kept as Redis sets.
package social

import (
	"context"
	"fmt"

	domsocial "github.com/kailas-cloud/omnisearch/internal/domain/social"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

// store is the consumer interface for social graph operations (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error)
	SInterCardMulti(ctx context.Context, keySets [][]string) ([]int64, error)
}

// Repo is the social graph repository.
type Repo struct {
	store store
	keys  schema.Keys
}

// New creates a social graph repository.
func New(s store, keys schema.Keys) *Repo {
	return &Repo{store: s, keys: keys}
}

// FollowStatuses resolves the requester's relationship to each target.
// Following wins over a pending request. The requester's own id resolves to
// self without a store call.
func (r *Repo) FollowStatuses(
	ctx context.Context, requester string, targets []string,
) (map[string]domsocial.FollowStatus, error) {
	out := make(map[string]domsocial.FollowStatus, len(targets))
	others := make([]string, 0, len(targets))
	for _, t := range targets {
		if t == requester {
			out[t] = domsocial.Self
			continue
		}
		if _, seen := out[t]; seen {
			continue
		}
		out[t] = domsocial.NotFollowing
		others = append(others, t)
	}
	if len(others) == 0 {
		return out, nil
	}

	following, err := r.store.SMIsMember(ctx, r.keys.Following(requester), others...)
	if err != nil {
		return nil, fmt.Errorf("following of %s: %w", requester, err)
	}
	requested, err := r.store.SMIsMember(ctx, r.keys.Requested(requester), others...)
	if err != nil {
		return nil, fmt.Errorf("requests of %s: %w", requester, err)
	}

	for i, t := range others {
		switch {
		case following[i]:
			out[t] = domsocial.Following
		case requested[i]:
			out[t] = domsocial.RequestPending
		}
	}
	return out, nil
}

// MutualCounts counts, per target, the users the requester follows who also
// follow the target.
func (r *Repo) MutualCounts(ctx context.Context, requester string, targets []string) (map[string]int, error) {
	out := make(map[string]int, len(targets))
	keySets := make([][]string, 0, len(targets))
	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		if t == requester {
			continue
		}
		if _, seen := out[t]; seen {
			continue
		}
		out[t] = 0
		ids = append(ids, t)
		keySets = append(keySets, []string{r.keys.Following(requester), r.keys.Followers(t)})
	}
	if len(ids) == 0 {
		return out, nil
	}

	counts, err := r.store.SInterCardMulti(ctx, keySets)
	if err != nil {
		return nil, fmt.Errorf("mutual counts for %s: %w", requester, err)
	}
	for i, id := range ids {
		out[id] = int(counts[i])
	}
	return out, nil
}

// Follow records that follower follows target.
func (r *Repo) Follow(ctx context.Context, follower, target string) error {
	if err := r.store.SAdd(ctx, r.keys.Following(follower), target); err != nil {
		return fmt.Errorf("follow %s -> %s: %w", follower, target, err)
	}
	if err := r.store.SAdd(ctx, r.keys.Followers(target), follower); err != nil {
		return fmt.Errorf("follower %s <- %s: %w", target, follower, err)
	}
	return nil
}

// Request records a pending follow request from requester to target.
func (r *Repo) Request(ctx context.Context, requester, target string) error {
	if err := r.store.SAdd(ctx, r.keys.Requested(requester), target); err != nil {
		return fmt.Errorf("request %s -> %s: %w", requester, target, err)
	}
	return nil
}
