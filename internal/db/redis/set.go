package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/omnisearch/internal/db"
)

// SAdd adds members to a set.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SMIsMember checks membership of several members in one round-trip.
// A missing key reports every member as absent.
func (s *Store) SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error) {
	if len(members) == 0 {
		return nil, nil
	}
	cmd := s.b().Smismember().Key(key).Member(members...).Build()
	flags, err := s.do(ctx, cmd).AsIntSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMIsMember, Err: err}
	}
	if len(flags) != len(members) {
		return nil, &db.Error{
			Op:  db.OpSMIsMember,
			Err: fmt.Errorf("expected %d replies, got %d", len(members), len(flags)),
		}
	}

	out := make([]bool, len(flags))
	for i, f := range flags {
		out[i] = f == 1
	}
	return out, nil
}

// SInterCardMulti computes SINTERCARD for each key set in a single DoMulti round-trip.
func (s *Store) SInterCardMulti(ctx context.Context, keySets [][]string) ([]int64, error) {
	if len(keySets) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keySets))
	for i, keys := range keySets {
		cmds[i] = s.b().Sintercard().Numkeys(int64(len(keys))).Key(keys...).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]int64, len(results))
	for i, res := range results {
		n, err := res.AsInt64()
		if err != nil {
			return nil, &db.Error{Op: db.OpSInterCard, Err: fmt.Errorf("keys %v: %w", keySets[i], err)}
		}
		out[i] = n
	}
	return out, nil
}
