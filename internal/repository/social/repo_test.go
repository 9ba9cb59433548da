package social

import (
	"context"
	"errors"
	"testing"

	domsocial "github.com/kailas-cloud/omnisearch/internal/domain/social"
)

func TestFollowStatuses(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Follow(ctx, "me", "friend"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Request(ctx, "me", "stranger"); err != nil {
		t.Fatal(err)
	}
	// following wins over a stale request
	if err := repo.Request(ctx, "me", "friend"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FollowStatuses(ctx, "me", []string{"me", "friend", "stranger", "nobody", "friend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]domsocial.FollowStatus{
		"me":       domsocial.Self,
		"friend":   domsocial.Following,
		"stranger": domsocial.RequestPending,
		"nobody":   domsocial.NotFollowing,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("%s: got %s, want %s", id, got[id], w)
		}
	}
}

func TestFollowStatuses_OnlySelf(t *testing.T) {
	repo, ms := newTestRepo(t)

	got, err := repo.FollowStatuses(context.Background(), "me", []string{"me"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["me"] != domsocial.Self {
		t.Errorf("expected self, got %s", got["me"])
	}
	if ms.calls != 0 {
		t.Errorf("expected no store calls, got %d", ms.calls)
	}
}

func TestFollowStatuses_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	boom := errors.New("connection lost")
	ms.smismemberFn = func(_ context.Context, _ string, _ ...string) ([]bool, error) {
		return nil, boom
	}

	if _, err := repo.FollowStatuses(context.Background(), "me", []string{"p1"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestMutualCounts(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// me follows a, b, c; a and b follow target; c follows other.
	for _, f := range []string{"a", "b", "c"} {
		if err := repo.Follow(ctx, "me", f); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"a", "b", "z"} {
		if err := repo.Follow(ctx, f, "target"); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Follow(ctx, "c", "other"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.MutualCounts(ctx, "me", []string{"target", "other", "lonely", "me"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["target"] != 2 || got["other"] != 1 || got["lonely"] != 0 {
		t.Errorf("unexpected counts: %v", got)
	}
	if _, ok := got["me"]; ok {
		t.Error("requester should have no mutual count")
	}
}

func TestMutualCounts_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.interCardFn = func(_ context.Context, _ [][]string) ([]int64, error) {
		return nil, errors.New("boom")
	}
	if _, err := repo.MutualCounts(context.Background(), "me", []string{"x"}); err == nil {
		t.Fatal("expected error")
	}
}
