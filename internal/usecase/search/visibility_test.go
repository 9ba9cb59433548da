package search

import (
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/visibility"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
)

func parentCand(id string, privacy social.Privacy, status social.FollowStatus) candidate.Candidate {
	return candidate.Candidate{
		Ref:          entity.Ref{Type: entity.Parent, ID: id},
		Name:         "Jane " + id,
		ImageURL:     "https://img/" + id,
		Privacy:      privacy,
		FollowStatus: status,
		Contact:      candidate.Contact{Bio: "bio", Phone: "2125551234", Location: "Brooklyn"},
	}
}

func TestFilterVisibility_DecisionTable(t *testing.T) {
	tests := []struct {
		privacy  social.Privacy
		status   social.FollowStatus
		tier     visibility.Tier
		redacted bool
	}{
		{social.Public, social.NotFollowing, visibility.Visible, false},
		{social.Public, social.RequestPending, visibility.Visible, false},
		{social.Private, social.Self, visibility.Visible, false},
		{social.Private, social.Following, visibility.Visible, false},
		{social.Private, social.RequestPending, visibility.VisiblePending, true},
		{social.Private, social.NotFollowing, visibility.VisiblePending, true},
		{social.Private, "", visibility.VisiblePending, true},
		{"", social.NotFollowing, visibility.VisiblePending, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.privacy)+"/"+string(tc.status), func(t *testing.T) {
			out := filterVisibility([]candidate.Candidate{parentCand("p", tc.privacy, tc.status)})
			if len(out) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(out))
			}
			c := out[0]
			if c.Visibility != tc.tier {
				t.Errorf("tier = %s, want %s", c.Visibility, tc.tier)
			}
			if c.Contact.IsZero() != tc.redacted {
				t.Errorf("contact redacted = %v, want %v", c.Contact.IsZero(), tc.redacted)
			}
			if c.Name == "" || c.ImageURL == "" {
				t.Error("name and avatar must always survive")
			}
		})
	}
}

func TestFilterVisibility_NonParentsPassThrough(t *testing.T) {
	sitter := candidate.Candidate{
		Ref:     entity.Ref{Type: entity.Sitter, ID: "s"},
		Contact: candidate.Contact{Bio: "keeps"},
	}
	out := filterVisibility([]candidate.Candidate{sitter})
	if len(out) != 1 || out[0].Visibility != "" || out[0].Contact.Bio != "keeps" {
		t.Errorf("sitter modified: %+v", out)
	}
}

func TestFilterVisibility_DoesNotMutateInput(t *testing.T) {
	in := []candidate.Candidate{parentCand("p", social.Private, social.NotFollowing)}
	_ = filterVisibility(in)
	if in[0].Contact.IsZero() {
		t.Error("input slice was mutated")
	}
}
