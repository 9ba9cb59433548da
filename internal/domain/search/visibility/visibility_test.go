package visibility

import (
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/domain/social"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		privacy social.Privacy
		status  social.FollowStatus
		want    Tier
	}{
		{social.Public, social.Self, Visible},
		{social.Public, social.Following, Visible},
		{social.Public, social.RequestPending, Visible},
		{social.Public, social.NotFollowing, Visible},
		{social.Private, social.Self, Visible},
		{social.Private, social.Following, Visible},
		{social.Private, social.RequestPending, VisiblePending},
		{social.Private, social.NotFollowing, VisiblePending},
		{social.Private, social.FollowStatus("garbage"), VisiblePending},
	}
	for _, tc := range tests {
		if got := Decide(tc.privacy, tc.status); got != tc.want {
			t.Errorf("Decide(%s, %s) = %s, want %s", tc.privacy, tc.status, got, tc.want)
		}
	}
}

func TestExposesPrivateFields(t *testing.T) {
	if !Visible.ExposesPrivateFields() {
		t.Error("visible must expose private fields")
	}
	if VisiblePending.ExposesPrivateFields() || Hidden.ExposesPrivateFields() {
		t.Error("only visible may expose private fields")
	}
}
