// Package social holds the read-only view of the social graph used by search:
// profile privacy and the requester's follow relationship to a profile.
package social

// Privacy is a profile's privacy setting.
type Privacy string

// Privacy constants.
const (
	Public  Privacy = "public"
	Private Privacy = "private"
)

// ParsePrivacy maps a stored value to a Privacy. Anything unrecognized is
// treated as private.
func ParsePrivacy(s string) Privacy {
	if Privacy(s) == Public {
		return Public
	}
	return Private
}

// FollowStatus is the requester's relationship to a target profile.
type FollowStatus string

// Follow status constants.
const (
	Self           FollowStatus = "self"
	Following      FollowStatus = "following"
	RequestPending FollowStatus = "request_pending"
	NotFollowing   FollowStatus = "not_following"
)

// ParseFollowStatus maps a stored value to a FollowStatus, defaulting to
// NotFollowing for anything unresolvable.
func ParseFollowStatus(s string) FollowStatus {
	switch st := FollowStatus(s); st {
	case Self, Following, RequestPending:
		return st
	default:
		return NotFollowing
	}
}
