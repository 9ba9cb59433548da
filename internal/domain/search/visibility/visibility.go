package visibility

import "github.com/kailas-cloud/omnisearch/internal/domain/social"

// Tier is the exposure level of a parent profile in search results.
type Tier string

// Visibility tiers.
const (
	// Visible exposes the full searchable profile.
	Visible Tier = "visible"
	// VisiblePending exposes name and avatar only, so the UI can offer
	// a follow request without leaking private fields.
	VisiblePending Tier = "visible_pending"
	// Hidden removes the profile from results entirely.
	Hidden Tier = "hidden"
)

// Decide maps a profile's privacy and the requester's follow status to a tier.
//
//	public  + any             -> visible
//	private + self|following  -> visible
//	private + request_pending -> visible_pending
//	private + not_following   -> visible_pending
func Decide(privacy social.Privacy, status social.FollowStatus) Tier {
	if privacy == social.Public {
		return Visible
	}
	switch status {
	case social.Self, social.Following:
		return Visible
	default:
		return VisiblePending
	}
}

// ExposesPrivateFields reports whether bio, phone and location may be returned.
func (t Tier) ExposesPrivateFields() bool { return t == Visible }
