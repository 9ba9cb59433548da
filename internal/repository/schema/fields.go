package schema

// Hash field names shared by the repositories and the index definitions.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldUsername    = "username"
	FieldImageURL    = "image_url"
	FieldDescription = "description"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldInitials    = "initials" // first rune of every name and username token

	// Parent profiles only.
	FieldBio             = "bio"
	FieldPhone           = "phone"
	FieldPhoneDigits     = "phone_digits"
	FieldPhoneSearchable = "phone_searchable"
	FieldLocation        = "location"
	FieldPrivacy         = "privacy"
)

// TagTrue is the TAG value stored for boolean flags.
const TagTrue = "true"

// FormatBool renders a boolean flag as stored in hashes.
func FormatBool(b bool) string {
	if b {
		return TagTrue
	}
	return "false"
}
