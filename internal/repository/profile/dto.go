package profile

import (
	"strings"

	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

var returnFields = []string{
	schema.FieldID,
	schema.FieldName,
	schema.FieldUsername,
	schema.FieldImageURL,
	schema.FieldBio,
	schema.FieldPhone,
	schema.FieldLocation,
	schema.FieldPrivacy,
	schema.FieldPhoneSearchable,
}

// rowToHash converts a Profile to a map for HSET. phone_digits and initials are derived.
func rowToHash(r domprofile.Profile) map[string]string {
	return map[string]string{
		schema.FieldID:              r.ID,
		schema.FieldName:            r.Name,
		schema.FieldUsername:        r.Username,
		schema.FieldInitials:        schema.Initials(r.Name, r.Username),
		schema.FieldImageURL:        r.ImageURL,
		schema.FieldBio:             r.Bio,
		schema.FieldPhone:           r.Phone,
		schema.FieldPhoneDigits:     query.PhoneDigits(r.Phone),
		schema.FieldLocation:        r.Location,
		schema.FieldPrivacy:         string(r.Privacy),
		schema.FieldPhoneSearchable: schema.FormatBool(r.PhoneSearchable),
	}
}

// rowFromHash hydrates a Profile. A missing id falls back to the key suffix.
func rowFromHash(key, prefix string, m map[string]string) domprofile.Profile {
	id := m[schema.FieldID]
	if id == "" {
		id = strings.TrimPrefix(key, prefix)
	}
	return domprofile.Profile{
		ID:              id,
		Name:            m[schema.FieldName],
		Username:        m[schema.FieldUsername],
		ImageURL:        m[schema.FieldImageURL],
		Bio:             m[schema.FieldBio],
		Phone:           m[schema.FieldPhone],
		Location:        m[schema.FieldLocation],
		Privacy:         social.ParsePrivacy(m[schema.FieldPrivacy]),
		PhoneSearchable: m[schema.FieldPhoneSearchable] == schema.TagTrue,
	}
}
