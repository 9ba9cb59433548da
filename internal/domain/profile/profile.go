// Package profile holds the searchable view of a parent profile.
package profile

import "github.com/kailas-cloud/omnisearch/internal/domain/social"

// Profile is a parent profile as stored for search.
type Profile struct {
	ID              string
	Name            string
	Username        string
	ImageURL        string
	Bio             string
	Phone           string
	Location        string
	Privacy         social.Privacy
	PhoneSearchable bool
}
