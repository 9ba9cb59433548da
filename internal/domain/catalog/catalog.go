// Package catalog holds the searchable view of sitters and products.
package catalog

// Item is a sitter or product as stored for search.
type Item struct {
	ID          string
	Name        string
	Username    string // sitters only
	ImageURL    string
	Description string // sitter headline or product category
	Rating      float64
	ReviewCount int
}
