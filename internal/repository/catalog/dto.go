package catalog

import (
	"strconv"
	"strings"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
)

var returnFields = []string{
	schema.FieldID,
	schema.FieldName,
	schema.FieldUsername,
	schema.FieldImageURL,
	schema.FieldDescription,
	schema.FieldRating,
	schema.FieldReviewCount,
}

func rowToHash(r domcatalog.Item) map[string]string {
	return map[string]string{
		schema.FieldID:          r.ID,
		schema.FieldName:        r.Name,
		schema.FieldUsername:    r.Username,
		schema.FieldInitials:    schema.Initials(r.Name, r.Username),
		schema.FieldImageURL:    r.ImageURL,
		schema.FieldDescription: r.Description,
		schema.FieldRating:      strconv.FormatFloat(r.Rating, 'f', -1, 64),
		schema.FieldReviewCount: strconv.Itoa(r.ReviewCount),
	}
}

// rowFromHash hydrates an Item. Malformed numbers read as zero.
func rowFromHash(key, prefix string, m map[string]string) domcatalog.Item {
	id := m[schema.FieldID]
	if id == "" {
		id = strings.TrimPrefix(key, prefix)
	}

	row := domcatalog.Item{
		ID:          id,
		Name:        m[schema.FieldName],
		Username:    m[schema.FieldUsername],
		ImageURL:    m[schema.FieldImageURL],
		Description: m[schema.FieldDescription],
	}
	if v, err := strconv.ParseFloat(m[schema.FieldRating], 64); err == nil {
		row.Rating = v
	}
	if v, err := strconv.Atoi(m[schema.FieldReviewCount]); err == nil && v > 0 {
		row.ReviewCount = v
	}
	return row
}
