package candidate

import (
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/visibility"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
)

// Contact holds the parent profile fields that must never leak past the
// visibility filter unless the tier allows it.
type Contact struct {
	Bio      string
	Phone    string
	Location string
}

// IsZero reports whether every private field is empty.
func (c Contact) IsZero() bool { return c == (Contact{}) }

// Candidate is an entity retrieved as a possible match before scoring.
// It is built per query by a retriever and not modified after scoring.
type Candidate struct {
	Ref         entity.Ref
	Name        string
	Username    string
	ImageURL    string
	Description string // product category or sitter headline

	Kind       match.Kind
	Similarity float64 // raw similarity in [0,1]

	// Sitter and product signals.
	Rating      float64
	ReviewCount int

	// Parent-only state.
	MutualCount  int
	Privacy      social.Privacy
	FollowStatus social.FollowStatus
	Visibility   visibility.Tier
	Contact      Contact
}

// Base returns the kind-derived base relevance.
func (c *Candidate) Base() float64 { return c.Kind.Base(c.Similarity) }

// StrongerThan orders two matches for the same entity: higher base wins,
// then the phone kind (it names a specific person).
func (c *Candidate) StrongerThan(o *Candidate) bool {
	if c.Base() != o.Base() {
		return c.Base() > o.Base()
	}
	return c.Kind == match.Phonetic && o.Kind != match.Phonetic
}

// Redacted returns a copy with private contact fields removed.
func (c Candidate) Redacted() Candidate {
	c.Contact = Contact{}
	return c
}
