package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/omnisearch/internal/domain"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Page is an offset-based window over the ranked result list.
type Page struct {
	Offset int
	Size   int
}

// NewPage validates pagination. Size 0 selects the default, sizes above the
// maximum are clamped.
func NewPage(offset, size int) (Page, error) {
	if offset < 0 {
		return Page{}, fmt.Errorf("%w: offset must be non-negative", domain.ErrInvalidQuery)
	}
	if size < 0 {
		return Page{}, fmt.Errorf("%w: size must be non-negative", domain.ErrInvalidQuery)
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Offset: offset, Size: size}, nil
}

// Query is a validated, normalized search request. It is immutable.
type Query struct {
	raw         string
	tokens      []string
	phoneDigits string
	requesterID string
	page        Page
	token       string
}

// New normalizes raw and binds it to the requester and page. token is an
// opaque caller value echoed back with the response.
func New(raw, requesterID string, page Page, token string) (Query, error) {
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return Query{}, fmt.Errorf("%w: requester id is required", domain.ErrInvalidQuery)
	}
	if page.Size <= 0 || page.Size > MaxPageSize || page.Offset < 0 {
		return Query{}, fmt.Errorf("%w: invalid page %+v", domain.ErrInvalidQuery, page)
	}

	n, err := Normalize(raw)
	if err != nil {
		return Query{}, err
	}

	return Query{
		raw:         raw,
		tokens:      n.Tokens,
		phoneDigits: n.PhoneDigits,
		requesterID: requesterID,
		page:        page,
		token:       token,
	}, nil
}

// Raw returns the query text as received.
func (q Query) Raw() string { return q.raw }

// Tokens returns a copy of the normalized tokens.
func (q Query) Tokens() []string { return append([]string(nil), q.tokens...) }

// Text returns the normalized tokens joined by single spaces.
func (q Query) Text() string { return strings.Join(q.tokens, " ") }

// PhoneDigits returns the digit-only phone form, or "".
func (q Query) PhoneDigits() string { return q.phoneDigits }

// HasPhone reports whether the phone lookup path applies.
func (q Query) HasPhone() bool { return q.phoneDigits != "" }

// RequesterID returns the identity of the searching user.
func (q Query) RequesterID() string { return q.requesterID }

// Page returns the requested result window.
func (q Query) Page() Page { return q.page }

// Token returns the caller-supplied correlation token.
func (q Query) Token() string { return q.token }

// IsEmpty reports whether the query has nothing to search for.
func (q Query) IsEmpty() bool { return len(q.tokens) == 0 && q.phoneDigits == "" }

// WithToken returns a copy of q carrying token.
func (q Query) WithToken(token string) Query {
	q.token = token
	return q
}
