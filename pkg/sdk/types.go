package omnisearch

// EntityType names the kind of a result.
type EntityType string

// Entity type constants.
const (
	TypeParent  EntityType = "parent"
	TypeSitter  EntityType = "sitter"
	TypeProduct EntityType = "product"
)

// SearchRequest is one search call. Size 0 selects the default page size;
// sizes above 50 are clamped.
type SearchRequest struct {
	Query       string
	RequesterID string
	Offset      int
	Size        int
	// Token is an opaque value echoed back in the response.
	Token string
}

// SearchResponse is one page of merged, ranked results.
type SearchResponse struct {
	Results []Result
	// Total counts every ranked result before pagination.
	Total   int
	Offset  int
	Size    int
	Partial bool
	// Failed names the entity types that failed to retrieve.
	Failed []EntityType
	Token  string
}

// Result is a single ranked hit.
type Result struct {
	Type        EntityType
	ID          string
	Name        string
	Username    string
	ImageURL    string
	Description string
	Score       float64
	Rank        int
	MatchKind   string // exact, prefix, fuzzy, phonetic

	// Sitters and products.
	Rating      float64
	ReviewCount int

	// Parents.
	FollowStatus string // self, following, request_pending, not_following
	Visibility   string // visible, visible_pending
	MutualCount  int
	// Bio, Phone and Location are empty unless Visibility is "visible".
	Bio      string
	Phone    string
	Location string
}

// Profile is a parent profile to index.
type Profile struct {
	ID       string
	Name     string
	Username string
	ImageURL string
	Bio      string
	Phone    string
	Location string
	// Public profiles expose contact fields to everyone.
	Public bool
	// PhoneSearchable lets the profile be found by its phone number.
	PhoneSearchable bool
}

// Item is a sitter or product to index.
type Item struct {
	ID          string
	Name        string
	Username    string
	ImageURL    string
	Description string
	Rating      float64
	ReviewCount int
}
