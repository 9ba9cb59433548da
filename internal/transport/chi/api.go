package chi

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeInvalidQuery      ErrorCode = "invalid_query"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeSearchUnavailable ErrorCode = "search_unavailable"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable,omitempty"`
}

// SearchParams are the bound inputs of GET /v1/search.
type SearchParams struct {
	Q      *string `form:"q" json:"q,omitempty"`
	Offset *int    `form:"offset" json:"offset,omitempty"`
	Size   *int    `form:"size" json:"size,omitempty"`
	Token  *string `form:"token" json:"token,omitempty"`

	XRequesterID string `json:"X-Requester-ID"`
}

// SearchResponse is one page of ranked results.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
	Total   int                `json:"total"`
	Offset  int                `json:"offset"`
	Size    int                `json:"size"`
	Partial bool               `json:"partial"`
	Failed  []string           `json:"failed,omitempty"`
	Token   string             `json:"token"`
}

// SearchResultItem is a single scored entity.
type SearchResultItem struct {
	Type        string         `json:"type"`
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Username    string         `json:"username,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Description string         `json:"description,omitempty"`
	Score       float64        `json:"score"`
	Rank        int            `json:"rank"`
	MatchKind   string         `json:"matchKind"`
	Metadata    ResultMetadata `json:"metadata"`
}

// ResultMetadata carries the type-specific fields. Parent results expose
// contact fields only when their visibility tier allows it.
type ResultMetadata struct {
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`

	FollowStatus string `json:"followStatus,omitempty"`
	Visibility   string `json:"visibility,omitempty"`
	MutualCount  *int   `json:"mutualCount,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
}

// HealthResponse reports component checks.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
