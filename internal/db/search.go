package db

// TagFilter is an exact TAG field pre-filter: @field:{value}.
type TagFilter struct {
	Field string
	Value string
}

// TextQuery is the input for an FT.SEARCH text query.
type TextQuery struct {
	IndexName string
	// Query is a raw RediSearch query expression built by the caller.
	// Use EscapeText for user-supplied terms.
	Query        string
	Filters      []TagFilter
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
