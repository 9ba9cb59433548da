package retrieval

import (
	"strings"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
)

// nameFields tokenizes the matchable fields of an entity. A username is also
// offered in its "@handle" form.
func nameFields(name, username string) [][]string {
	fields := [][]string{query.Tokenize(name)}
	if username != "" {
		fields = append(fields, query.Tokenize(username))
		if handle := query.Tokenize("@" + strings.TrimLeft(username, "@")); len(handle) == 1 {
			fields = append(fields, handle)
		}
	}
	return fields
}

// isPhoneOnly reports whether every token is a digit run, so a name lookup
// cannot match.
func isPhoneOnly(tokens []string) bool {
	for _, t := range tokens {
		for _, r := range t {
			if (r < '0' || r > '9') && r != '+' {
				return false
			}
		}
	}
	return len(tokens) > 0
}
