package schema

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/omnisearch/internal/db"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
)

const (
	minPrefixRunes = 2 // server MINPREFIX default
	minFuzzyRunes  = 4 // a 1-edit distance on shorter terms matches almost anything
)

// TextQuery builds a RediSearch expression matching every token against fields.
// Each token expands to exact, prefix and 1-edit fuzzy alternatives; tokens are AND-ed.
// A single-rune token cannot be prefix-expanded by the server, so it matches the
// initials TAG instead: "jane d" finds "Jane Doe".
// A leading @ is dropped so "@jane" matches username "jane".
// Returns "" when no token survives.
func TextQuery(tokens []string, fields ...string) string {
	scope := "@" + strings.Join(fields, "|") + ":"

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimLeft(tok, "@")
		if tok == "" {
			continue
		}
		n := utf8.RuneCountInString(tok)
		if n < minPrefixRunes {
			parts = append(parts, "@"+FieldInitials+":{"+db.EscapeTag(tok)+"}")
			continue
		}
		term := db.EscapeText(tok)
		alts := []string{term, term + "*"}
		if n >= minFuzzyRunes {
			alts = append(alts, "%"+term+"%")
		}
		parts = append(parts, scope+"("+strings.Join(alts, " | ")+")")
	}
	return strings.Join(parts, " ")
}

// Initials returns the TAG value holding the first rune of every token in texts.
// Duplicates are dropped; order follows first appearance.
func Initials(texts ...string) string {
	var out []string
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, tok := range query.Tokenize(text) {
			tok = strings.TrimLeft(tok, "@")
			if tok == "" {
				continue
			}
			r, _ := utf8.DecodeRuneInString(tok)
			first := string(r)
			if _, ok := seen[first]; ok {
				continue
			}
			seen[first] = struct{}{}
			out = append(out, first)
		}
	}
	return strings.Join(out, ",")
}
