// Package similarity classifies how well a stored name matches a query:
// exact, prefix at a token boundary, or fuzzy by trigram, Jaro-Winkler and
// Soundex agreement.
package similarity

import (
	"strings"

	"github.com/xrash/smetrics"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
)

// Defaults for Matcher.
const (
	DefaultThreshold         = 0.3
	DefaultJaroWinklerWeight = 0.8
	DefaultSoundexFloor      = 0.5
)

// Matcher scores normalized field tokens against normalized query tokens.
type Matcher struct {
	// Threshold is the minimum fuzzy similarity that still counts as a match.
	Threshold float64
	// JaroWinklerWeight scales per-token Jaro-Winkler similarity, which
	// is generous on short names.
	JaroWinklerWeight float64
	// SoundexFloor is the fuzzy score granted when every query token sounds
	// like some field token. Zero disables phonetic name matching.
	SoundexFloor float64
}

// DefaultMatcher returns a Matcher with default tuning.
func DefaultMatcher() Matcher {
	return Matcher{
		Threshold:         DefaultThreshold,
		JaroWinklerWeight: DefaultJaroWinklerWeight,
		SoundexFloor:      DefaultSoundexFloor,
	}
}

// Classify returns the strongest match of query against any of the fields.
// ok is false when nothing reaches the fuzzy threshold.
func (m Matcher) Classify(query []string, fields ...[]string) (kind match.Kind, score float64, ok bool) {
	if len(query) == 0 {
		return "", 0, false
	}
	for _, f := range fields {
		k, s, hit := m.classifyField(query, f)
		if !hit {
			continue
		}
		if !ok || k.Base(s) > kind.Base(score) {
			kind, score, ok = k, s, true
		}
	}
	return kind, score, ok
}

func (m Matcher) classifyField(query, field []string) (match.Kind, float64, bool) {
	if len(field) == 0 {
		return "", 0, false
	}

	q := strings.Join(query, " ")
	if q == strings.Join(field, " ") {
		return match.Exact, 1, true
	}

	// Prefix anchored at any token boundary of the field.
	for i := range field {
		if strings.HasPrefix(strings.Join(field[i:], " "), q) {
			return match.Prefix, match.PrefixScore, true
		}
	}

	s := m.fuzzy(query, field)
	if s < m.Threshold || s <= 0 {
		return "", 0, false
	}
	return match.Fuzzy, s, true
}

// fuzzy blends whole-string trigram similarity with the mean best per-token
// similarity, then applies the Soundex floor.
func (m Matcher) fuzzy(query, field []string) float64 {
	best := Trigram(strings.Join(query, " "), strings.Join(field, " "))

	var sum float64
	for _, qt := range query {
		var tokBest float64
		for _, ft := range field {
			s := Trigram(qt, ft)
			if m.JaroWinklerWeight > 0 {
				s = max(s, m.JaroWinklerWeight*smetrics.JaroWinkler(qt, ft, 0.7, 4))
			}
			tokBest = max(tokBest, s)
		}
		sum += tokBest
	}
	best = max(best, sum/float64(len(query)))

	if m.SoundexFloor > 0 && soundsAlike(query, field) {
		best = max(best, m.SoundexFloor)
	}
	return min(best, 1)
}

// soundsAlike reports whether every alphabetic query token shares a Soundex
// code with some field token. Queries with no alphabetic token never match.
func soundsAlike(query, field []string) bool {
	codes := make(map[string]struct{}, len(field))
	for _, ft := range field {
		if isASCIIWord(ft) {
			codes[smetrics.Soundex(ft)] = struct{}{}
		}
	}
	if len(codes) == 0 {
		return false
	}

	matched := 0
	for _, qt := range query {
		if !isASCIIWord(qt) {
			continue
		}
		if _, ok := codes[smetrics.Soundex(qt)]; !ok {
			return false
		}
		matched++
	}
	return matched > 0
}

func isASCIIWord(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
