package similarity

import "strings"

// Trigram returns the trigram similarity of a and b in [0,1], following
// pg_trgm: each word is padded with two leading blanks and one trailing
// blank, and the score is |shared| / |union| over the trigram sets.
func Trigram(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		r := []rune("  " + w + " ")
		for i := 0; i+3 <= len(r); i++ {
			set[string(r[i:i+3])] = struct{}{}
		}
	}
	return set
}
