package similarity

import (
	"math"
	"testing"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
)

func TestTrigram(t *testing.T) {
	if got := Trigram("jane", "jane"); got != 1 {
		t.Errorf("identical: got %v, want 1", got)
	}
	if got := Trigram("", "jane"); got != 0 {
		t.Errorf("empty: got %v, want 0", got)
	}
	if got := Trigram("abc", "xyz"); got != 0 {
		t.Errorf("disjoint: got %v, want 0", got)
	}
	// smyth/smith share "  s", " sm", "th " out of 9 distinct trigrams.
	if got := Trigram("smyth", "smith"); math.Abs(got-3.0/9.0) > 1e-9 {
		t.Errorf("smyth/smith: got %v, want 1/3", got)
	}
	if Trigram("Jane", "jane") != 1 {
		t.Error("trigram must be case-insensitive")
	}
}

func TestClassify_Exact(t *testing.T) {
	m := DefaultMatcher()
	kind, score, ok := m.Classify([]string{"jane", "doe"}, []string{"jane", "doe"})
	if !ok || kind != match.Exact || score != 1 {
		t.Errorf("got (%q, %v, %v), want exact", kind, score, ok)
	}
}

func TestClassify_Prefix(t *testing.T) {
	m := DefaultMatcher()
	tests := [][]string{
		{"jan"},
		{"doe"},
		{"jane", "d"},
	}
	for _, q := range tests {
		kind, _, ok := m.Classify(q, []string{"jane", "doe"})
		if !ok || kind != match.Prefix {
			t.Errorf("Classify(%q) = (%q, %v), want prefix", q, kind, ok)
		}
	}
}

func TestClassify_Fuzzy(t *testing.T) {
	m := DefaultMatcher()
	kind, score, ok := m.Classify([]string{"jnae"}, []string{"jane"})
	if !ok || kind != match.Fuzzy {
		t.Fatalf("got (%q, %v), want fuzzy", kind, ok)
	}
	if score < m.Threshold || score >= 1 {
		t.Errorf("fuzzy score %v outside [threshold, 1)", score)
	}
}

func TestClassify_BelowThreshold(t *testing.T) {
	m := DefaultMatcher()
	if kind, _, ok := m.Classify([]string{"zzz"}, []string{"jane"}); ok {
		t.Errorf("unexpected match %q", kind)
	}
	if _, _, ok := m.Classify(nil, []string{"jane"}); ok {
		t.Error("empty query must not match")
	}
	if _, _, ok := m.Classify([]string{"jane"}); ok {
		t.Error("no fields must not match")
	}
}

func TestClassify_SoundexFloor(t *testing.T) {
	m := Matcher{Threshold: 0.3, SoundexFloor: 0.5}
	kind, score, ok := m.Classify([]string{"smyth"}, []string{"smith"})
	if !ok || kind != match.Fuzzy {
		t.Fatalf("got (%q, %v), want fuzzy", kind, ok)
	}
	if score != 0.5 {
		t.Errorf("score = %v, want soundex floor 0.5", score)
	}

	m.SoundexFloor = 0
	_, score, _ = m.Classify([]string{"smyth"}, []string{"smith"})
	if score >= 0.5 {
		t.Errorf("without soundex floor score = %v, want trigram only", score)
	}
}

func TestClassify_BestField(t *testing.T) {
	m := DefaultMatcher()
	kind, _, ok := m.Classify([]string{"janed"}, []string{"jane", "doe"}, []string{"janed"})
	if !ok || kind != match.Exact {
		t.Errorf("got (%q, %v), want exact via second field", kind, ok)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	m := DefaultMatcher()
	_, a, _ := m.Classify([]string{"kathrine"}, []string{"katherine", "jones"})
	for range 10 {
		_, b, _ := m.Classify([]string{"kathrine"}, []string{"katherine", "jones"})
		if a != b {
			t.Fatalf("non-deterministic score: %v vs %v", a, b)
		}
	}
}
