package match

// Kind is the retrieval method that produced a candidate.
type Kind string

// Match kind constants.
const (
	Exact  Kind = "exact"
	Prefix Kind = "prefix"
	Fuzzy  Kind = "fuzzy"
	// Phonetic marks a phone-number match. It identifies a specific person,
	// so it always carries full confidence.
	Phonetic Kind = "phonetic"
)

// Base scores per kind. Fuzzy uses the raw similarity instead.
const (
	ExactScore    = 1.0
	PhoneticScore = 1.0
	PrefixScore   = 0.85
)

// TierGap is the distance between the exact and prefix tiers. Additive
// boosts must stay below it so a weaker match never overtakes a stronger one.
const TierGap = ExactScore - PrefixScore

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Exact || k == Prefix || k == Fuzzy || k == Phonetic
}

// Base returns the base relevance for the kind. raw is only used for Fuzzy
// and is clamped to [0, 1].
func (k Kind) Base(raw float64) float64 {
	switch k {
	case Exact:
		return ExactScore
	case Phonetic:
		return PhoneticScore
	case Prefix:
		return PrefixScore
	case Fuzzy:
		return min(max(raw, 0), 1)
	default:
		return 0
	}
}
