package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/omnisearch/internal/domain"
)

// MaxRawLength bounds the raw query in runes.
const MaxRawLength = 500

// MinPhoneDigits is the digit count at which a query is also treated as a phone lookup.
const MinPhoneDigits = 7

// Normalized is the tokenizer output.
type Normalized struct {
	Tokens      []string
	PhoneDigits string // empty when the query does not look like a phone number
}

// IsEmpty reports whether there is nothing to search for.
func (n Normalized) IsEmpty() bool {
	return len(n.Tokens) == 0 && n.PhoneDigits == ""
}

// Normalize lowercases raw, strips punctuation (keeping '@' and '+'),
// collapses whitespace and splits into tokens. Blank input yields no tokens.
func Normalize(raw string) (Normalized, error) {
	if utf8.RuneCountInString(raw) > MaxRawLength {
		return Normalized{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxRawLength)
	}

	return Normalized{
		Tokens:      Tokenize(raw),
		PhoneDigits: PhoneDigits(raw),
	}, nil
}

// Tokenize applies the query folding rules to any text, without the length
// bound. Retrievers use it on stored names so both sides compare alike.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '@', r == '+':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// PhoneDigits extracts ASCII digits from s. It returns "" when fewer than
// MinPhoneDigits remain. An 11-digit number with a leading 1 loses the
// country code.
func PhoneDigits(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < MinPhoneDigits {
		return ""
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return string(digits)
}
