package code

import (
	"strings"
	"unicode"
)

// Encode converts text into marks and gaps.
//
// Whitespace between two encodable characters becomes exactly one word gap,
// adjacent encodable characters are separated by one letter gap and
// characters without an encoding are dropped without affecting either.
// The result never starts or ends with a gap.
func Encode(text string) []Token {
	var tokens []Token
	owed := Token(0)
	for _, r := range text {
		if unicode.IsSpace(r) {
			if len(tokens) > 0 {
				owed = InterWordGap
			}
			continue
		}

		pattern := Lookup(unicode.ToUpper(r))
		if pattern == "" {
			continue
		}

		if len(tokens) > 0 {
			if owed == 0 {
				owed = InterLetterGap
			}
			tokens = append(tokens, owed)
		}
		owed = 0

		for i, c := range pattern {
			if i > 0 {
				tokens = append(tokens, IntraSymbolGap)
			}
			if c == '-' {
				tokens = append(tokens, Dash)
			} else {
				tokens = append(tokens, Dot)
			}
		}
	}
	return tokens
}

// Pattern renders tokens in the usual written form: letters separated by a
// space and words by " / ".
func Pattern(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t {
		case Dot:
			b.WriteByte('.')
		case Dash:
			b.WriteByte('-')
		case InterLetterGap:
			b.WriteByte(' ')
		case InterWordGap:
			b.WriteString(" / ")
		}
	}
	return b.String()
}
