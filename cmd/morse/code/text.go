package code

import (
	"strings"
	"unicode"
)

// Text renders text in written Morse, including punctuation. Letters are
// separated by a space and words by " / ". Unknown characters are dropped.
func Text(text string) string {
	var words []string
	for _, word := range strings.Fields(text) {
		var codes []string
		for _, r := range word {
			r = unicode.ToUpper(r)
			if c, ok := letters[r]; ok {
				codes = append(codes, c)
			} else if c, ok := punctuation[r]; ok {
				codes = append(codes, c)
			}
		}
		if len(codes) > 0 {
			words = append(words, strings.Join(codes, " "))
		}
	}
	return strings.Join(words, " / ")
}

// Decode is the inverse of Text. Unknown codes are skipped.
func Decode(morse string) string {
	var result strings.Builder
	words := strings.Split(morse, "/")
	for i, word := range words {
		if i > 0 {
			result.WriteRune(' ')
		}
		for _, c := range strings.Fields(word) {
			if r, ok := fromMorse[c]; ok {
				result.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(result.String())
}
