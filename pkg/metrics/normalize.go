package metrics

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	hangulFirst = '가'
	hangulLast  = '힣'
)

// Normalize lowercases text, strips punctuation and symbols while keeping
// word characters and Hangul syllables, and collapses whitespace.
func Normalize(text string) string {
	text = cases.Lower(language.Und).String(text)
	text = strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return -1
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

func keepRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return true
	case r >= hangulFirst && r <= hangulLast:
		return true
	}
	return false
}
