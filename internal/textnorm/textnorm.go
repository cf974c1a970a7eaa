// Package textnorm cleans raw paragraph text before it is matched, scored or
// displayed.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// allowedPunct is the punctuation kept by Normalize, half-width and full-width.
const allowedPunct = ".,，。：:；;？！?!"

// Normalize returns text in NFC form with every rune outside letters, digits,
// underscore, whitespace and allowedPunct removed, whitespace runs collapsed
// to a single space and surrounding whitespace trimmed.
//
// Normalize is total: it never fails, and Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFC.String(raw)

	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case keep(r):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

func keep(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	return strings.ContainsRune(allowedPunct, r)
}

// Len returns the length of s in runes. Thresholds on paragraph text are
// expressed in characters, not bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first n runes of s followed by "..." when s is longer
// than n runes, otherwise s unchanged.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
