package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for storage keys and comparison:
//   - trims leading/trailing whitespace
//   - canonicalizes to Unicode NFC so distinct encodings of the same visual
//     character compare equal
//   - compresses multiple spaces into one
//
// Case, diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CaseFold returns the canonical case-insensitive comparison key for a token:
// NFC normalization followed by lowercasing. Two spellings of the same word
// that differ only in case or encoding fold to the same key.
func CaseFold(text string) string {
	return strings.ToLower(NormalizeText(text))
}
