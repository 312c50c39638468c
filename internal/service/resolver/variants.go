package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Symmetric substitution table for letters whose automatic case mapping is
// unreliable across runtimes. Applied independently of the built-in case
// routines: the uppercase routine consults it per rune (the stock German
// upper caser expands ß to SS, which cannot round-trip), and it is applied
// to the first rune of every generated variant to cover noun-initial
// accented vowels.
var caseSubstitutions = map[rune]rune{
	'ä': 'Ä', 'Ä': 'ä',
	'ö': 'Ö', 'Ö': 'ö',
	'ü': 'Ü', 'Ü': 'ü',
	'ß': 'ẞ', 'ẞ': 'ß',
}

var (
	lowerCaser = cases.Lower(language.German)
	titleCaser = cases.Title(language.German)
)

// Variants returns the deterministic case-variant set for a token, first
// element always the input unchanged, no duplicates. Output size is a small
// constant regardless of input length; order is stable across calls so
// downstream tie-breaks are reproducible.
func Variants(text string) []string {
	out := make([]string, 0, 8)
	seen := make(map[string]bool, 8)

	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	add(text)
	add(lowerCaser.String(text))
	add(upperGerman(text))
	add(titleCaser.String(text))

	// Substitution pass over every variant generated so far; novel results
	// are appended in encounter order.
	for _, v := range append([]string(nil), out...) {
		add(substituteFirst(v))
	}

	return out
}

// upperGerman uppercases per rune, taking the substitution table over the
// runtime mapping so ß becomes ẞ rather than expanding to SS.
func upperGerman(s string) string {
	return strings.Map(func(r rune) rune {
		if sub, ok := caseSubstitutions[r]; ok && unicode.IsLower(r) {
			return sub
		}
		return unicode.ToUpper(r)
	}, s)
}

// substituteFirst flips the first rune through the substitution table when
// it maps to an uppercase counterpart. Only the leading rune is touched:
// German casing distinctions live on the initial letter, and a full-string
// flip would produce mixed-case artifacts.
func substituteFirst(s string) string {
	for i, r := range s {
		sub, ok := caseSubstitutions[r]
		if ok && unicode.IsUpper(sub) {
			return s[:i] + string(sub) + s[i+len(string(r)):]
		}
		return s
	}
	return s
}
