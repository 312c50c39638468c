package resolver

import (
	"strings"
	"unicode"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// NormalizedQuery is the result of normalizing a raw user token. Raw is
// preserved untouched for logging; stripping never mutates it.
type NormalizedQuery struct {
	Raw        string
	Text       string
	Language   string
	Confidence float64
	// Stripped is the query with one leading article removed; empty when no
	// article was detected.
	Stripped string
	// Article is the determiner that was stripped, if any.
	Article string
}

// Language detection confidence levels. A script-specific codepoint anywhere
// in the token is near-certain; a bare Latin token is ambiguous by default.
const (
	confidenceScript       = 0.95
	confidenceFunctionWord = 0.90
	confidenceLatinDefault = 0.60
	confidenceUnknown      = 0.30
)

// German determiners stripped from the front of a query, all cases,
// definite and indefinite.
var germanArticles = map[string]bool{
	"der": true, "die": true, "das": true,
	"den": true, "dem": true, "des": true,
	"ein": true, "eine": true, "einen": true,
	"einem": true, "einer": true, "eines": true,
}

// Closed lists of common function words per candidate language, used as a
// detection fallback for plain Latin-script tokens.
var functionWords = map[string]string{
	"und": "de", "oder": "de", "aber": "de", "nicht": "de", "ich": "de",
	"du": "de", "wir": "de", "ist": "de", "sind": "de", "sein": "de",
	"haben": "de", "mit": "de", "für": "de", "auf": "de", "auch": "de",
	"the": "en", "and": "en", "not": "en", "you": "en", "are": "en",
	"with": "en", "have": "en", "this": "en", "that": "en", "what": "en",
}

// scriptRanges maps codepoint ranges to a detected language family. Checked
// in order; the first qualifying codepoint anywhere in the token wins.
var scriptRanges = []struct {
	lo, hi   rune
	language string
}{
	{0x4E00, 0x9FFF, "zh"},   // CJK unified ideographs
	{0x3040, 0x30FF, "ja"},   // Hiragana + Katakana
	{0xAC00, 0xD7AF, "ko"},   // Hangul syllables
	{0x0400, 0x04FF, "ru"},   // Cyrillic
	{0x0370, 0x03FF, "el"},   // Greek
	{0x0590, 0x05FF, "he"},   // Hebrew
	{0x0600, 0x06FF, "ar"},   // Arabic
	{0x0E00, 0x0E7F, "th"},   // Thai
}

const germanDiacritics = "äöüßÄÖÜẞ"

// Normalize canonicalizes a raw user token and detects its likely language.
// It is a total pure function: any input, including empty or garbage
// strings, produces a usable NormalizedQuery and never an error.
func Normalize(raw string) NormalizedQuery {
	q := NormalizedQuery{Raw: raw}

	text := domain.NormalizeText(raw)
	q.Text = text
	if text == "" {
		q.Language = "unknown"
		q.Confidence = confidenceUnknown
		return q
	}

	q.Language, q.Confidence = detectLanguage(text)
	q.Article, q.Stripped = stripArticle(text)
	if q.Article != "" && q.Language != "de" {
		// A German determiner in front is itself strong evidence.
		q.Language = "de"
		q.Confidence = confidenceFunctionWord
	}

	return q
}

// detectLanguage classifies a normalized token.
func detectLanguage(text string) (string, float64) {
	for _, r := range text {
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				return sr.language, confidenceScript
			}
		}
	}

	if strings.ContainsAny(text, germanDiacritics) {
		return "de", confidenceScript
	}

	if lang, ok := functionWords[strings.ToLower(text)]; ok {
		return lang, confidenceFunctionWord
	}

	if isLatin(text) {
		return "de", confidenceLatinDefault
	}

	return "unknown", confidenceUnknown
}

func isLatin(text string) bool {
	for _, r := range text {
		if !unicode.In(r, unicode.Latin) && !unicode.IsSpace(r) &&
			r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

// stripArticle removes one leading German determiner when the query has at
// least one more word after it. Returns the article and the remainder, or
// two empty strings when nothing was stripped.
func stripArticle(text string) (article, stripped string) {
	first, rest, found := strings.Cut(text, " ")
	if !found || rest == "" {
		return "", ""
	}
	if germanArticles[strings.ToLower(first)] {
		return first, rest
	}
	return "", ""
}
