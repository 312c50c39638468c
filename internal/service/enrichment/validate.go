package enrichment

import (
	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

// echoMatches reports whether the model's echoed input case-folds to the
// same key as the original query. This is the line between enrichment and
// auto-correction: when it fails, nothing is persisted.
func echoMatches(queryKey, echoedInput string) bool {
	return domain.CaseFold(echoedInput) == queryKey
}

// rejectionSuggestions turns a mismatched analysis into "did you mean"
// suggestions: the word the model actually analyzed, with its claimed
// meaning, plus any explicit suggestions it offered.
func rejectionSuggestions(a *provider.Analysis) []domain.Suggestion {
	var out []domain.Suggestion

	substitute := a.Lemma
	if substitute == "" {
		substitute = a.EchoedInput
	}
	if substitute != "" {
		meaning := ""
		if len(a.Translations) > 0 {
			meaning = a.Translations[0].Text
		}
		out = append(out, domain.Suggestion{
			Text:    substitute,
			Meaning: meaning,
			Source:  "external-model",
		})
	}

	return append(out, modelSuggestions(a.Suggestions)...)
}

// modelSuggestions maps the model's suggestion list, each with its claimed
// meaning. Never returns nil.
func modelSuggestions(in []provider.SuggestionResult) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Suggestion{
			Text:    s.Word,
			Meaning: s.Meaning,
			Source:  "external-model",
		})
	}
	return out
}
