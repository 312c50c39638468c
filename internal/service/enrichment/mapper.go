package enrichment

import (
	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

// Confidence attached to model-created rows. A lemma that failed the
// second-stage round-trip keeps the lower score and a needs_review flag.
const (
	confidenceValidated   = 0.9
	confidenceNeedsReview = 0.5
)

// buildLemma converts a validated analysis into a persistable lemma tree
// with provenance external-model. It performs the second-stage defense: when
// the model's lemma text no longer corresponds to the query, the original
// query text is used as the lemma text instead and the record is flagged.
func buildLemma(originalQuery, queryKey string, a *provider.Analysis) (*domain.Lemma, bool) {
	lemmaText := a.Lemma
	needsReview := false
	if !lemmaRoundTrips(queryKey, a) {
		lemmaText = domain.NormalizeText(originalQuery)
		needsReview = true
	}

	confidence := confidenceValidated
	if needsReview {
		confidence = confidenceNeedsReview
	}

	sense := domain.Sense{
		PartOfSpeech: domain.PartOfSpeech(a.PartOfSpeech),
		Source:       domain.ProvenanceExternalModel,
	}
	if a.Gender != "" {
		g := domain.Gender(a.Gender)
		sense.Gender = &g
	}

	for _, t := range a.Translations {
		sense.Translations = append(sense.Translations, domain.Translation{
			Lang:   t.Lang,
			Text:   t.Text,
			Source: domain.ProvenanceExternalModel,
		})
	}

	if a.Example != nil {
		example := domain.Example{
			Sentence: a.Example.Sentence,
			Source:   domain.ProvenanceExternalModel,
		}
		if a.Example.TranslationEN != "" {
			example.TranslationEN = &a.Example.TranslationEN
		}
		if a.Example.TranslationRU != "" {
			example.TranslationRU = &a.Example.TranslationRU
		}
		sense.Examples = append(sense.Examples, example)
	}

	lemma := &domain.Lemma{
		Text:        lemmaText,
		Source:      domain.ProvenanceExternalModel,
		Confidence:  &confidence,
		NeedsReview: needsReview,
		Senses:      []domain.Sense{sense},
	}

	for _, f := range a.Inflections {
		lemma.InflectedForms = append(lemma.InflectedForms, domain.InflectedForm{
			Form:    f.Form,
			Feature: f.Feature,
		})
	}

	return lemma, needsReview
}

// lemmaRoundTrips reports whether the analysis still corresponds to the
// query: either the lemma itself folds to the query key, or the query is a
// declared inflected form of the lemma.
func lemmaRoundTrips(queryKey string, a *provider.Analysis) bool {
	if domain.CaseFold(a.Lemma) == queryKey {
		return true
	}
	for _, f := range a.Inflections {
		if domain.CaseFold(f.Form) == queryKey {
			return true
		}
	}
	// The model may report the query as an inflection without repeating it
	// in the paradigm; a declared feature for the input counts.
	return a.Feature != ""
}
