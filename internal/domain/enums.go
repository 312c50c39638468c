package domain

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechNumeral      PartOfSpeech = "NUMERAL"
	PartOfSpeechParticle     PartOfSpeech = "PARTICLE"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechNumeral, PartOfSpeechParticle, PartOfSpeechOther:
		return true
	}
	return false
}

// Gender represents the grammatical gender of a nominal sense.
type Gender string

const (
	GenderMasculine Gender = "MASCULINE"
	GenderFeminine  Gender = "FEMININE"
	GenderNeuter    Gender = "NEUTER"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMasculine, GenderFeminine, GenderNeuter:
		return true
	}
	return false
}

// Article returns the definite article for the gender (nominative singular).
func (g Gender) Article() string {
	switch g {
	case GenderMasculine:
		return "der"
	case GenderFeminine:
		return "die"
	case GenderNeuter:
		return "das"
	}
	return ""
}

// Provenance records where a row originated. Model-created rows additionally
// carry a confidence score and a needs_review flag.
type Provenance string

const (
	ProvenanceSeed          Provenance = "seed"
	ProvenanceManual        Provenance = "manual"
	ProvenanceExternalModel Provenance = "external-model"
)

func (p Provenance) String() string { return string(p) }

func (p Provenance) IsValid() bool {
	switch p {
	case ProvenanceSeed, ProvenanceManual, ProvenanceExternalModel:
		return true
	}
	return false
}

// MatchTier is the priority level at which a candidate was found.
// Lower values outrank higher ones.
type MatchTier int

const (
	TierDirect MatchTier = iota + 1
	TierInflected
	TierArticleStripped
	TierFuzzy
)

func (t MatchTier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierInflected:
		return "inflected"
	case TierArticleStripped:
		return "article_stripped"
	case TierFuzzy:
		return "fuzzy"
	}
	return "unknown"
}

// ConfidenceLabel is the human-facing bucket derived from a similarity score.
type ConfidenceLabel string

const (
	ConfidenceVeryHigh ConfidenceLabel = "very_high"
	ConfidenceHigh     ConfidenceLabel = "high"
	ConfidenceMedium   ConfidenceLabel = "medium"
	ConfidenceLow      ConfidenceLabel = "low"
	ConfidenceVeryLow  ConfidenceLabel = "very_low"
)

// ConfidenceFor buckets a similarity score in [0,1] into a label.
func ConfidenceFor(similarity float64) ConfidenceLabel {
	switch {
	case similarity >= 0.9:
		return ConfidenceVeryHigh
	case similarity >= 0.8:
		return ConfidenceHigh
	case similarity >= 0.6:
		return ConfidenceMedium
	case similarity >= 0.4:
		return ConfidenceLow
	}
	return ConfidenceVeryLow
}
