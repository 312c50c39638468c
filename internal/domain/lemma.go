package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lemma is a canonical lexicon entry: the dictionary base form under which
// all inflections, translations, and examples are indexed. Spelling alone is
// not unique; homographs share text and are told apart by their senses.
type Lemma struct {
	ID            uuid.UUID
	Text          string
	Level         *string
	FrequencyRank *int
	Notes         *string
	Source        Provenance
	Confidence    *float64
	NeedsReview   bool
	CreatedAt     time.Time

	Senses         []Sense
	InflectedForms []InflectedForm
}

// Sense is one meaning/POS assignment of a lemma. A lemma owns 1..N senses;
// a sense belongs to exactly one lemma. Distinct senses are never merged,
// even when their lemmas share spelling.
type Sense struct {
	ID           uuid.UUID
	LemmaID      uuid.UUID
	PartOfSpeech PartOfSpeech
	Gender       *Gender
	Gloss        *string
	Source       Provenance
	Position     int
	CreatedAt    time.Time

	Translations []Translation
	Examples     []Example
}

// InflectedForm maps a conjugated/declined surface string back to its lemma
// via a grammatical feature annotation (e.g. "present_1st_sg").
type InflectedForm struct {
	ID        uuid.UUID
	LemmaID   uuid.UUID
	SenseID   *uuid.UUID
	Form      string
	Feature   string
	CreatedAt time.Time
}

// Translation is a language-tagged gloss attached to a sense. Multiple
// translations per sense per language are allowed (synonyms); rows are
// append-only to preserve the provenance trail.
type Translation struct {
	ID       uuid.UUID
	SenseID  uuid.UUID
	Lang     string
	Text     string
	Source   Provenance
	Position int
}

// Example is a usage sentence with parallel renderings, attached to a sense.
type Example struct {
	ID            uuid.UUID
	SenseID       uuid.UUID
	Sentence      string
	TranslationEN *string
	TranslationRU *string
	Source        Provenance
	CreatedAt     time.Time
}

// LemmaSense pairs a lemma with one of its senses. Resolution always works
// at this granularity: a homograph yields one pair per sense.
type LemmaSense struct {
	Lemma Lemma
	Sense Sense
}

// Identity returns the opaque de-duplication key for a lemma/sense pair.
func (ls LemmaSense) Identity() LemmaSenseID {
	return LemmaSenseID{LemmaID: ls.Lemma.ID, SenseID: ls.Sense.ID}
}

// LemmaSenseID is a comparable lemma/sense identity, usable as a map key.
type LemmaSenseID struct {
	LemmaID uuid.UUID
	SenseID uuid.UUID
}

// InflectedMatch is the result of a reverse lookup through an inflected form:
// the owning lemma/sense plus the grammatical feature that matched.
type InflectedMatch struct {
	LemmaSense
	Form    string
	Feature string
}

// LemmaSummary is a lightweight lemma projection used to bound the fuzzy
// search space without loading full sense trees.
type LemmaSummary struct {
	ID            uuid.UUID
	Text          string
	FrequencyRank *int
}
