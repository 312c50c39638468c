package lexicon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/wortlab/mygerman-backend/internal/adapter/postgres"
	"github.com/wortlab/mygerman-backend/internal/domain"
)

const insertLemmaSQL = `
INSERT INTO lemmas (id, text, level, frequency_rank, notes, source, confidence, needs_review, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const insertSenseSQL = `
INSERT INTO senses (id, lemma_id, part_of_speech, gender, gloss, source, position, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertInflectedFormSQL = `
INSERT INTO inflected_forms (id, lemma_id, sense_id, form, feature, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertTranslationSQL = `
INSERT INTO translations (id, sense_id, lang, text, source, position)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertExampleSQL = `
INSERT INTO examples (id, sense_id, sentence, translation_en, translation_ru, source, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const insertLookupLogSQL = `
INSERT INTO lookup_log (id, raw_query, normalized_query, outcome, tier, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// CreateWithTree inserts a lemma with all its senses, inflected forms,
// translations, and examples in one transaction. A partial failure never
// leaves an orphaned lemma with no sense. IDs missing on input are assigned.
// Returns domain.ErrAlreadyExists when a concurrent enrichment already
// committed the same model-created lemma (unique index on the table).
func (r *Repo) CreateWithTree(ctx context.Context, lemma *domain.Lemma) (*domain.Lemma, error) {
	if len(lemma.Senses) == 0 {
		return nil, domain.NewValidationError("senses", "lemma must have at least one sense")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	assignIDs(lemma, now)

	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		querier := postgres.QuerierFromCtx(txCtx, r.pool)

		if _, err := querier.Exec(txCtx, insertLemmaSQL,
			lemma.ID, lemma.Text, lemma.Level, lemma.FrequencyRank, lemma.Notes,
			lemma.Source, lemma.Confidence, lemma.NeedsReview, lemma.CreatedAt,
		); err != nil {
			return postgres.MapError(err, "lemma", lemma.Text)
		}

		for i := range lemma.Senses {
			s := &lemma.Senses[i]
			if _, err := querier.Exec(txCtx, insertSenseSQL,
				s.ID, s.LemmaID, s.PartOfSpeech, s.Gender, s.Gloss, s.Source, s.Position, s.CreatedAt,
			); err != nil {
				return postgres.MapError(err, "sense", lemma.Text)
			}

			for j := range s.Translations {
				t := &s.Translations[j]
				if _, err := querier.Exec(txCtx, insertTranslationSQL,
					t.ID, t.SenseID, t.Lang, t.Text, t.Source, t.Position,
				); err != nil {
					return postgres.MapError(err, "translation", lemma.Text)
				}
			}

			for j := range s.Examples {
				e := &s.Examples[j]
				if _, err := querier.Exec(txCtx, insertExampleSQL,
					e.ID, e.SenseID, e.Sentence, e.TranslationEN, e.TranslationRU, e.Source, e.CreatedAt,
				); err != nil {
					return postgres.MapError(err, "example", lemma.Text)
				}
			}
		}

		for i := range lemma.InflectedForms {
			f := &lemma.InflectedForms[i]
			if _, err := querier.Exec(txCtx, insertInflectedFormSQL,
				f.ID, f.LemmaID, f.SenseID, f.Form, f.Feature, f.CreatedAt,
			); err != nil {
				return postgres.MapError(err, "inflected_form", lemma.Text)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lemma, nil
}

// LogLookup appends one write-once row to the lookup log. Rows are never
// updated or deleted.
func (r *Repo) LogLookup(ctx context.Context, rawQuery, normalizedQuery string, outcome domain.OutcomeKind, tier domain.MatchTier) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var tierName *string
	if tier != 0 {
		n := tier.String()
		tierName = &n
	}

	if _, err := querier.Exec(ctx, insertLookupLogSQL,
		uuid.New(), rawQuery, normalizedQuery, string(outcome), tierName,
		time.Now().UTC().Truncate(time.Microsecond),
	); err != nil {
		return fmt.Errorf("log lookup: %w", err)
	}

	return nil
}

// assignIDs fills in missing IDs, parent links, and timestamps so callers
// can hand over a bare tree.
func assignIDs(lemma *domain.Lemma, now time.Time) {
	if lemma.ID == uuid.Nil {
		lemma.ID = uuid.New()
	}
	if lemma.CreatedAt.IsZero() {
		lemma.CreatedAt = now
	}

	for i := range lemma.Senses {
		s := &lemma.Senses[i]
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.LemmaID = lemma.ID
		if s.Position == 0 {
			s.Position = i
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}

		for j := range s.Translations {
			t := &s.Translations[j]
			if t.ID == uuid.Nil {
				t.ID = uuid.New()
			}
			t.SenseID = s.ID
			if t.Position == 0 {
				t.Position = j
			}
		}

		for j := range s.Examples {
			e := &s.Examples[j]
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			e.SenseID = s.ID
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
		}
	}

	for i := range lemma.InflectedForms {
		f := &lemma.InflectedForms[i]
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		f.LemmaID = lemma.ID
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
	}
}
