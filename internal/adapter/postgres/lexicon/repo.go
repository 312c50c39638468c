// Package lexicon implements the morphology store adapter using PostgreSQL.
// Lookups are case-sensitive at the storage layer; case-insensitivity is the
// resolver's job (it queries every generated variant). This keeps the store
// simple and auditable. FindByFoldedText is the one exception, provided for
// re-reads against the lower(text) uniqueness guard.
package lexicon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wortlab/mygerman-backend/internal/adapter/postgres"
	"github.com/wortlab/mygerman-backend/internal/domain"
)

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape read queries
// ---------------------------------------------------------------------------

const findByExactTextSQL = `
SELECT
    l.id, l.text, l.level, l.frequency_rank, l.notes, l.source, l.confidence, l.needs_review, l.created_at,
    s.id, s.part_of_speech, s.gender, s.gloss, s.source, s.position, s.created_at
FROM lemmas l
JOIN senses s ON s.lemma_id = l.id
WHERE l.text = $1
ORDER BY l.frequency_rank DESC NULLS LAST, l.id, s.position`

const findByFoldedTextSQL = `
SELECT
    l.id, l.text, l.level, l.frequency_rank, l.notes, l.source, l.confidence, l.needs_review, l.created_at,
    s.id, s.part_of_speech, s.gender, s.gloss, s.source, s.position, s.created_at
FROM lemmas l
JOIN senses s ON s.lemma_id = l.id
WHERE lower(l.text) = $1
ORDER BY l.frequency_rank DESC NULLS LAST, l.id, s.position`

const findByInflectedFormSQL = `
SELECT
    l.id, l.text, l.level, l.frequency_rank, l.notes, l.source, l.confidence, l.needs_review, l.created_at,
    s.id, s.part_of_speech, s.gender, s.gloss, s.source, s.position, s.created_at,
    f.form, f.feature
FROM inflected_forms f
JOIN lemmas l ON l.id = f.lemma_id
JOIN senses s ON s.lemma_id = l.id AND (f.sense_id IS NULL OR f.sense_id = s.id)
WHERE f.form = $1
ORDER BY l.frequency_rank DESC NULLS LAST, l.id, s.position`

const translationsBySenseIDsSQL = `
SELECT id, sense_id, lang, text, source, position
FROM translations
WHERE sense_id = ANY($1::uuid[])
ORDER BY sense_id, position`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByExactText returns every lemma/sense pair whose lemma text equals the
// given string byte-for-byte. Multiple pairs come back when homographs exist.
// Translations are attached so callers can render a result without a second
// round trip.
func (r *Repo) FindByExactText(ctx context.Context, text string) ([]domain.LemmaSense, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByExactTextSQL, text)
	if err != nil {
		return nil, fmt.Errorf("find lemma by text: %w", err)
	}
	defer rows.Close()

	pairs, err := scanLemmaSenses(rows)
	if err != nil {
		return nil, fmt.Errorf("find lemma by text: %w", err)
	}

	if err := r.attachTranslations(ctx, pairs); err != nil {
		return nil, err
	}

	return pairs, nil
}

// FindByFoldedText matches lemmas by lowercased text. The argument must
// already be case-folded; it is compared against lower(text), the same
// expression the external-model uniqueness guard is built on, so a re-read
// after a duplicate-key conflict always sees the committed row whatever its
// casing.
func (r *Repo) FindByFoldedText(ctx context.Context, folded string) ([]domain.LemmaSense, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByFoldedTextSQL, folded)
	if err != nil {
		return nil, fmt.Errorf("find lemma by folded text: %w", err)
	}
	defer rows.Close()

	pairs, err := scanLemmaSenses(rows)
	if err != nil {
		return nil, fmt.Errorf("find lemma by folded text: %w", err)
	}

	if err := r.attachTranslations(ctx, pairs); err != nil {
		return nil, err
	}

	return pairs, nil
}

// FindByInflectedForm performs the reverse lookup: given a conjugated or
// declined surface form, it returns the owning lemma/sense pairs together
// with the grammatical feature that matched.
func (r *Repo) FindByInflectedForm(ctx context.Context, form string) ([]domain.InflectedMatch, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByInflectedFormSQL, form)
	if err != nil {
		return nil, fmt.Errorf("find lemma by inflected form: %w", err)
	}
	defer rows.Close()

	var matches []domain.InflectedMatch
	for rows.Next() {
		ls, form, feature, err := scanInflectedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("find lemma by inflected form: %w", err)
		}
		matches = append(matches, domain.InflectedMatch{LemmaSense: ls, Form: form, Feature: feature})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find lemma by inflected form: %w", err)
	}

	if matches == nil {
		matches = []domain.InflectedMatch{}
	}

	pairs := make([]domain.LemmaSense, len(matches))
	for i := range matches {
		pairs[i] = matches[i].LemmaSense
	}
	if err := r.attachTranslations(ctx, pairs); err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].LemmaSense = pairs[i]
	}

	return matches, nil
}

// CandidatesByLengthWindow returns up to limit lemma summaries whose text
// length is within ±window characters of the query, ordered by length
// distance, then descending frequency, then text. The window bounds the
// fuzzy-matching search space.
func (r *Repo) CandidatesByLengthWindow(ctx context.Context, text string, window, limit int) ([]domain.LemmaSummary, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n := len([]rune(text))
	builder := sq.Select("id", "text", "frequency_rank").
		From("lemmas").
		Where(sq.GtOrEq{"char_length(text)": n - window}).
		Where(sq.LtOrEq{"char_length(text)": n + window}).
		OrderBy(
			fmt.Sprintf("abs(char_length(text) - %d)", n),
			"frequency_rank DESC NULLS LAST",
			"text",
		).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuzzy candidates: %w", err)
	}
	defer rows.Close()

	var summaries []domain.LemmaSummary
	for rows.Next() {
		var (
			s    domain.LemmaSummary
			rank pgtype.Int4
		)
		if err := rows.Scan(&s.ID, &s.Text, &rank); err != nil {
			return nil, fmt.Errorf("list fuzzy candidates: %w", err)
		}
		if rank.Valid {
			v := int(rank.Int32)
			s.FrequencyRank = &v
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fuzzy candidates: %w", err)
	}

	if summaries == nil {
		summaries = []domain.LemmaSummary{}
	}

	return summaries, nil
}

// attachTranslations loads translations for every sense in pairs with a
// single ANY() query and distributes them in place.
func (r *Repo) attachTranslations(ctx context.Context, pairs []domain.LemmaSense) error {
	if len(pairs) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, 0, len(pairs))
	seen := make(map[uuid.UUID]bool, len(pairs))
	for _, p := range pairs {
		if !seen[p.Sense.ID] {
			seen[p.Sense.ID] = true
			ids = append(ids, p.Sense.ID)
		}
	}

	rows, err := querier.Query(ctx, translationsBySenseIDsSQL, ids)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	defer rows.Close()

	bySense := make(map[uuid.UUID][]domain.Translation)
	for rows.Next() {
		var t domain.Translation
		if err := rows.Scan(&t.ID, &t.SenseID, &t.Lang, &t.Text, &t.Source, &t.Position); err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
		bySense[t.SenseID] = append(bySense[t.SenseID], t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	for i := range pairs {
		pairs[i].Sense.Translations = bySense[pairs[i].Sense.ID]
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanLemmaSenses(rows pgx.Rows) ([]domain.LemmaSense, error) {
	var pairs []domain.LemmaSense
	for rows.Next() {
		ls, err := scanLemmaSenseFromRows(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if pairs == nil {
		pairs = []domain.LemmaSense{}
	}

	return pairs, nil
}

func scanLemmaSenseFromRows(rows pgx.Rows) (domain.LemmaSense, error) {
	var (
		ls     domain.LemmaSense
		level  pgtype.Text
		rank   pgtype.Int4
		notes  pgtype.Text
		conf   pgtype.Float8
		gender pgtype.Text
		gloss  pgtype.Text
	)

	if err := rows.Scan(
		&ls.Lemma.ID, &ls.Lemma.Text, &level, &rank, &notes, &ls.Lemma.Source, &conf, &ls.Lemma.NeedsReview, &ls.Lemma.CreatedAt,
		&ls.Sense.ID, &ls.Sense.PartOfSpeech, &gender, &gloss, &ls.Sense.Source, &ls.Sense.Position, &ls.Sense.CreatedAt,
	); err != nil {
		return domain.LemmaSense{}, err
	}

	applyOptionalLemmaFields(&ls, level, rank, notes, conf, gender, gloss)
	return ls, nil
}

func scanInflectedRow(rows pgx.Rows) (domain.LemmaSense, string, string, error) {
	var (
		ls      domain.LemmaSense
		level   pgtype.Text
		rank    pgtype.Int4
		notes   pgtype.Text
		conf    pgtype.Float8
		gender  pgtype.Text
		gloss   pgtype.Text
		form    string
		feature string
	)

	if err := rows.Scan(
		&ls.Lemma.ID, &ls.Lemma.Text, &level, &rank, &notes, &ls.Lemma.Source, &conf, &ls.Lemma.NeedsReview, &ls.Lemma.CreatedAt,
		&ls.Sense.ID, &ls.Sense.PartOfSpeech, &gender, &gloss, &ls.Sense.Source, &ls.Sense.Position, &ls.Sense.CreatedAt,
		&form, &feature,
	); err != nil {
		return domain.LemmaSense{}, "", "", err
	}

	applyOptionalLemmaFields(&ls, level, rank, notes, conf, gender, gloss)
	return ls, form, feature, nil
}

func applyOptionalLemmaFields(ls *domain.LemmaSense, level pgtype.Text, rank pgtype.Int4, notes pgtype.Text, conf pgtype.Float8, gender, gloss pgtype.Text) {
	ls.Sense.LemmaID = ls.Lemma.ID

	if level.Valid {
		ls.Lemma.Level = &level.String
	}
	if rank.Valid {
		v := int(rank.Int32)
		ls.Lemma.FrequencyRank = &v
	}
	if notes.Valid {
		ls.Lemma.Notes = &notes.String
	}
	if conf.Valid {
		ls.Lemma.Confidence = &conf.Float64
	}
	if gender.Valid {
		g := domain.Gender(gender.String)
		ls.Sense.Gender = &g
	}
	if gloss.Valid {
		ls.Sense.Gloss = &gloss.String
	}
}
