package seeder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

type lexiconStore interface {
	CreateWithTree(ctx context.Context, lemma *domain.Lemma) (*domain.Lemma, error)
	FindByExactText(ctx context.Context, text string) ([]domain.LemmaSense, error)
}

// Seeder writes parsed records into the lexicon.
type Seeder struct {
	log   *slog.Logger
	store lexiconStore
}

func New(log *slog.Logger, store lexiconStore) *Seeder {
	return &Seeder{log: log.With("service", "seeder"), store: store}
}

// Stats summarizes a seeding run.
type Stats struct {
	Created int
	Skipped int
}

// Seed inserts every record, skipping rows the lexicon already holds so the
// run is re-entrant over the same file. Two seed rows are the same entry only
// when text, part of speech, and gender all match; homographs sharing a
// spelling stay distinct.
func (s *Seeder) Seed(ctx context.Context, records []Record) (Stats, error) {
	var stats Stats

	for _, rec := range records {
		exists, err := s.alreadySeeded(ctx, rec)
		if err != nil {
			return stats, err
		}
		if exists {
			stats.Skipped++
			s.log.DebugContext(ctx, "seed lemma exists, skipped", slog.String("lemma", rec.Text))
			continue
		}

		_, err = s.store.CreateWithTree(ctx, rec.ToLemma())
		switch {
		case err == nil:
			stats.Created++
		case errors.Is(err, domain.ErrAlreadyExists):
			// Another seeder run committed the row between our check and the
			// insert.
			stats.Skipped++
			s.log.DebugContext(ctx, "seed lemma exists, skipped", slog.String("lemma", rec.Text))
		default:
			return stats, err
		}
	}

	s.log.InfoContext(ctx, "seeding finished",
		slog.Int("created", stats.Created),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// alreadySeeded reports whether a seed-sourced lemma with the record's
// natural key (text, part of speech, gender) is already stored.
func (s *Seeder) alreadySeeded(ctx context.Context, rec Record) (bool, error) {
	pairs, err := s.store.FindByExactText(ctx, rec.Text)
	if err != nil {
		return false, err
	}
	for _, p := range pairs {
		if p.Lemma.Source != domain.ProvenanceSeed {
			continue
		}
		if p.Sense.PartOfSpeech != rec.PartOfSpeech {
			continue
		}
		if genderEqual(p.Sense.Gender, rec.Gender) {
			return true, nil
		}
	}
	return false, nil
}

func genderEqual(a, b *domain.Gender) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
