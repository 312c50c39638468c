// Package enrichment safely extends the lexicon through an external
// generative model. The gateway owns the only mutual-exclusion point in the
// engine: an in-flight registry that guarantees at most one concurrent
// enrichment per normalized query. Nothing the model returns is persisted
// before its echoed input survives validation against the original query.
package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

type analyzer interface {
	Analyze(ctx context.Context, word string) (*provider.Analysis, error)
}

type lexiconStore interface {
	CreateWithTree(ctx context.Context, lemma *domain.Lemma) (*domain.Lemma, error)
	FindByFoldedText(ctx context.Context, folded string) ([]domain.LemmaSense, error)
}

// Config holds gateway settings.
type Config struct {
	// Timeout bounds one external-model call.
	Timeout time.Duration
	// CacheSize and CacheTTL bound the negative-outcome cache.
	CacheSize int
	CacheTTL  time.Duration
}

// Service is the enrichment gateway.
type Service struct {
	log      *slog.Logger
	cfg      Config
	analyzer analyzer
	store    lexiconStore
	flight   singleflight.Group
	cache    *outcomeCache
}

// NewService creates an enrichment gateway.
func NewService(log *slog.Logger, cfg Config, an analyzer, store lexiconStore) *Service {
	return &Service{
		log:      log.With("service", "enrichment"),
		cfg:      cfg,
		analyzer: an,
		store:    store,
		cache:    newOutcomeCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

// Enrich resolves a query the tiered resolver could not, by consulting the
// external model. Concurrent calls for the same normalized query collapse
// into one model call and one write; every caller receives the same outcome.
// The registry entry lives exactly as long as the call: it is removed on
// completion and on failure alike.
func (s *Service) Enrich(ctx context.Context, originalQuery string) (domain.ResolutionResult, error) {
	key := domain.CaseFold(originalQuery)
	if key == "" {
		return domain.NewNotFound("empty_query", nil), nil
	}

	if cached, ok := s.cache.Get(key); ok {
		s.log.DebugContext(ctx, "enrichment cache hit", slog.String("key", key))
		return cached, nil
	}

	v, err, shared := s.flight.Do(key, func() (any, error) {
		return s.enrichOnce(ctx, originalQuery, key)
	})
	if err != nil {
		return domain.ResolutionResult{}, err
	}
	if shared {
		s.log.DebugContext(ctx, "enrichment shared in-flight result", slog.String("key", key))
	}

	return v.(domain.ResolutionResult), nil
}

// enrichOnce performs one validated enrichment. It runs at most once per key
// at a time, under the in-flight registry.
func (s *Service) enrichOnce(ctx context.Context, originalQuery, key string) (domain.ResolutionResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	analysis, err := s.analyzer.Analyze(callCtx, originalQuery)
	if err != nil {
		// Caller-initiated cancellation propagates; everything else is a
		// retryable failure, never a not-found.
		if ctx.Err() != nil {
			return domain.ResolutionResult{}, ctx.Err()
		}
		if errors.Is(err, domain.ErrTransient) {
			s.log.WarnContext(ctx, "model call failed",
				slog.String("query", originalQuery), slog.String("error", err.Error()))
			return domain.NewTransientFailure("model_unavailable"), nil
		}
		return domain.ResolutionResult{}, err
	}

	// First validation: the model must have analyzed the word we sent. A
	// mismatch is an auto-correction attempt: reject, persist nothing, and
	// surface the model's analysis only as a labeled suggestion.
	if !echoMatches(key, analysis.EchoedInput) {
		s.log.WarnContext(ctx, "model echoed different input",
			slog.String("query", originalQuery),
			slog.String("echoed", analysis.EchoedInput))
		result := domain.NewRejected("auto_correction_rejected", rejectionSuggestions(analysis))
		s.cache.Set(key, result)
		return result, nil
	}

	if !analysis.IsValid {
		result := domain.NewNotFound("not_a_known_word", modelSuggestions(analysis.Suggestions))
		s.cache.Set(key, result)
		return result, nil
	}

	// Second-stage validation before any write: the returned lemma must
	// still correspond to the query. On mismatch, fall back to the original
	// query text rather than trusting the model's normalization, and flag
	// the record for review.
	lemma, needsReview := buildLemma(originalQuery, key, analysis)
	if needsReview {
		s.log.WarnContext(ctx, "model lemma did not round-trip, flagged for review",
			slog.String("query", originalQuery),
			slog.String("model_lemma", analysis.Lemma))
	}

	created, err := s.store.CreateWithTree(ctx, lemma)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// A concurrent enrichment won the race; discard ours and return
			// the winner's row.
			return s.winnerResult(ctx, key)
		}
		if ctx.Err() != nil {
			return domain.ResolutionResult{}, ctx.Err()
		}
		s.log.ErrorContext(ctx, "enrichment persist failed",
			slog.String("query", originalQuery), slog.String("error", err.Error()))
		return domain.NewTransientFailure("store_unavailable"), nil
	}

	s.log.InfoContext(ctx, "lexicon enriched",
		slog.String("lemma", created.Text),
		slog.Int("senses", len(created.Senses)),
		slog.Int("inflected_forms", len(created.InflectedForms)),
		slog.Bool("needs_review", created.NeedsReview))

	match := domain.LemmaSense{Lemma: *created, Sense: created.Senses[0]}
	return domain.ResolutionResult{
		Kind:        domain.OutcomeFound,
		Match:       &match,
		Feature:     analysis.Feature,
		Suggestions: []domain.Suggestion{},
	}, nil
}

// winnerResult re-reads the row committed by the concurrent winner. The
// lookup is by folded text, matching the lower(text) expression the
// uniqueness guard is built on, so it finds the winner even when the two
// enrichments chose different casings.
func (s *Service) winnerResult(ctx context.Context, key string) (domain.ResolutionResult, error) {
	pairs, err := s.store.FindByFoldedText(ctx, key)
	if err != nil || len(pairs) == 0 {
		s.log.ErrorContext(ctx, "winner re-read failed", slog.String("key", key))
		return domain.NewTransientFailure("store_unavailable"), nil
	}
	match := pairs[0]
	return domain.ResolutionResult{
		Kind:        domain.OutcomeFound,
		Match:       &match,
		Suggestions: []domain.Suggestion{},
	}, nil
}
