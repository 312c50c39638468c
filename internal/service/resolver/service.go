// Package resolver implements tiered lexical resolution: a user-typed token
// is matched against the lexicon directly, through inflected forms, with a
// stripped leading article, and finally by bounded fuzzy matching, in that
// priority order. Each tier is attempted only when the previous one found
// nothing, and every tier's findings are preserved in the returned trace.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

type store interface {
	FindByExactText(ctx context.Context, text string) ([]domain.LemmaSense, error)
	FindByInflectedForm(ctx context.Context, form string) ([]domain.InflectedMatch, error)
	CandidatesByLengthWindow(ctx context.Context, text string, window, limit int) ([]domain.LemmaSummary, error)
}

type enricher interface {
	Enrich(ctx context.Context, originalQuery string) (domain.ResolutionResult, error)
}

type lookupLogger interface {
	LogLookup(ctx context.Context, rawQuery, normalizedQuery string, outcome domain.OutcomeKind, tier domain.MatchTier) error
}

// Config holds the resolver thresholds as injected, named values.
type Config struct {
	// FuzzyAutoAccept: similarity at or above which a fuzzy candidate is
	// treated as resolved (boundary inclusive).
	FuzzyAutoAccept float64
	// FuzzyDisplayFloor: similarity at or above which a fuzzy candidate is
	// still surfaced as a suggestion (boundary inclusive).
	FuzzyDisplayFloor float64
	// FuzzyMinLength: queries shorter than this never enter fuzzy matching.
	FuzzyMinLength int
	// LengthWindow and CandidateLimit bound the fuzzy search space.
	LengthWindow   int
	CandidateLimit int
}

// Service is the engine's single entry point for the surrounding
// application. Each Resolve call is an independent unit of work.
type Service struct {
	log      *slog.Logger
	cfg      Config
	store    store
	enricher enricher
	lookups  lookupLogger
}

// NewService creates a resolver service. lookups may be nil to disable the
// write-once lookup log.
func NewService(log *slog.Logger, cfg Config, st store, en enricher, lookups lookupLogger) *Service {
	return &Service{
		log:      log.With("service", "resolver"),
		cfg:      cfg,
		store:    st,
		enricher: en,
		lookups:  lookups,
	}
}

// Resolve maps a raw user token to a canonical lexicon entry. The returned
// result is always one of: found, ambiguous, not_found, rejected, or
// transient_failure; no other shape exists. A non-nil error is returned only
// for context cancellation; collaborator failures come back as a
// transient_failure outcome with the detail logged, never downgraded to
// not-found.
func (s *Service) Resolve(ctx context.Context, rawQuery string) (domain.ResolutionResult, error) {
	q := Normalize(rawQuery)

	trace := domain.MatchTrace{
		RawQuery:        rawQuery,
		NormalizedQuery: q.Text,
		Language:        q.Language,
		StrippedArticle: q.Article,
	}

	if q.Text == "" {
		result := domain.NewNotFound("empty_query", nil)
		result.Trace = trace
		s.logLookup(ctx, q, result)
		return result, nil
	}

	result, err := s.resolveTiers(ctx, q, &trace)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.ResolutionResult{}, err
		}
		s.log.ErrorContext(ctx, "resolution failed",
			slog.String("query", q.Text), slog.String("error", err.Error()))
		result = domain.NewTransientFailure("store_unavailable")
	}

	result.Trace = trace
	s.logLookup(ctx, q, result)
	return result, nil
}

// resolveTiers runs the tier state machine over the normalized query.
func (s *Service) resolveTiers(ctx context.Context, q NormalizedQuery, trace *domain.MatchTrace) (domain.ResolutionResult, error) {
	candidates, err := s.tierDirect(ctx, q.Text, domain.TierDirect, trace)
	if err != nil {
		return domain.ResolutionResult{}, err
	}

	if len(candidates) == 0 {
		candidates, err = s.tierInflected(ctx, q.Text, domain.TierInflected, trace)
		if err != nil {
			return domain.ResolutionResult{}, err
		}
	}

	if len(candidates) == 0 && q.Stripped != "" {
		candidates, err = s.tierArticleStripped(ctx, q.Stripped, trace)
		if err != nil {
			return domain.ResolutionResult{}, err
		}
	}

	var suggestions []domain.Suggestion
	if len(candidates) == 0 {
		candidates, suggestions, err = s.tierFuzzy(ctx, q.Text, trace)
		if err != nil {
			return domain.ResolutionResult{}, err
		}
	}

	switch len(candidates) {
	case 0:
		return s.escalate(ctx, q, suggestions)
	case 1:
		c := candidates[0]
		match := c.LemmaSense
		return domain.ResolutionResult{
			Kind:        domain.OutcomeFound,
			Match:       &match,
			MatchTier:   c.Tier,
			Feature:     c.Feature,
			Suggestions: []domain.Suggestion{},
		}, nil
	default:
		ranked := Aggregate(candidates)
		return domain.ResolutionResult{
			Kind:        domain.OutcomeAmbiguous,
			Ranked:      &ranked,
			Suggestions: []domain.Suggestion{},
		}, nil
	}
}

// tierDirect queries every variant for an exact lemma-text match, preserving
// variant discovery order and de-duplicating by lemma/sense identity.
func (s *Service) tierDirect(ctx context.Context, text string, tier domain.MatchTier, trace *domain.MatchTrace) ([]domain.ResolutionCandidate, error) {
	variants := Variants(text)
	record := domain.TierRecord{Tier: tier, Queried: variants}

	var candidates []domain.ResolutionCandidate
	seen := make(map[domain.LemmaSenseID]bool)

	for _, v := range variants {
		pairs, err := s.store.FindByExactText(ctx, v)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if seen[p.Identity()] {
				continue
			}
			seen[p.Identity()] = true
			candidates = append(candidates, domain.ResolutionCandidate{
				LemmaSense: p,
				Tier:       tier,
				Similarity: 1.0,
				Variant:    v,
			})
		}
	}

	record.Found = len(candidates)
	trace.Tiers = append(trace.Tiers, record)
	return candidates, nil
}

// tierInflected performs the reverse lookup through inflected forms; a hit
// yields the owning lemma/sense plus the grammatical feature that matched.
func (s *Service) tierInflected(ctx context.Context, text string, tier domain.MatchTier, trace *domain.MatchTrace) ([]domain.ResolutionCandidate, error) {
	variants := Variants(text)
	record := domain.TierRecord{Tier: tier, Queried: variants}

	var candidates []domain.ResolutionCandidate
	seen := make(map[domain.LemmaSenseID]bool)

	for _, v := range variants {
		matches, err := s.store.FindByInflectedForm(ctx, v)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m.Identity()] {
				continue
			}
			seen[m.Identity()] = true
			candidates = append(candidates, domain.ResolutionCandidate{
				LemmaSense: m.LemmaSense,
				Tier:       tier,
				Similarity: 1.0,
				Feature:    m.Feature,
				Variant:    v,
			})
		}
	}

	record.Found = len(candidates)
	trace.Tiers = append(trace.Tiers, record)
	return candidates, nil
}

// tierArticleStripped re-runs the direct and inflected tiers on the
// article-stripped form.
func (s *Service) tierArticleStripped(ctx context.Context, stripped string, trace *domain.MatchTrace) ([]domain.ResolutionCandidate, error) {
	candidates, err := s.tierDirect(ctx, stripped, domain.TierArticleStripped, trace)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	return s.tierInflected(ctx, stripped, domain.TierArticleStripped, trace)
}

// tierFuzzy pulls the bounded candidate window and scores it against the
// query. Candidates at or above the auto-accept threshold come back as
// resolved candidates; those at or above the display floor become
// suggestions. Short queries skip the tier entirely: edit-distance ratios
// are unstable below the minimum length.
func (s *Service) tierFuzzy(ctx context.Context, text string, trace *domain.MatchTrace) ([]domain.ResolutionCandidate, []domain.Suggestion, error) {
	if len([]rune(text)) < s.cfg.FuzzyMinLength {
		trace.Tiers = append(trace.Tiers, domain.TierRecord{Tier: domain.TierFuzzy})
		return nil, nil, nil
	}

	record := domain.TierRecord{Tier: domain.TierFuzzy, Queried: []string{text}}

	summaries, err := s.store.CandidatesByLengthWindow(ctx, text, s.cfg.LengthWindow, s.cfg.CandidateLimit)
	if err != nil {
		return nil, nil, err
	}

	scored := scoreCandidates(text, summaries, s.cfg.FuzzyDisplayFloor)

	var candidates []domain.ResolutionCandidate
	var suggestions []domain.Suggestion
	seen := make(map[domain.LemmaSenseID]bool)

	for _, sc := range scored {
		if sc.Similarity >= s.cfg.FuzzyAutoAccept {
			pairs, err := s.store.FindByExactText(ctx, sc.Text)
			if err != nil {
				return nil, nil, err
			}
			for _, p := range pairs {
				if seen[p.Identity()] {
					continue
				}
				seen[p.Identity()] = true
				candidates = append(candidates, domain.ResolutionCandidate{
					LemmaSense: p,
					Tier:       domain.TierFuzzy,
					Similarity: sc.Similarity,
					Variant:    text,
				})
			}
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Text:       sc.Text,
			Similarity: sc.Similarity,
			Label:      domain.ConfidenceFor(sc.Similarity),
			Source:     "fuzzy",
		})
	}

	record.Found = len(candidates)
	trace.Tiers = append(trace.Tiers, record)
	return candidates, suggestions, nil
}

// escalate hands an unresolved query to the enrichment gateway and merges
// any fuzzy suggestions gathered on the way into the outcome.
func (s *Service) escalate(ctx context.Context, q NormalizedQuery, fuzzySuggestions []domain.Suggestion) (domain.ResolutionResult, error) {
	if s.enricher == nil {
		return domain.NewNotFound("no_match", fuzzySuggestions), nil
	}

	result, err := s.enricher.Enrich(ctx, q.Raw)
	if err != nil {
		return domain.ResolutionResult{}, err
	}

	if result.Kind == domain.OutcomeNotFound || result.Kind == domain.OutcomeRejected {
		result.Suggestions = append(result.Suggestions, fuzzySuggestions...)
	}

	return result, nil
}

// logLookup appends to the write-once lookup log. Failures are logged and
// never affect the resolution outcome.
func (s *Service) logLookup(ctx context.Context, q NormalizedQuery, result domain.ResolutionResult) {
	if s.lookups == nil {
		return
	}
	if err := s.lookups.LogLookup(ctx, q.Raw, q.Text, result.Kind, result.MatchTier); err != nil {
		s.log.WarnContext(ctx, "lookup log write failed",
			slog.String("query", q.Text), slog.String("error", err.Error()))
	}
}
