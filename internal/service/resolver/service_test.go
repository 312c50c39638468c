package resolver

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockStore struct {
	FindByExactTextFn          func(ctx context.Context, text string) ([]domain.LemmaSense, error)
	FindByInflectedFormFn      func(ctx context.Context, form string) ([]domain.InflectedMatch, error)
	CandidatesByLengthWindowFn func(ctx context.Context, text string, window, limit int) ([]domain.LemmaSummary, error)
}

func (m *mockStore) FindByExactText(ctx context.Context, text string) ([]domain.LemmaSense, error) {
	if m.FindByExactTextFn != nil {
		return m.FindByExactTextFn(ctx, text)
	}
	return nil, nil
}

func (m *mockStore) FindByInflectedForm(ctx context.Context, form string) ([]domain.InflectedMatch, error) {
	if m.FindByInflectedFormFn != nil {
		return m.FindByInflectedFormFn(ctx, form)
	}
	return nil, nil
}

func (m *mockStore) CandidatesByLengthWindow(ctx context.Context, text string, window, limit int) ([]domain.LemmaSummary, error) {
	if m.CandidatesByLengthWindowFn != nil {
		return m.CandidatesByLengthWindowFn(ctx, text, window, limit)
	}
	return nil, nil
}

type mockEnricher struct {
	EnrichFn func(ctx context.Context, originalQuery string) (domain.ResolutionResult, error)
}

func (m *mockEnricher) Enrich(ctx context.Context, originalQuery string) (domain.ResolutionResult, error) {
	return m.EnrichFn(ctx, originalQuery)
}

func testConfig() Config {
	return Config{
		FuzzyAutoAccept:   0.85,
		FuzzyDisplayFloor: 0.30,
		FuzzyMinLength:    4,
		LengthWindow:      2,
		CandidateLimit:    50,
	}
}

func newTestService(st *mockStore, en *mockEnricher) *Service {
	log := slog.New(slog.DiscardHandler)
	if en == nil {
		return NewService(log, testConfig(), st, nil, nil)
	}
	return NewService(log, testConfig(), st, en, nil)
}

func pair(lemmaText string) domain.LemmaSense {
	return domain.LemmaSense{
		Lemma: domain.Lemma{ID: uuid.New(), Text: lemmaText},
		Sense: domain.Sense{ID: uuid.New(), PartOfSpeech: domain.PartOfSpeechNoun},
	}
}

// ---------------------------------------------------------------------------
// Tier behavior
// ---------------------------------------------------------------------------

func TestResolve_DirectMatchThroughCaseVariant(t *testing.T) {
	t.Parallel()

	haus := pair("Haus")
	var inflectedCalled bool

	st := &mockStore{
		FindByExactTextFn: func(_ context.Context, text string) ([]domain.LemmaSense, error) {
			if text == "Haus" {
				return []domain.LemmaSense{haus}, nil
			}
			return nil, nil
		},
		FindByInflectedFormFn: func(context.Context, string) ([]domain.InflectedMatch, error) {
			inflectedCalled = true
			return nil, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "haus")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	require.NotNil(t, result.Match)
	assert.Equal(t, "Haus", result.Match.Lemma.Text)
	assert.Equal(t, domain.TierDirect, result.MatchTier)
	assert.False(t, inflectedCalled, "later tiers must not run after a direct hit")
}

func TestResolve_InflectedFormFallback(t *testing.T) {
	t.Parallel()

	gehen := pair("gehen")

	st := &mockStore{
		FindByInflectedFormFn: func(_ context.Context, form string) ([]domain.InflectedMatch, error) {
			if form == "gehe" {
				return []domain.InflectedMatch{{
					LemmaSense: gehen, Form: "gehe", Feature: "present_1st_sg",
				}}, nil
			}
			return nil, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "gehe")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	assert.Equal(t, "gehen", result.Match.Lemma.Text)
	assert.Equal(t, domain.TierInflected, result.MatchTier)
	assert.Equal(t, "present_1st_sg", result.Feature)
}

func TestResolve_ArticleStrippedTier(t *testing.T) {
	t.Parallel()

	tisch := pair("Tisch")

	st := &mockStore{
		FindByExactTextFn: func(_ context.Context, text string) ([]domain.LemmaSense, error) {
			if text == "Tisch" {
				return []domain.LemmaSense{tisch}, nil
			}
			return nil, nil
		},
	}

	// "der Tisch" as a whole matches nothing; only the stripped remainder does.
	result, err := newTestService(st, nil).Resolve(context.Background(), "der Tisch")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	assert.Equal(t, "Tisch", result.Match.Lemma.Text)
	assert.Equal(t, domain.TierArticleStripped, result.MatchTier)
	assert.Equal(t, "der", result.Trace.StrippedArticle)
}

func TestResolve_FuzzyAutoAccept(t *testing.T) {
	t.Parallel()

	spielen := pair("spielen")

	st := &mockStore{
		FindByExactTextFn: func(_ context.Context, text string) ([]domain.LemmaSense, error) {
			if text == "spielen" {
				return []domain.LemmaSense{spielen}, nil
			}
			return nil, nil
		},
		CandidatesByLengthWindowFn: func(_ context.Context, _ string, window, limit int) ([]domain.LemmaSummary, error) {
			assert.Equal(t, 2, window)
			assert.Equal(t, 50, limit)
			return []domain.LemmaSummary{{ID: spielen.Lemma.ID, Text: "spielen"}}, nil
		},
	}

	// "spielenn" vs "spielen": similarity 0.875, at or above auto-accept.
	result, err := newTestService(st, nil).Resolve(context.Background(), "spielenn")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	assert.Equal(t, "spielen", result.Match.Lemma.Text)
	assert.Equal(t, domain.TierFuzzy, result.MatchTier)
}

func TestResolve_FuzzyAutoAcceptBoundaryInclusive(t *testing.T) {
	t.Parallel()

	// Three substitutions over twenty runes score exactly the auto-accept
	// threshold of 0.85. The comparison is inclusive, so this is a match, not
	// a suggestion.
	stored := pair("abcdefghijklmnopqxyz")

	st := &mockStore{
		FindByExactTextFn: func(_ context.Context, text string) ([]domain.LemmaSense, error) {
			if text == stored.Lemma.Text {
				return []domain.LemmaSense{stored}, nil
			}
			return nil, nil
		},
		CandidatesByLengthWindowFn: func(context.Context, string, int, int) ([]domain.LemmaSummary, error) {
			return []domain.LemmaSummary{{ID: stored.Lemma.ID, Text: stored.Lemma.Text}}, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "abcdefghijklmnopqrst")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	assert.Equal(t, stored.Lemma.Text, result.Match.Lemma.Text)
	assert.Equal(t, domain.TierFuzzy, result.MatchTier)
}

func TestResolve_FuzzyBelowAcceptBecomesSuggestion(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		CandidatesByLengthWindowFn: func(context.Context, string, int, int) ([]domain.LemmaSummary, error) {
			return []domain.LemmaSummary{{ID: uuid.New(), Text: "gehen"}}, nil
		},
	}

	// "gehn" vs "gehen" scores 0.8: below auto-accept, above the floor.
	result, err := newTestService(st, nil).Resolve(context.Background(), "gehn")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeNotFound, result.Kind)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "gehen", result.Suggestions[0].Text)
	assert.InDelta(t, 0.8, result.Suggestions[0].Similarity, 1e-9)
	assert.Equal(t, "fuzzy", result.Suggestions[0].Source)
}

func TestResolve_ShortQuerySkipsFuzzy(t *testing.T) {
	t.Parallel()

	var windowCalled bool
	st := &mockStore{
		CandidatesByLengthWindowFn: func(context.Context, string, int, int) ([]domain.LemmaSummary, error) {
			windowCalled = true
			return nil, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "geh")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, result.Kind)
	assert.False(t, windowCalled, "queries under the minimum length must skip fuzzy matching")
}

// ---------------------------------------------------------------------------
// Outcome classification
// ---------------------------------------------------------------------------

func TestResolve_EmptyQuery(t *testing.T) {
	t.Parallel()

	var storeCalled bool
	st := &mockStore{
		FindByExactTextFn: func(context.Context, string) ([]domain.LemmaSense, error) {
			storeCalled = true
			return nil, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, result.Kind)
	assert.Equal(t, "empty_query", result.Reason)
	assert.NotNil(t, result.Suggestions)
	assert.False(t, storeCalled)
}

func TestResolve_HomographsAreAmbiguous(t *testing.T) {
	t.Parallel()

	bench := pair("Bank")
	institute := pair("Bank")

	st := &mockStore{
		FindByExactTextFn: func(_ context.Context, text string) ([]domain.LemmaSense, error) {
			if text == "Bank" {
				return []domain.LemmaSense{bench, institute}, nil
			}
			return nil, nil
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "Bank")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeAmbiguous, result.Kind)
	require.NotNil(t, result.Ranked)
	assert.Len(t, result.Ranked.Candidates, 2)
	assert.Nil(t, result.Match)
}

func TestResolve_StoreErrorIsTransientFailure(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		FindByExactTextFn: func(context.Context, string) ([]domain.LemmaSense, error) {
			return nil, errors.New("connection refused")
		},
	}

	result, err := newTestService(st, nil).Resolve(context.Background(), "Haus")

	require.NoError(t, err, "store failures must become outcomes, not errors")
	assert.Equal(t, domain.OutcomeTransientFailure, result.Kind)
	assert.Equal(t, "store_unavailable", result.Reason)
}

func TestResolve_ContextCancellationPropagates(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := &mockStore{
		FindByExactTextFn: func(ctx context.Context, _ string) ([]domain.LemmaSense, error) {
			return nil, ctx.Err()
		},
	}

	_, err := newTestService(st, nil).Resolve(ctx, "Haus")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_TraceRecordsEveryAttemptedTier(t *testing.T) {
	t.Parallel()

	st := &mockStore{}

	result, err := newTestService(st, nil).Resolve(context.Background(), "Wasser")

	require.NoError(t, err)
	require.Len(t, result.Trace.Tiers, 3) // direct, inflected, fuzzy; no article present
	assert.Equal(t, domain.TierDirect, result.Trace.Tiers[0].Tier)
	assert.Equal(t, domain.TierInflected, result.Trace.Tiers[1].Tier)
	assert.Equal(t, domain.TierFuzzy, result.Trace.Tiers[2].Tier)
	assert.Equal(t, "Wasser", result.Trace.NormalizedQuery)
}

// ---------------------------------------------------------------------------
// Escalation to enrichment
// ---------------------------------------------------------------------------

func TestResolve_EscalatesWhenAllTiersMiss(t *testing.T) {
	t.Parallel()

	created := pair("Fernweh")

	en := &mockEnricher{
		EnrichFn: func(_ context.Context, originalQuery string) (domain.ResolutionResult, error) {
			assert.Equal(t, "Fernweh", originalQuery)
			return domain.ResolutionResult{
				Kind:        domain.OutcomeFound,
				Match:       &created,
				Suggestions: []domain.Suggestion{},
			}, nil
		},
	}

	result, err := newTestService(&mockStore{}, en).Resolve(context.Background(), "Fernweh")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFound, result.Kind)
	assert.Equal(t, "Fernweh", result.Match.Lemma.Text)
}

func TestResolve_MergesFuzzySuggestionsIntoEnrichmentMiss(t *testing.T) {
	t.Parallel()

	st := &mockStore{
		CandidatesByLengthWindowFn: func(context.Context, string, int, int) ([]domain.LemmaSummary, error) {
			return []domain.LemmaSummary{{ID: uuid.New(), Text: "gehen"}}, nil
		},
	}
	en := &mockEnricher{
		EnrichFn: func(context.Context, string) (domain.ResolutionResult, error) {
			return domain.NewNotFound("not_a_known_word", []domain.Suggestion{
				{Text: "gehen", Meaning: "to go", Source: "external-model"},
			}), nil
		},
	}

	result, err := newTestService(st, en).Resolve(context.Background(), "gehn")

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeNotFound, result.Kind)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, "external-model", result.Suggestions[0].Source)
	assert.Equal(t, "fuzzy", result.Suggestions[1].Source)
}

func TestResolve_EnrichmentTransientFailurePassesThrough(t *testing.T) {
	t.Parallel()

	en := &mockEnricher{
		EnrichFn: func(context.Context, string) (domain.ResolutionResult, error) {
			return domain.NewTransientFailure("model_unavailable"), nil
		},
	}

	result, err := newTestService(&mockStore{}, en).Resolve(context.Background(), "Fernweh")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTransientFailure, result.Kind)
	assert.Equal(t, "model_unavailable", result.Reason)
}
