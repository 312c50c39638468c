package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

func TestEchoMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		echoed string
		want   bool
	}{
		{"identical", "gehen", "gehen", true},
		{"case difference only", "fernweh", "Fernweh", true},
		{"surrounding whitespace", "gehen", "  gehen ", true},
		{"different word", "nim", "nimm", false},
		{"added diacritic", "schon", "schön", false},
		{"empty echo", "gehen", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key := domain.CaseFold(tt.query)
			assert.Equal(t, tt.want, echoMatches(key, tt.echoed))
		})
	}
}

func TestRejectionSuggestions_SubstituteWordFirst(t *testing.T) {
	t.Parallel()

	a := &provider.Analysis{
		EchoedInput:  "nimm",
		Lemma:        "nehmen",
		Translations: []provider.TranslationResult{{Lang: "en", Text: "to take"}},
		Suggestions:  []provider.SuggestionResult{{Word: "nie", Meaning: "never"}},
	}

	out := rejectionSuggestions(a)

	require.Len(t, out, 2)
	assert.Equal(t, "nehmen", out[0].Text)
	assert.Equal(t, "to take", out[0].Meaning)
	assert.Equal(t, "external-model", out[0].Source)
	assert.Equal(t, "nie", out[1].Text)
}

func TestRejectionSuggestions_FallsBackToEchoedInput(t *testing.T) {
	t.Parallel()

	a := &provider.Analysis{EchoedInput: "nimm"}

	out := rejectionSuggestions(a)

	require.Len(t, out, 1)
	assert.Equal(t, "nimm", out[0].Text)
	assert.Empty(t, out[0].Meaning)
}

func TestModelSuggestions_NeverNil(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, modelSuggestions(nil))
	assert.Empty(t, modelSuggestions(nil))
}

func TestLemmaRoundTrips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		analysis *provider.Analysis
		want     bool
	}{
		{
			"lemma equals query",
			"gehen",
			&provider.Analysis{Lemma: "gehen"},
			true,
		},
		{
			"lemma equals query modulo case",
			"fernweh",
			&provider.Analysis{Lemma: "Fernweh"},
			true,
		},
		{
			"query is a declared inflection",
			"gehe",
			&provider.Analysis{
				Lemma:       "gehen",
				Inflections: []provider.InflectionResult{{Form: "gehe", Feature: "present_1st_sg"}},
			},
			true,
		},
		{
			"feature annotation alone counts",
			"ging",
			&provider.Analysis{Lemma: "gehen", Feature: "past_1st_sg"},
			true,
		},
		{
			"unrelated lemma",
			"blumen",
			&provider.Analysis{Lemma: "laufen"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key := domain.CaseFold(tt.query)
			assert.Equal(t, tt.want, lemmaRoundTrips(key, tt.analysis))
		})
	}
}
