package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants_FirstElementIsInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"haus", "Haus", "ÄPFEL", "straße", "x"} {
		vs := Variants(input)
		require.NotEmpty(t, vs)
		assert.Equal(t, input, vs[0])
	}
}

func TestVariants_CaseSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain ascii noun", "haus", []string{"haus", "HAUS", "Haus"}},
		{"already titlecase", "Haus", []string{"Haus", "haus", "HAUS"}},
		{"umlaut initial", "äpfel", []string{"äpfel", "ÄPFEL", "Äpfel"}},
		{"eszett keeps single rune in upper", "straße", []string{"straße", "STRAẞE", "Straße"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Variants(tt.input))
		})
	}
}

func TestVariants_NoDuplicates(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"haus", "Äpfel", "STRAẞE", "gehen"} {
		vs := Variants(input)
		seen := make(map[string]bool, len(vs))
		for _, v := range vs {
			assert.False(t, seen[v], "duplicate %q for input %q", v, input)
			seen[v] = true
		}
	}
}

func TestVariants_Deterministic(t *testing.T) {
	t.Parallel()

	for range 10 {
		assert.Equal(t, Variants("Äpfel"), Variants("Äpfel"))
	}
}

// Applying the generator to any of its own outputs must reach back to the
// original spelling, otherwise a differently-cased stored lemma could become
// unreachable.
func TestVariants_CaseClosure(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"äpfel", "Äpfel", "straße", "haus", "Über"} {
		for _, v := range Variants(input) {
			assert.Contains(t, Variants(v), input,
				"variants of %q must contain the original %q", v, input)
		}
	}
}

func TestVariants_BoundedSize(t *testing.T) {
	t.Parallel()

	long := "Donaudampfschifffahrtsgesellschaftskapitän"
	assert.LessOrEqual(t, len(Variants(long)), 8)
}
