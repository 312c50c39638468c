package resolver

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// Similarity returns the normalized edit-distance similarity of two strings
// in [0,1]: 1 − editDistance/max(len(a), len(b)). Identical strings score
// 1.0; two empty strings are defined as identical.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	maxLen := la
	if lb > la {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// scoredSummary is a fuzzy candidate with its similarity to the query.
type scoredSummary struct {
	domain.LemmaSummary
	Similarity float64
}

// scoreCandidates computes similarities against query and keeps candidates
// at or above floor, sorted by similarity descending, then higher frequency
// rank, then text for determinism.
func scoreCandidates(query string, summaries []domain.LemmaSummary, floor float64) []scoredSummary {
	scored := make([]scoredSummary, 0, len(summaries))
	for _, s := range summaries {
		sim := Similarity(query, s.Text)
		if sim >= floor {
			scored = append(scored, scoredSummary{LemmaSummary: s, Similarity: sim})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		ri, rj := rankValue(scored[i].FrequencyRank), rankValue(scored[j].FrequencyRank)
		if ri != rj {
			return ri > rj
		}
		return scored[i].Text < scored[j].Text
	})

	return scored
}

func rankValue(rank *int) int {
	if rank == nil {
		return -1
	}
	return *rank
}
