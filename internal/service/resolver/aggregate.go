package resolver

import (
	"sort"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// Aggregate collects simultaneous candidates (homographs, multiple POS,
// ties) into a ranked, explainable result set for caller-side
// disambiguation. Candidates are de-duplicated by lemma/sense identity and
// distinct senses are never merged, even with identical spelling. Ranking
// key: tier ascending, similarity descending, frequency descending, then
// insertion order for full determinism.
func Aggregate(candidates []domain.ResolutionCandidate) domain.RankedResultSet {
	type indexed struct {
		domain.ResolutionCandidate
		order int
	}

	deduped := make([]indexed, 0, len(candidates))
	seen := make(map[domain.LemmaSenseID]int, len(candidates))

	for _, c := range candidates {
		id := c.LemmaSense.Identity()
		if pos, ok := seen[id]; ok {
			// Keep the better appearance of the same identity: earlier tier
			// wins, then higher similarity.
			prev := &deduped[pos]
			if c.Tier < prev.Tier || (c.Tier == prev.Tier && c.Similarity > prev.Similarity) {
				prev.ResolutionCandidate = c
			}
			continue
		}
		seen[id] = len(deduped)
		deduped = append(deduped, indexed{ResolutionCandidate: c, order: len(deduped)})
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		ra := rankValue(a.LemmaSense.Lemma.FrequencyRank)
		rb := rankValue(b.LemmaSense.Lemma.FrequencyRank)
		if ra != rb {
			return ra > rb
		}
		return a.order < b.order
	})

	ranked := make([]domain.RankedCandidate, len(deduped))
	for i, c := range deduped {
		ranked[i] = domain.RankedCandidate{
			ResolutionCandidate: c.ResolutionCandidate,
			Rank:                i + 1,
			Label:               c.Label(),
		}
	}

	return domain.RankedResultSet{Candidates: ranked}
}
