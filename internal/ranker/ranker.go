// Package ranker converts raw nearest-neighbor distances into normalized
// similarity scores and applies per-intent relevance policies.
package ranker

import (
	"sort"

	"campusqa/internal/domain"
	"campusqa/internal/intent"
)

// Policy controls how many candidates an intent retrieves and how strict
// the relevance cutoff is. Broad intents use a stricter threshold; intents
// that assemble multi-line answers (fee tables) retrieve more candidates.
type Policy struct {
	Threshold float64 `yaml:"threshold"`
	TopK      int     `yaml:"top_k"`
}

// PolicyTable maps intents to retrieval policies with a table-wide default.
type PolicyTable struct {
	Default   Policy                   `yaml:"default"`
	PerIntent map[intent.Intent]Policy `yaml:"per_intent"`
}

// DefaultPolicyTable mirrors the tuning the system shipped with: 0.35
// cutoff and 8 candidates by default, a stricter 0.40 cutoff for untyped
// queries, and a wider net for fee breakdowns.
func DefaultPolicyTable() PolicyTable {
	return PolicyTable{
		Default: Policy{Threshold: 0.35, TopK: 8},
		PerIntent: map[intent.Intent]Policy{
			intent.General:      {Threshold: 0.40, TopK: 8},
			intent.FeeStructure: {Threshold: 0.35, TopK: 15},
		},
	}
}

// ForIntent returns the policy for in, falling back to the default.
func (t PolicyTable) ForIntent(in intent.Intent) Policy {
	if p, ok := t.PerIntent[in]; ok {
		if p.TopK <= 0 {
			p.TopK = t.Default.TopK
		}
		if p.Threshold <= 0 {
			p.Threshold = t.Default.Threshold
		}
		return p
	}
	return t.Default
}

// Score converts a squared-L2 distance to a similarity in (0, 1].
func Score(distance float32) float64 {
	return 1.0 / (1.0 + float64(distance))
}

// Rank scores results, keeps those strictly above threshold, sorts by
// descending similarity, and truncates to topK. Pure: the input slice is
// not modified and ranking twice yields the same output.
func Rank(results []domain.Result, threshold float64, topK int) []domain.Result {
	ranked := make([]domain.Result, 0, len(results))
	for _, r := range results {
		r.Score = Score(r.Distance)
		if r.Score > threshold {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
