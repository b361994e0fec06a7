package ranker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusqa/internal/domain"
	"campusqa/internal/intent"
	"campusqa/internal/ranker"
)

func results(distances ...float32) []domain.Result {
	out := make([]domain.Result, len(distances))
	for i, d := range distances {
		out[i] = domain.Result{
			Chunk:    domain.Chunk{Text: "chunk", SourceID: "doc", SectionIndex: i},
			Distance: d,
		}
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("scores are 1/(1+distance)", func(t *testing.T) {
		ranked := ranker.Rank(results(0, 1, 3), 0, 10)
		require.Len(t, ranked, 3)
		assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
		assert.InDelta(t, 0.5, ranked[1].Score, 1e-9)
		assert.InDelta(t, 0.25, ranked[2].Score, 1e-9)
	})

	t.Run("filters at the threshold and sorts descending", func(t *testing.T) {
		// distances 1 and 3 give scores 0.5 and 0.25
		ranked := ranker.Rank(results(3, 1), 0.4, 10)
		require.Len(t, ranked, 1)
		assert.InDelta(t, 0.5, ranked[0].Score, 1e-9)
	})

	t.Run("threshold is strict", func(t *testing.T) {
		ranked := ranker.Rank(results(1), 0.5, 10)
		assert.Empty(t, ranked)
	})

	t.Run("truncates to topK", func(t *testing.T) {
		ranked := ranker.Rank(results(0, 1, 2, 3, 4), 0, 2)
		assert.Len(t, ranked, 2)
	})

	t.Run("is idempotent and does not modify its input", func(t *testing.T) {
		in := results(2, 0, 1)
		first := ranker.Rank(in, 0.3, 10)
		second := ranker.Rank(in, 0.3, 10)
		assert.Equal(t, first, second)
		assert.Zero(t, in[0].Score, "input slice must stay untouched")
	})
}

func TestPolicyTable(t *testing.T) {
	table := ranker.DefaultPolicyTable()

	t.Run("general is stricter than the default", func(t *testing.T) {
		general := table.ForIntent(intent.General)
		hostel := table.ForIntent(intent.HostelFee)
		assert.Greater(t, general.Threshold, hostel.Threshold)
	})

	t.Run("fee breakdowns retrieve a wider net", func(t *testing.T) {
		fee := table.ForIntent(intent.FeeStructure)
		assert.Equal(t, 15, fee.TopK)
	})

	t.Run("unknown intents fall back to the default", func(t *testing.T) {
		assert.Equal(t, table.Default, table.ForIntent(intent.Transport))
	})

	t.Run("partial per-intent entries inherit defaults", func(t *testing.T) {
		table := ranker.PolicyTable{
			Default:   ranker.Policy{Threshold: 0.35, TopK: 8},
			PerIntent: map[intent.Intent]ranker.Policy{intent.Placement: {TopK: 12}},
		}
		p := table.ForIntent(intent.Placement)
		assert.Equal(t, 12, p.TopK)
		assert.Equal(t, 0.35, p.Threshold)
	})
}
