package lootbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/utils"
)

func TestSelector_ProbabilityConvergence(t *testing.T) {
	pool := Pool{1: 10, 2: 5, 3: 1, 4: 0.5}
	total := 16.5
	const draws = 100000

	selector := NewSelector(utils.NewSeededRandom(20260301))
	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		id, err := selector.Select(pool)
		require.NoError(t, err)
		counts[id]++
	}

	for id, w := range pool {
		expected := w / total
		actual := float64(counts[id]) / draws
		assert.InDelta(t, expected, actual, 0.01, "item %d frequency", id)
	}
}

func TestSelector_ZeroWeightNeverSelected(t *testing.T) {
	pool := Pool{1: 0, 2: 3, 3: 0, 4: 1, 5: 0}
	selector := NewSelector(utils.NewSeededRandom(7))

	for i := 0; i < 50000; i++ {
		id, err := selector.Select(pool)
		require.NoError(t, err)
		assert.NotContains(t, []int{1, 3, 5}, id)
	}
}

func TestSelector_Boundaries(t *testing.T) {
	pool := Pool{10: 5, 20: 5, 30: 0}

	tests := []struct {
		name     string
		roll     float64
		expected int
	}{
		{"roll zero picks first positive item", 0, 10},
		{"roll inside first weight", 0.49, 10},
		{"roll on first boundary", 0.5, 10},
		{"roll past first boundary", 0.51, 20},
		{"roll just below one", 0.9999999999, 20},
		{"roll equal to total wraps to last positive item", 1.0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewSelector(utils.FixedRandom(tt.roll)).Select(pool)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestSelector_NoEligibleItems(t *testing.T) {
	selector := NewSelector(utils.FixedRandom(0.5))

	_, err := selector.Select(Pool{})
	assert.ErrorIs(t, err, domain.ErrNoEligibleItems)

	_, err = selector.Select(Pool{1: 0, 2: -3})
	assert.ErrorIs(t, err, domain.ErrNoEligibleItems)
}

func BenchmarkSelector_Select(b *testing.B) {
	pool := make(Pool, 200)
	for i := 1; i <= 200; i++ {
		pool[i] = float64(i%17 + 1)
	}
	selector := NewSelector(utils.NewSeededRandom(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = selector.Select(pool)
	}
}
