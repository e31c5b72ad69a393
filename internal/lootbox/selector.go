package lootbox

import (
	"fmt"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Selector draws one item from a weighted pool.
type Selector struct {
	rnd func() float64 // uniform in [0, 1)
}

// NewSelector creates a selector backed by rnd.
func NewSelector(rnd func() float64) *Selector {
	return &Selector{rnd: rnd}
}

// Select picks an item with probability weight/W, walking ids in ascending
// order and subtracting each weight from a roll in [0, W). Non-positive weights
// are never selected. A roll that survives the walk through float rounding
// lands on the last positive-weight item.
func (s *Selector) Select(pool Pool) (int, error) {
	ids := pool.IDs()
	total := pool.TotalWeight()
	if total <= 0 {
		return 0, fmt.Errorf("%w: total %f", domain.ErrNoEligibleItems, total)
	}

	r := s.rnd() * total
	last := -1
	for _, id := range ids {
		w := pool[id]
		if w <= 0 {
			continue
		}
		last = id
		r -= w
		if r <= 0 {
			return id, nil
		}
	}

	return last, nil
}
