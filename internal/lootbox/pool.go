package lootbox

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Pool maps item id to its effective weight.
type Pool map[int]float64

// IDs returns the pool's item ids in ascending order.
func (p Pool) IDs() []int {
	ids := lo.Keys(p)
	slices.Sort(ids)
	return ids
}

// TotalWeight sums the positive weights of the pool.
func (p Pool) TotalWeight() float64 {
	total := 0.0
	for _, id := range p.IDs() {
		if w := p[id]; w > 0 {
			total += w
		}
	}
	return total
}

// ResolvePool builds the eligible pool for a template from its item pool config
// and the live catalog records in items.
//
// Items missing from the catalog, unavailable, or configured with a non-positive
// weight are dropped. When the template sets a guaranteed minimum value, items
// priced below it (by live price) are dropped too; if that removes every
// available item the template is misconfigured and ErrPoolBelowFloor is returned.
func ResolvePool(template *domain.CaseTemplate, items map[int]domain.Item) (Pool, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: nil template", domain.ErrInvalidInput)
	}

	available := make(Pool, len(template.ItemPool))
	for id, entry := range template.ItemPool {
		if entry.Weight <= 0 {
			continue
		}
		item, ok := items[id]
		if !ok || !item.IsAvailable {
			continue
		}
		available[id] = entry.Weight
	}

	if len(available) == 0 {
		return nil, fmt.Errorf("%w: template %d", domain.ErrEmptyPool, template.ID)
	}

	if template.GuaranteedMinValue == nil {
		return available, nil
	}

	floor := *template.GuaranteedMinValue
	resolved := lo.PickBy(available, func(id int, _ float64) bool {
		return items[id].Price >= floor
	})
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: template %d floor %.2f", domain.ErrPoolBelowFloor, template.ID, floor)
	}

	return resolved, nil
}
