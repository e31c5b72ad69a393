package lootbox

import "github.com/osse101/CaseDrop_Go/internal/domain"

// ApplyWeighting scales each weight by the tier rule's rarity multiplier and then
// by the premium bonus for items at or above the premium price threshold. Live
// catalog price and rarity are used. No renormalization is done: the selector
// walks raw cumulative weights.
func ApplyWeighting(pool Pool, items map[int]domain.Item, rule *domain.DropRule, bonus Bonus) Pool {
	weighted := make(Pool, len(pool))
	for id, w := range pool {
		item := items[id]
		w *= rule.RarityMultiplier(item.Rarity)
		if bonus.Applies(item.Price) {
			w *= bonus.Multiplier()
		}
		weighted[id] = w
	}
	return weighted
}
