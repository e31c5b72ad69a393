package domain

// DropRule is the per-subscription-tier drop configuration.
type DropRule struct {
	SubscriptionTier      int                `json:"subscription_tier" db:"subscription_tier"`
	PremiumItemBonus      float64            `json:"premium_item_bonus" db:"premium_item_bonus"`
	PremiumPriceThreshold float64            `json:"premium_price_threshold" db:"premium_price_threshold"`
	PreventDuplicates     bool               `json:"prevent_duplicates" db:"prevent_duplicates"`
	RarityMultipliers     map[Rarity]float64 `json:"rarity_multipliers" db:"rarity_multipliers"`
}

// RarityMultiplier returns the weight multiplier for a rarity, 1 when unset.
func (r *DropRule) RarityMultiplier(rarity Rarity) float64 {
	if r == nil || r.RarityMultipliers == nil {
		return 1
	}
	m, ok := r.RarityMultipliers[rarity]
	if !ok {
		return 1
	}
	if m < 0 {
		return 0
	}
	return m
}

// LevelSettings defines the cumulative XP boundary of a level and the drop bonus it grants.
type LevelSettings struct {
	Level           int     `json:"level" db:"level"`
	XPRequired      int64   `json:"xp_required" db:"xp_required"`
	BonusPercentage float64 `json:"bonus_percentage" db:"bonus_percentage"`
}
