package lootbox

import (
	"math"

	"github.com/samber/lo"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/utils"
)

// Bonus is the composed premium-drop bonus for one user.
type Bonus struct {
	TierPercentage        float64
	LevelPercentage       float64
	AchievementPercentage float64 // already capped at MaxAchievementBonus
	Percentage            float64 // total, capped at MaxTotalBonus

	// PremiumPriceThreshold is taken from the tier rule. Without a rule there is
	// no threshold and the bonus boosts nothing.
	PremiumPriceThreshold float64
	HasThreshold          bool
}

// ComposeBonus sums the tier, level and completed-achievement bonuses. The
// achievement component is capped first, then the grand total.
func ComposeBonus(rule *domain.DropRule, level *domain.LevelSettings, completed []domain.Achievement) Bonus {
	var b Bonus

	if rule != nil {
		b.TierPercentage = nonNegative(rule.PremiumItemBonus)
		b.PremiumPriceThreshold = rule.PremiumPriceThreshold
		b.HasThreshold = true
	}
	if level != nil {
		b.LevelPercentage = nonNegative(level.BonusPercentage)
	}

	achievementSum := lo.SumBy(completed, func(a domain.Achievement) float64 {
		return nonNegative(a.BonusPercentage)
	})
	b.AchievementPercentage = utils.Clamp(achievementSum, 0, MaxAchievementBonus)

	b.Percentage = utils.Clamp(b.TierPercentage+b.LevelPercentage+b.AchievementPercentage, 0, MaxTotalBonus)
	return b
}

// Multiplier returns the weight factor for premium items.
func (b Bonus) Multiplier() float64 {
	return 1 + b.Percentage/100
}

// Applies reports whether an item at price qualifies for the premium bonus.
func (b Bonus) Applies(price float64) bool {
	return b.HasThreshold && b.Percentage > 0 && price >= b.PremiumPriceThreshold
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
