package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AchievementMetric names the durable count an achievement's progress is derived from.
type AchievementMetric string

const (
	MetricCasesOpened       AchievementMetric = "cases_opened"
	MetricPremiumItemsFound AchievementMetric = "premium_items_found"
	MetricRareItemsFound    AchievementMetric = "rare_items_found"
	MetricUnknown           AchievementMetric = "unknown"
)

// ParseAchievementMetric maps unrecognized values to MetricUnknown.
func ParseAchievementMetric(s string) AchievementMetric {
	switch m := AchievementMetric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricCasesOpened, MetricPremiumItemsFound, MetricRareItemsFound:
		return m
	default:
		return MetricUnknown
	}
}

// Achievement is a read-only definition maintained by administrators.
type Achievement struct {
	ID                   int               `json:"achievement_id" db:"achievement_id"`
	Key                  string            `json:"achievement_key" db:"achievement_key"`
	Name                 string            `json:"name" db:"name"`
	Metric               AchievementMetric `json:"metric" db:"metric"`
	Target               int               `json:"target" db:"target"`
	BonusPercentage      float64           `json:"bonus_percentage" db:"bonus_percentage"`
	MinItemPriceForBonus *float64          `json:"min_item_price_for_bonus,omitempty" db:"min_item_price_for_bonus"`
	MinRarity            *Rarity           `json:"min_rarity,omitempty" db:"min_rarity"`
}

// UserAchievement tracks a user's progress toward one achievement.
type UserAchievement struct {
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	AchievementID int        `json:"achievement_id" db:"achievement_id"`
	Progress      int        `json:"progress" db:"progress"`
	IsCompleted   bool       `json:"is_completed" db:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
