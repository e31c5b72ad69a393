package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account a case is issued to. The counters are mutated only inside
// an opening transaction, under the same lock as the case row.
type User struct {
	ID               uuid.UUID `json:"user_id" db:"user_id"`
	Username         string    `json:"username" db:"username"`
	SubscriptionTier int       `json:"subscription_tier" db:"subscription_tier"`
	Level            int       `json:"level" db:"level"`
	TotalXP          int64     `json:"total_xp" db:"total_xp"`
	TotalCasesOpened int       `json:"total_cases_opened" db:"total_cases_opened"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Subscription tier levels. Tiers are ordered: a higher value satisfies any lower requirement.
const (
	TierNone     = 0
	TierBasic    = 1
	TierPremium  = 2
	TierPlatinum = 3
)
