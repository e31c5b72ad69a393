package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PoolEntry is one item reference in a template's item pool. The cached price
// and rarity are advisory; the live Item record is authoritative.
type PoolEntry struct {
	Weight       float64 `json:"weight"`
	CachedRarity string  `json:"cachedRarity"`
	CachedPrice  float64 `json:"cachedPrice"`
}

// ItemPoolConfig maps item id to its pool entry. Persisted as JSONB.
type ItemPoolConfig map[int]PoolEntry

// ItemIDs returns every referenced item id.
func (c ItemPoolConfig) ItemIDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// CaseTemplate is the administrator-maintained configuration a case is issued from.
type CaseTemplate struct {
	ID                  int            `json:"template_id" db:"template_id"`
	Name                string         `json:"name" db:"name"`
	ItemPool            ItemPoolConfig `json:"item_pool_config" db:"item_pool_config"`
	CooldownHours       float64        `json:"cooldown_hours" db:"cooldown_hours"`
	MaxOpensPerUser     *int           `json:"max_opens_per_user,omitempty" db:"max_opens_per_user"`
	MinSubscriptionTier int            `json:"min_subscription_tier" db:"min_subscription_tier"`
	Price               *float64       `json:"price,omitempty" db:"price"`
	GuaranteedMinValue  *float64       `json:"guaranteed_min_value,omitempty" db:"guaranteed_min_value"`
	IsActive            bool           `json:"is_active" db:"is_active"`
	AvailableFrom       *time.Time     `json:"available_from,omitempty" db:"available_from"`
	AvailableUntil      *time.Time     `json:"available_until,omitempty" db:"available_until"`
	PreventDuplicates   bool           `json:"prevent_duplicates" db:"prevent_duplicates"`

	// FreeClaimLimit enables the claim-count allowance: the first N claims are
	// paced from the first claim's date instead of cooldown_hours.
	FreeClaimLimit      *int `json:"free_claim_limit,omitempty" db:"free_claim_limit"`
	FreeClaimWindowDays int  `json:"free_claim_window_days" db:"free_claim_window_days"`
}

// HasAllowance reports whether the template paces claims by the free allowance.
func (t *CaseTemplate) HasAllowance() bool {
	return t.FreeClaimLimit != nil && *t.FreeClaimLimit > 0
}

// WithinWindow reports whether at falls inside the template's availability window.
func (t *CaseTemplate) WithinWindow(at time.Time) bool {
	if t.AvailableFrom != nil && at.Before(*t.AvailableFrom) {
		return false
	}
	if t.AvailableUntil != nil && at.After(*t.AvailableUntil) {
		return false
	}
	return true
}

// Case is one issued instance of a template. It moves from Issued to Opened
// exactly once and is never deleted.
type Case struct {
	ID               uuid.UUID  `json:"case_id" db:"case_id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	TemplateID       int        `json:"template_id" db:"template_id"`
	IsOpened         bool       `json:"is_opened" db:"is_opened"`
	OpenedAt         *time.Time `json:"opened_date,omitempty" db:"opened_date"`
	ResultItemID     *int       `json:"result_item_id,omitempty" db:"result_item_id"`
	DropBonusApplied *float64   `json:"drop_bonus_applied,omitempty" db:"drop_bonus_applied"`
	Source           DropSource `json:"source" db:"source"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// CaseState is the lifecycle state derived from is_opened.
type CaseState string

const (
	CaseStateIssued CaseState = "issued"
	CaseStateOpened CaseState = "opened"
)

// State returns the lifecycle state of the case.
func (c *Case) State() CaseState {
	if c.IsOpened {
		return CaseStateOpened
	}
	return CaseStateIssued
}

// DropSource records how a case or inventory entry was granted.
type DropSource string

const (
	SourceSubscription DropSource = "subscription"
	SourcePurchase     DropSource = "purchase"
	SourceAchievement  DropSource = "achievement"
	SourceGift         DropSource = "gift"
	SourceAdmin        DropSource = "admin"
	SourceCaseOpening  DropSource = "case_opening"
	SourceOther        DropSource = "other"
)

var knownSources = map[DropSource]struct{}{
	SourceSubscription: {},
	SourcePurchase:     {},
	SourceAchievement:  {},
	SourceGift:         {},
	SourceAdmin:        {},
	SourceCaseOpening:  {},
}

// ParseDropSource maps unrecognized values to SourceOther.
func ParseDropSource(s string) DropSource {
	src := DropSource(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownSources[src]; ok {
		return src
	}
	return SourceOther
}

// OpenHistory summarizes a user's previous openings of one template.
type OpenHistory struct {
	Opens         int
	FirstOpenedAt *time.Time
	LastOpenedAt  *time.Time
}

// OpenResult is what OpenCase hands back to its caller.
type OpenResult struct {
	CaseID       uuid.UUID `json:"case_id"`
	Item         Item      `json:"item"`
	BonusApplied float64   `json:"bonus_applied"`
	LeveledUp    bool      `json:"leveled_up"`
	NewLevel     int       `json:"new_level"`

	AchievementsCompleted []int `json:"achievements_completed,omitempty"`
}
