package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InventoryStatus is the state of a granted inventory row.
type InventoryStatus string

const (
	InventoryStatusInventory InventoryStatus = "inventory"
	InventoryStatusSold      InventoryStatus = "sold"
	InventoryStatusWithdrawn InventoryStatus = "withdrawn"
	InventoryStatusOther     InventoryStatus = "other"
)

// ParseInventoryStatus maps unrecognized values to InventoryStatusOther.
func ParseInventoryStatus(s string) InventoryStatus {
	switch st := InventoryStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case InventoryStatusInventory, InventoryStatusSold, InventoryStatusWithdrawn:
		return st
	default:
		return InventoryStatusOther
	}
}

// UserInventory is a grant record. ItemID is nil for case-type entries.
type UserInventory struct {
	ID        uuid.UUID       `json:"inventory_id" db:"inventory_id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	ItemID    *int            `json:"item_id,omitempty" db:"item_id"`
	CaseID    *uuid.UUID      `json:"case_id,omitempty" db:"case_id"`
	Source    DropSource      `json:"source" db:"source"`
	Status    InventoryStatus `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// CaseItemDrop is one row of the append-only drop ledger. Price and rarity are
// snapshots taken at drop time.
type CaseItemDrop struct {
	ID         uuid.UUID `json:"drop_id" db:"drop_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	TemplateID int       `json:"template_id" db:"template_id"`
	ItemID     int       `json:"item_id" db:"item_id"`
	CaseID     uuid.UUID `json:"case_id" db:"case_id"`
	ItemPrice  float64   `json:"item_price" db:"item_price"`
	ItemRarity Rarity    `json:"item_rarity" db:"item_rarity"`
	DroppedAt  time.Time `json:"dropped_at" db:"dropped_at"`
}

// XpTransaction is one row of the append-only XP ledger.
type XpTransaction struct {
	ID         uuid.UUID `json:"xp_transaction_id" db:"xp_transaction_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Amount     int64     `json:"amount" db:"amount"`
	Reason     string    `json:"reason" db:"reason"`
	TotalAfter int64     `json:"total_after" db:"total_after"`
	IsLevelUp  bool      `json:"is_level_up" db:"is_level_up"`
	NewLevel   *int      `json:"new_level,omitempty" db:"new_level"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// XP ledger reasons
const (
	XPReasonCaseOpened = "case_opened"
)

// Daily counter keys
const (
	CounterCasesOpened = "cases_opened"
)
