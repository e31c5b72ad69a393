package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CaseTx is the opening transaction. Reads made through it observe the rows it
// has locked and the writes it has staged.
type CaseTx interface {
	Tx

	// SetLockTimeout bounds every lock wait for the rest of the transaction.
	// A wait that exceeds it fails with domain.ErrBusy.
	SetLockTimeout(ctx context.Context, d time.Duration) error

	// LockCase locks the case row. Returns domain.ErrCaseNotFound if it does not exist.
	LockCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)

	// LockUserTemplate serializes cooldown and quota checks for one (user, template) pair.
	LockUserTemplate(ctx context.Context, userID uuid.UUID, templateID int) error

	// LockUser locks the user row whose counters the opening mutates.
	LockUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error)
	GetOpenHistory(ctx context.Context, userID uuid.UUID, templateID int) (domain.OpenHistory, error)
	GetItems(ctx context.Context, itemIDs []int) (map[int]domain.Item, error)
	GetUserAchievements(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error)
	GetDroppedItemIDs(ctx context.Context, userID uuid.UUID, templateID int) ([]int, error)
	GetDropSnapshots(ctx context.Context, userID uuid.UUID) ([]domain.CaseItemDrop, error)

	// MarkCaseOpened flips is_opened only if it is still false and returns the
	// number of rows changed (0 or 1).
	MarkCaseOpened(ctx context.Context, caseID uuid.UUID, itemID int, bonus float64, openedAt time.Time) (int64, error)
	InsertCaseItemDrop(ctx context.Context, drop *domain.CaseItemDrop) error
	InsertInventory(ctx context.Context, inv *domain.UserInventory) error
	IncrementDailyCounter(ctx context.Context, userID uuid.UUID, day time.Time, key string, delta int) error
	InsertXpTransaction(ctx context.Context, xp *domain.XpTransaction) error
	UpdateUserProgress(ctx context.Context, user *domain.User) error
	UpsertUserAchievements(ctx context.Context, rows []domain.UserAchievement) error
}
