package caseopen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/achievement"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/leveling"
	"github.com/osse101/CaseDrop_Go/internal/lootbox"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// outcome is what an applied opening changed for the user.
type outcome struct {
	award     leveling.Award
	completed []int // achievement ids completed by this opening
}

// applyOutcome writes every side effect of an opening inside tx. Any error
// leaves the caller to roll back; nothing here is visible until Commit.
func (s *service) applyOutcome(ctx context.Context, tx repository.CaseTx, dc *drawContext, drop *lootbox.Drop, now time.Time) (outcome, error) {
	user := dc.user
	itemID := drop.Item.ID

	rows, err := tx.MarkCaseOpened(ctx, dc.c.ID, itemID, drop.Bonus.Percentage, now)
	if err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgMarkOpened, err)
	}
	if rows == 0 {
		return outcome{}, domain.ErrAlreadyOpened
	}

	if err := tx.InsertCaseItemDrop(ctx, &domain.CaseItemDrop{
		ID:         uuid.New(),
		UserID:     user.ID,
		TemplateID: dc.template.ID,
		ItemID:     itemID,
		CaseID:     dc.c.ID,
		ItemPrice:  drop.Item.Price,
		ItemRarity: drop.Item.Rarity,
		DroppedAt:  now,
	}); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgInsertDrop, err)
	}

	caseID := dc.c.ID
	if err := tx.InsertInventory(ctx, &domain.UserInventory{
		ID:        uuid.New(),
		UserID:    user.ID,
		ItemID:    &itemID,
		CaseID:    &caseID,
		Source:    domain.SourceCaseOpening,
		Status:    domain.InventoryStatusInventory,
		CreatedAt: now,
	}); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgInsertInventory, err)
	}

	if err := tx.IncrementDailyCounter(ctx, user.ID, s.policy.ReferenceDate(now), domain.CounterCasesOpened, 1); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgIncrementCounter, err)
	}

	award := dc.levels.Grant(user, s.cfg.OpenXP)
	xp := &domain.XpTransaction{
		ID:         uuid.New(),
		UserID:     user.ID,
		Amount:     award.Amount,
		Reason:     domain.XPReasonCaseOpened,
		TotalAfter: award.TotalAfter,
		IsLevelUp:  award.LeveledUp,
		CreatedAt:  now,
	}
	if award.LeveledUp {
		newLevel := award.NewLevel
		xp.NewLevel = &newLevel
	}
	if err := tx.InsertXpTransaction(ctx, xp); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgInsertXP, err)
	}

	user.TotalXP = award.TotalAfter
	user.Level = award.NewLevel
	user.TotalCasesOpened++
	user.UpdatedAt = now
	if err := tx.UpdateUserProgress(ctx, user); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgUpdateUser, err)
	}

	if len(dc.defs) == 0 {
		return outcome{award: award}, nil
	}

	// Progress is recounted from the durable totals, including the drop staged above.
	snapshots, err := tx.GetDropSnapshots(ctx, user.ID)
	if err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgGetSnapshots, err)
	}
	recounted := achievement.Recount(user.ID, dc.defs, dc.progress, achievement.Counts{
		CasesOpened: user.TotalCasesOpened,
		Drops:       snapshots,
	}, now)
	if err := tx.UpsertUserAchievements(ctx, recounted); err != nil {
		return outcome{}, fmt.Errorf("%s: %w", ErrMsgUpsertProgress, err)
	}

	return outcome{award: award, completed: achievement.NewlyCompleted(dc.progress, recounted)}, nil
}
