package caseopen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/achievement"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/leveling"
	"github.com/osse101/CaseDrop_Go/internal/logger"
	"github.com/osse101/CaseDrop_Go/internal/lootbox"
	"github.com/osse101/CaseDrop_Go/internal/metrics"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// openAttempt collects what OpenCase learns along the way, for logs and metrics
type openAttempt struct {
	userID      uuid.UUID
	caseID      uuid.UUID
	templateID  int
	guardLifted bool
}

// drawContext is everything read under lock that the draw and the outcome need
type drawContext struct {
	c        *domain.Case
	user     *domain.User
	template *domain.CaseTemplate
	levels   *leveling.Table
	defs     []domain.Achievement
	progress []domain.UserAchievement
}

func (s *service) OpenCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.OpenResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenCaseCalled, LogFieldUserID, userID, LogFieldCaseID, caseID)

	start := time.Now()
	attempt := &openAttempt{userID: userID, caseID: caseID}

	result, err := s.openCase(ctx, attempt)

	kind := domain.KindOf(err)
	metrics.RecordCaseOpen(attempt.templateID, string(kind), time.Since(start).Seconds(), attempt.guardLifted)
	if err != nil {
		logOpenError(log, attempt, kind, err)
		return nil, err
	}

	log.Info(LogMsgCaseOpened,
		LogFieldCaseID, caseID,
		LogFieldTemplateID, attempt.templateID,
		LogFieldItemID, result.Item.ID,
		LogFieldBonus, result.BonusApplied)
	return result, nil
}

func (s *service) openCase(ctx context.Context, attempt *openAttempt) (*domain.OpenResult, error) {
	if attempt.userID == uuid.Nil || attempt.caseID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and case id are required", domain.ErrInvalidInput)
	}

	// Once the case row is written the opening runs to completion regardless
	// of the caller's deadline.
	applyCtx := context.WithoutCancel(ctx)

	tx, err := s.repo.BeginCaseTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(applyCtx, tx)

	dc, err := s.lockAndCheck(ctx, tx, attempt)
	if err != nil {
		return nil, err
	}

	drop, err := s.draw(ctx, tx, dc)
	if err != nil {
		return nil, err
	}
	attempt.guardLifted = drop.GuardLifted

	now := s.now()
	out, err := s.applyOutcome(applyCtx, tx, dc, drop, now)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyOpened) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrOutcomeApplyFailed, err)
	}

	if err := tx.Commit(applyCtx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrOutcomeApplyFailed, ErrMsgCommit, err)
	}

	award := out.award
	log := logger.FromContext(ctx)
	if award.LeveledUp {
		log.Info(LogMsgLevelUp,
			LogFieldUserID, dc.user.ID,
			LogFieldOldLevel, award.OldLevel,
			LogFieldNewLevel, award.NewLevel)
	}
	if len(out.completed) > 0 {
		log.Info(LogMsgAchievementsCompleted,
			LogFieldUserID, dc.user.ID,
			LogFieldAchievementIDs, out.completed)
	}

	result := &domain.OpenResult{
		CaseID:                dc.c.ID,
		Item:                  drop.Item,
		BonusApplied:          drop.Bonus.Percentage,
		LeveledUp:             award.LeveledUp,
		NewLevel:              award.NewLevel,
		AchievementsCompleted: out.completed,
	}

	s.dispatch(applyCtx, event.NewCaseOpenedEvent(event.CaseOpenedPayloadV1{
		CaseID:         result.CaseID,
		UserID:         dc.user.ID,
		ItemID:         result.Item.ID,
		CaseTemplateID: dc.template.ID,
		BonusApplied:   result.BonusApplied,
		LeveledUp:      result.LeveledUp,
		NewLevel:       result.NewLevel,
	}))
	return result, nil
}

// lockAndCheck takes the case, (user, template) and user locks in that order
// and evaluates every eligibility precondition under them.
func (s *service) lockAndCheck(ctx context.Context, tx repository.CaseTx, attempt *openAttempt) (*drawContext, error) {
	if err := tx.SetLockTimeout(ctx, s.cfg.LockTimeout); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSetLockTimeout, err)
	}

	c, err := tx.LockCase(ctx, attempt.caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLockCase, err)
	}
	if c.UserID != attempt.userID {
		return nil, domain.ErrCaseNotFound
	}
	attempt.templateID = c.TemplateID
	if c.IsOpened {
		return nil, domain.ErrAlreadyOpened
	}

	if err := tx.LockUserTemplate(ctx, c.UserID, c.TemplateID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLockUserTemplate, err)
	}
	user, err := tx.LockUser(ctx, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLockUser, err)
	}

	tmpl, err := tx.GetTemplate(ctx, c.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTemplate, err)
	}
	history, err := tx.GetOpenHistory(ctx, user.ID, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetOpenHistory, err)
	}

	if err := s.checkEligibility(s.now(), tmpl, user, history); err != nil {
		return nil, err
	}

	return &drawContext{c: c, user: user, template: tmpl}, nil
}

// draw loads the catalog inputs and resolves the case into one item
func (s *service) draw(ctx context.Context, tx repository.CaseTx, dc *drawContext) (*lootbox.Drop, error) {
	items, err := tx.GetItems(ctx, dc.template.ItemPool.ItemIDs())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItems, err)
	}
	rule, err := s.catalog.GetDropRule(ctx, dc.user.SubscriptionTier)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetDropRule, err)
	}
	levels, err := s.catalog.GetLevelSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetLevels, err)
	}
	defs, err := s.catalog.GetAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetAchievements, err)
	}
	progress, err := tx.GetUserAchievements(ctx, dc.user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserProgress, err)
	}

	var previous []int
	if lootbox.DuplicatePreventionEnabled(dc.template, rule) {
		previous, err = tx.GetDroppedItemIDs(ctx, dc.user.ID, dc.template.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetPrevious, err)
		}
	}

	dc.levels = leveling.NewTable(levels)
	dc.defs = defs
	dc.progress = progress

	return s.draws.Draw(ctx, lootbox.DrawInput{
		Template:              dc.template,
		Items:                 items,
		Rule:                  rule,
		Level:                 dc.levels.SettingsFor(dc.user.Level),
		CompletedAchievements: achievement.Completed(defs, progress),
		PreviousDrops:         previous,
	})
}

func logOpenError(log *slog.Logger, attempt *openAttempt, kind domain.ErrorKind, err error) {
	args := []any{
		LogFieldUserID, attempt.userID,
		LogFieldCaseID, attempt.caseID,
		LogFieldTemplateID, attempt.templateID,
		LogFieldKind, kind,
		LogFieldError, err,
	}
	switch kind {
	case domain.KindEligibility, domain.KindNotFound, domain.KindInvalidInput:
		log.Debug(LogMsgOpenRejected, args...)
	case domain.KindConcurrency:
		log.Warn(LogMsgOpenBusy, args...)
	case domain.KindConfiguration:
		log.Error(LogMsgOpenMisconfigured, args...)
	default:
		log.Error(LogMsgOpenFailed, args...)
	}
}
