package lootbox

import (
	"context"
	"fmt"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/logger"
	"github.com/osse101/CaseDrop_Go/internal/utils"
)

// DrawInput carries everything a draw depends on. All of it is read inside the
// opening transaction; the draw itself does no I/O.
type DrawInput struct {
	Template *domain.CaseTemplate
	Items    map[int]domain.Item // live catalog records for the template's pool

	Rule                  *domain.DropRule      // tier rule, nil when the tier has none
	Level                 *domain.LevelSettings // settings for the user's level, may be nil
	CompletedAchievements []domain.Achievement

	PreviousDrops []int // item ids already dropped to this user from this template
}

// Drop is the outcome of a draw.
type Drop struct {
	Item         domain.Item
	Bonus        Bonus
	Pool         Pool // final weighted pool the item was drawn from
	GuardApplied bool
	GuardLifted  bool
}

// Service resolves a case template into a single item.
type Service interface {
	Draw(ctx context.Context, in DrawInput) (*Drop, error)
}

type service struct {
	selector *Selector
}

// NewService creates a draw service using the package random source
func NewService() Service {
	return NewServiceWithRandom(utils.RandomFloat)
}

// NewServiceWithRandom creates a draw service with an explicit random source
func NewServiceWithRandom(rnd func() float64) Service {
	return &service{selector: NewSelector(rnd)}
}

// Draw runs pool resolution, duplicate guarding, weighting and selection.
func (s *service) Draw(ctx context.Context, in DrawInput) (*Drop, error) {
	log := logger.FromContext(ctx)

	pool, err := ResolvePool(in.Template, in.Items)
	if err != nil {
		return nil, err
	}

	drop := &Drop{Bonus: ComposeBonus(in.Rule, in.Level, in.CompletedAchievements)}
	drop.Pool = ApplyWeighting(pool, in.Items, in.Rule, drop.Bonus)

	if DuplicatePreventionEnabled(in.Template, in.Rule) {
		drop.GuardApplied = true
		guarded, lifted := GuardDuplicates(pool, in.PreviousDrops)
		if !lifted {
			// The guard is judged on final weights: multipliers can zero out what remains
			weighted := ApplyWeighting(guarded, in.Items, in.Rule, drop.Bonus)
			if weighted.TotalWeight() > 0 {
				drop.Pool = weighted
			} else {
				lifted = true
			}
		}
		drop.GuardLifted = lifted
		if lifted {
			log.Info(LogMsgDuplicateGuardLift,
				LogFieldTemplateID, in.Template.ID,
				LogFieldPreviousSize, len(in.PreviousDrops))
		}
	}

	log.Debug(LogMsgPoolResolved,
		LogFieldTemplateID, in.Template.ID,
		LogFieldPoolSize, len(drop.Pool),
		LogFieldTotalWeight, drop.Pool.TotalWeight(),
		LogFieldBonus, drop.Bonus.Percentage)

	itemID, err := s.selector.Select(drop.Pool)
	if err != nil {
		return nil, fmt.Errorf("template %d: %w", in.Template.ID, err)
	}

	item, ok := in.Items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
	}
	drop.Item = item

	log.Debug(LogMsgItemSelected, LogFieldTemplateID, in.Template.ID, LogFieldItemID, itemID)
	return drop, nil
}
