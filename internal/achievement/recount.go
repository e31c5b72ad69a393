package achievement

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Counts are the durable totals achievement progress is derived from.
type Counts struct {
	CasesOpened int
	Drops       []domain.CaseItemDrop
}

// Progress derives the current progress value of one definition from counts.
// ok is false for metrics that cannot be derived.
func Progress(def domain.Achievement, counts Counts) (value int, ok bool) {
	switch def.Metric {
	case domain.MetricCasesOpened:
		return counts.CasesOpened, true
	case domain.MetricPremiumItemsFound:
		threshold := DefaultPremiumPriceThreshold
		if def.MinItemPriceForBonus != nil {
			threshold = *def.MinItemPriceForBonus
		}
		return lo.CountBy(counts.Drops, func(d domain.CaseItemDrop) bool {
			return d.ItemPrice >= threshold
		}), true
	case domain.MetricRareItemsFound:
		minRarity := DefaultMinRarity
		if def.MinRarity != nil {
			minRarity = *def.MinRarity
		}
		return lo.CountBy(counts.Drops, func(d domain.CaseItemDrop) bool {
			return d.ItemRarity.AtLeast(minRarity)
		}), true
	default:
		return 0, false
	}
}

// Recount rebuilds every user achievement row from counts. The result replaces
// existing progress rather than incrementing it, so running it twice over the
// same counts yields the same rows. Completion is sticky: once completed, a row
// stays completed with its original completion time.
func Recount(userID uuid.UUID, defs []domain.Achievement, existing []domain.UserAchievement, counts Counts, now time.Time) []domain.UserAchievement {
	byID := lo.SliceToMap(existing, func(ua domain.UserAchievement) (int, domain.UserAchievement) {
		return ua.AchievementID, ua
	})

	out := make([]domain.UserAchievement, 0, len(defs))
	for _, def := range defs {
		prev, had := byID[def.ID]

		value, ok := Progress(def, counts)
		if !ok {
			if had {
				out = append(out, prev)
			}
			continue
		}

		ua := domain.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
			Progress:      value,
		}
		switch {
		case had && prev.IsCompleted:
			ua.IsCompleted = true
			ua.CompletedAt = prev.CompletedAt
		case def.Target > 0 && value >= def.Target:
			completedAt := now
			ua.IsCompleted = true
			ua.CompletedAt = &completedAt
		}
		out = append(out, ua)
	}
	return out
}

// Completed returns the definitions the user has completed.
func Completed(defs []domain.Achievement, progress []domain.UserAchievement) []domain.Achievement {
	done := make(map[int]struct{}, len(progress))
	for _, ua := range progress {
		if ua.IsCompleted {
			done[ua.AchievementID] = struct{}{}
		}
	}
	return lo.Filter(defs, func(def domain.Achievement, _ int) bool {
		_, ok := done[def.ID]
		return ok
	})
}

// NewlyCompleted returns the ids that are completed in after but were not in before.
func NewlyCompleted(before, after []domain.UserAchievement) []int {
	was := lo.SliceToMap(before, func(ua domain.UserAchievement) (int, bool) {
		return ua.AchievementID, ua.IsCompleted
	})
	return lo.FilterMap(after, func(ua domain.UserAchievement, _ int) (int, bool) {
		return ua.AchievementID, ua.IsCompleted && !was[ua.AchievementID]
	})
}
