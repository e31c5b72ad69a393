package leveling

import (
	"sort"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Table is a LevelSettings list sorted by XP requirement.
type Table struct {
	levels []domain.LevelSettings
}

// NewTable sorts the settings by xp_required, breaking ties on level.
func NewTable(settings []domain.LevelSettings) *Table {
	levels := make([]domain.LevelSettings, len(settings))
	copy(levels, settings)
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].XPRequired == levels[j].XPRequired {
			return levels[i].Level < levels[j].Level
		}
		return levels[i].XPRequired < levels[j].XPRequired
	})
	return &Table{levels: levels}
}

// LevelFor returns the highest level whose cumulative XP requirement is met.
// Users below every boundary are level 1.
func (t *Table) LevelFor(totalXP int64) int {
	level := MinLevel
	for _, l := range t.levels {
		if l.XPRequired > totalXP {
			break
		}
		if l.Level > level {
			level = l.Level
		}
	}
	return level
}

// SettingsFor returns the settings row for exactly this level, or nil.
func (t *Table) SettingsFor(level int) *domain.LevelSettings {
	for i := range t.levels {
		if t.levels[i].Level == level {
			l := t.levels[i]
			return &l
		}
	}
	return nil
}

// Award is the outcome of granting XP to a user.
type Award struct {
	Amount     int64
	TotalAfter int64
	OldLevel   int
	NewLevel   int
	LeveledUp  bool
}

// Grant adds amount to the user's cumulative XP and resolves the resulting level.
// Levels never go down, even if boundaries were raised since the last grant.
func (t *Table) Grant(user *domain.User, amount int64) Award {
	if amount < 0 {
		amount = 0
	}
	total := user.TotalXP + amount

	newLevel := t.LevelFor(total)
	if newLevel < user.Level {
		newLevel = user.Level
	}

	return Award{
		Amount:     amount,
		TotalAfter: total,
		OldLevel:   user.Level,
		NewLevel:   newLevel,
		LeveledUp:  newLevel > user.Level,
	}
}
