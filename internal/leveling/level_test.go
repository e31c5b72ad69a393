package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

func testTable() *Table {
	// Deliberately unsorted
	return NewTable([]domain.LevelSettings{
		{Level: 3, XPRequired: 300, BonusPercentage: 2},
		{Level: 1, XPRequired: 0, BonusPercentage: 0},
		{Level: 2, XPRequired: 100, BonusPercentage: 1},
		{Level: 4, XPRequired: 600, BonusPercentage: 3.5},
	})
}

func TestLevelFor(t *testing.T) {
	table := testTable()

	tests := []struct {
		name    string
		totalXP int64
		want    int
	}{
		{"zero XP", 0, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"between 3 and 4", 450, 3},
		{"beyond last boundary", 10_000, 4},
		{"negative XP", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.LevelFor(tt.totalXP))
		})
	}
}

func TestLevelFor_EmptyTable(t *testing.T) {
	assert.Equal(t, MinLevel, NewTable(nil).LevelFor(5000))
}

func TestSettingsFor(t *testing.T) {
	table := testTable()
	require.NotNil(t, table.SettingsFor(4))
	assert.Equal(t, 3.5, table.SettingsFor(4).BonusPercentage)
	assert.Nil(t, table.SettingsFor(99))
	assert.Equal(t, int64(300), table.SettingsFor(3).XPRequired)
}

func TestGrant(t *testing.T) {
	table := testTable()

	tests := []struct {
		name      string
		user      domain.User
		amount    int64
		wantTotal int64
		wantLevel int
		wantUp    bool
	}{
		{"no boundary crossed", domain.User{Level: 1, TotalXP: 50}, 10, 60, 1, false},
		{"crosses one boundary", domain.User{Level: 1, TotalXP: 95}, 10, 105, 2, true},
		{"crosses two boundaries", domain.User{Level: 2, TotalXP: 290}, 400, 690, 4, true},
		{"level never decreases", domain.User{Level: 4, TotalXP: 10}, 10, 20, 4, false},
		{"negative amount ignored", domain.User{Level: 2, TotalXP: 150}, -100, 150, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award := table.Grant(&tt.user, tt.amount)
			assert.Equal(t, tt.wantTotal, award.TotalAfter)
			assert.Equal(t, tt.wantLevel, award.NewLevel)
			assert.Equal(t, tt.wantUp, award.LeveledUp)
			assert.Equal(t, tt.user.Level, award.OldLevel)
		})
	}
}
