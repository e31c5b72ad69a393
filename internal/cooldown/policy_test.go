package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

var msk = time.FixedZone("MSK", 3*60*60)

func testPolicy() *Policy {
	return NewPolicy(Config{Location: msk, CutoffHour: 16})
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestCooldownDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), CooldownDuration(0))
	assert.Equal(t, time.Duration(0), CooldownDuration(-1))
	assert.Equal(t, 90*time.Minute, CooldownDuration(1.5))
	assert.Equal(t, 24*time.Hour, CooldownDuration(24))
}

func TestCheck_StandardCooldown(t *testing.T) {
	p := testPolicy()
	tmpl := &domain.CaseTemplate{ID: 7, CooldownHours: 1.5}
	last := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history domain.OpenHistory
		now     time.Time
		wantErr bool
	}{
		{"never opened", domain.OpenHistory{}, last, false},
		{"inside cooldown", domain.OpenHistory{Opens: 1, LastOpenedAt: timePtr(last)}, last.Add(89 * time.Minute), true},
		{"exactly at boundary", domain.OpenHistory{Opens: 1, LastOpenedAt: timePtr(last)}, last.Add(90 * time.Minute), false},
		{"after cooldown", domain.OpenHistory{Opens: 1, LastOpenedAt: timePtr(last)}, last.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(tt.now, tmpl, tt.history)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrCooldownActive)
			var cdErr domain.CooldownActiveError
			require.True(t, errors.As(err, &cdErr))
			assert.Equal(t, 7, cdErr.TemplateID)
			assert.True(t, cdErr.NextEligibleAt.Equal(last.Add(90*time.Minute)))
		})
	}
}

func TestCheck_NoCooldownConfigured(t *testing.T) {
	p := testPolicy()
	tmpl := &domain.CaseTemplate{ID: 1}
	now := time.Now()
	assert.NoError(t, p.Check(now, tmpl, domain.OpenHistory{Opens: 10, LastOpenedAt: timePtr(now)}))
}

func TestAllowanceUnlockAt(t *testing.T) {
	p := testPolicy()

	tests := []struct {
		name  string
		first time.Time
		claim int
		want  time.Time
	}{
		{
			name:  "first claim before cutoff unlocks same day",
			first: time.Date(2026, 3, 10, 15, 0, 0, 0, msk),
			claim: 2,
			want:  time.Date(2026, 3, 10, 16, 0, 0, 0, msk),
		},
		{
			name:  "first claim after cutoff unlocks two days later",
			first: time.Date(2026, 3, 10, 16, 30, 0, 0, msk),
			claim: 2,
			want:  time.Date(2026, 3, 12, 16, 0, 0, 0, msk),
		},
		{
			name:  "first claim exactly at cutoff counts as after",
			first: time.Date(2026, 3, 10, 16, 0, 0, 0, msk),
			claim: 2,
			want:  time.Date(2026, 3, 12, 16, 0, 0, 0, msk),
		},
		{
			name:  "third claim one day after second",
			first: time.Date(2026, 3, 10, 9, 0, 0, 0, msk),
			claim: 3,
			want:  time.Date(2026, 3, 11, 16, 0, 0, 0, msk),
		},
		{
			name:  "first claim given in UTC is evaluated in reference zone",
			first: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), // 17:00 MSK
			claim: 2,
			want:  time.Date(2026, 3, 12, 16, 0, 0, 0, msk),
		},
		{
			name:  "month rollover",
			first: time.Date(2026, 3, 31, 18, 0, 0, 0, msk),
			claim: 2,
			want:  time.Date(2026, 4, 2, 16, 0, 0, 0, msk),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.AllowanceUnlockAt(tt.first, tt.claim)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestCheck_Allowance(t *testing.T) {
	p := testPolicy()
	tmpl := &domain.CaseTemplate{ID: 3, FreeClaimLimit: intPtr(3), FreeClaimWindowDays: 7, CooldownHours: 999}
	first := time.Date(2026, 3, 10, 15, 0, 0, 0, msk)
	history := func(opens int) domain.OpenHistory {
		return domain.OpenHistory{Opens: opens, FirstOpenedAt: timePtr(first), LastOpenedAt: timePtr(first)}
	}

	t.Run("first claim always allowed", func(t *testing.T) {
		assert.NoError(t, p.Check(first, tmpl, domain.OpenHistory{}))
	})

	t.Run("second claim before unlock", func(t *testing.T) {
		err := p.Check(time.Date(2026, 3, 10, 15, 59, 0, 0, msk), tmpl, history(1))
		require.ErrorIs(t, err, domain.ErrCooldownActive)
	})

	t.Run("second claim at unlock ignores cooldown hours", func(t *testing.T) {
		assert.NoError(t, p.Check(time.Date(2026, 3, 10, 16, 0, 0, 0, msk), tmpl, history(1)))
	})

	t.Run("limit reached", func(t *testing.T) {
		err := p.Check(time.Date(2026, 3, 12, 17, 0, 0, 0, msk), tmpl, history(3))
		require.ErrorIs(t, err, domain.ErrQuotaExceeded)
		assert.NotErrorIs(t, err, domain.ErrAllowanceForfeited)
	})

	t.Run("window elapsed forfeits remaining claims", func(t *testing.T) {
		err := p.Check(time.Date(2026, 3, 18, 17, 0, 0, 0, msk), tmpl, history(1))
		require.ErrorIs(t, err, domain.ErrAllowanceForfeited)
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	})

	t.Run("last day of window still allowed", func(t *testing.T) {
		assert.NoError(t, p.Check(time.Date(2026, 3, 17, 23, 0, 0, 0, msk), tmpl, history(1)))
	})
}

func TestCalendarDaysBetween(t *testing.T) {
	p := testPolicy()
	a := time.Date(2026, 3, 10, 23, 30, 0, 0, msk)
	b := time.Date(2026, 3, 11, 0, 30, 0, 0, msk)
	assert.Equal(t, 1, p.CalendarDaysBetween(a, b))
	assert.Equal(t, 0, p.CalendarDaysBetween(a, a))
}

func TestReferenceDate(t *testing.T) {
	p := testPolicy()
	// 22:30 UTC is already the next day in MSK
	got := p.ReferenceDate(time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig("UTC", 24)
	assert.Error(t, err)

	_, err = NewConfig("Not/AZone", 16)
	assert.Error(t, err)

	cfg, err := NewConfig("UTC", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.CutoffHour)
}
