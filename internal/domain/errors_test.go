package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"empty pool", ErrEmptyPool, KindConfiguration},
		{"wrapped below floor", fmt.Errorf("template 4: %w", ErrPoolBelowFloor), KindConfiguration},
		{"already opened", ErrAlreadyOpened, KindEligibility},
		{"cooldown", CooldownActiveError{TemplateID: 1, NextEligibleAt: time.Now()}, KindEligibility},
		{"forfeited allowance", ErrAllowanceForfeited, KindEligibility},
		{"busy", fmt.Errorf("lock case: %w", ErrBusy), KindConcurrency},
		{"apply failed", fmt.Errorf("%w: insert drop", ErrOutcomeApplyFailed), KindPersistence},
		{"case not found", ErrCaseNotFound, KindNotFound},
		{"unknown", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestCooldownActiveError_Is(t *testing.T) {
	next := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	err := fmt.Errorf("open: %w", CooldownActiveError{TemplateID: 7, NextEligibleAt: next})

	assert.ErrorIs(t, err, ErrCooldownActive)

	var cdErr CooldownActiveError
	if assert.ErrorAs(t, err, &cdErr) {
		assert.Equal(t, next, cdErr.NextEligibleAt)
	}
	assert.Contains(t, err.Error(), "2026-03-01T13:00:00Z")
}

func TestAllowanceForfeited_IsQuotaExceeded(t *testing.T) {
	assert.ErrorIs(t, ErrAllowanceForfeited, ErrQuotaExceeded)
	assert.NotErrorIs(t, ErrQuotaExceeded, ErrAllowanceForfeited)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrBusy))
	assert.True(t, IsRetryable(ErrOutcomeApplyFailed))
	assert.False(t, IsRetryable(ErrAlreadyOpened))
	assert.False(t, IsRetryable(ErrEmptyPool))
}

func TestParseOpenEnums(t *testing.T) {
	assert.Equal(t, RarityMilSpec, ParseRarity(" Mil-Spec "))
	assert.Equal(t, RarityUnknown, ParseRarity("mythic"))
	assert.Equal(t, "Mil Spec", RarityMilSpec.DisplayName())
	assert.True(t, RarityCovert.AtLeast(RarityClassified))
	assert.False(t, RarityUnknown.AtLeast(RarityUnknown))

	assert.Equal(t, SourceGift, ParseDropSource("GIFT"))
	assert.Equal(t, SourceOther, ParseDropSource("raffle"))
	assert.Equal(t, InventoryStatusOther, ParseInventoryStatus("traded"))
	assert.Equal(t, MetricUnknown, ParseAchievementMetric("streak_days"))
}
