package lootbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/utils"
)

func TestDraw_DuplicateGuardExhaustionFallback(t *testing.T) {
	ctx := context.Background()
	template := &domain.CaseTemplate{
		ID:                9,
		PreventDuplicates: true,
		ItemPool:          domain.ItemPoolConfig{1: {Weight: 10}, 2: {Weight: 5}, 3: {Weight: 1}},
	}
	svc := NewServiceWithRandom(utils.NewSeededRandom(3))

	var previous []int
	for open := 1; open <= 3; open++ {
		drop, err := svc.Draw(ctx, DrawInput{Template: template, Items: testItems(), PreviousDrops: previous})
		require.NoError(t, err)
		assert.True(t, drop.GuardApplied)
		assert.False(t, drop.GuardLifted)
		assert.NotContains(t, previous, drop.Item.ID, "open %d repeated an item", open)
		previous = append(previous, drop.Item.ID)
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, previous)

	drop, err := svc.Draw(ctx, DrawInput{Template: template, Items: testItems(), PreviousDrops: previous})
	require.NoError(t, err, "4th open must resolve once every item was received")
	assert.True(t, drop.GuardLifted)
	assert.Contains(t, []int{1, 2, 3}, drop.Item.ID)
}

func TestDraw_GuardLiftsWhenMultipliersZeroTheRemainder(t *testing.T) {
	template := &domain.CaseTemplate{
		ID:                1,
		PreventDuplicates: true,
		ItemPool:          domain.ItemPoolConfig{1: {Weight: 10}, 3: {Weight: 5}},
	}
	rule := &domain.DropRule{RarityMultipliers: map[domain.Rarity]float64{domain.RarityCovert: 0}}

	drop, err := NewServiceWithRandom(utils.FixedRandom(0.5)).Draw(context.Background(), DrawInput{
		Template:      template,
		Items:         testItems(),
		Rule:          rule,
		PreviousDrops: []int{1},
	})
	require.NoError(t, err, "an owned item must still resolve when the rest weighs nothing")

	assert.Equal(t, 1, drop.Item.ID)
	assert.True(t, drop.GuardApplied)
	assert.True(t, drop.GuardLifted)
	assert.Equal(t, 10.0, drop.Pool[1])
	assert.Zero(t, drop.Pool[3])
}

func TestDraw_GuardKeepsWeightedRemainder(t *testing.T) {
	template := &domain.CaseTemplate{
		ID:                1,
		PreventDuplicates: true,
		ItemPool:          domain.ItemPoolConfig{1: {Weight: 10}, 2: {Weight: 5}, 3: {Weight: 5}},
	}
	rule := &domain.DropRule{RarityMultipliers: map[domain.Rarity]float64{domain.RarityCovert: 0}}

	drop, err := NewServiceWithRandom(utils.FixedRandom(0.99)).Draw(context.Background(), DrawInput{
		Template:      template,
		Items:         testItems(),
		Rule:          rule,
		PreviousDrops: []int{1},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, drop.Item.ID)
	assert.False(t, drop.GuardLifted)
	assert.NotContains(t, drop.Pool, 1)
}

func TestDraw_AppliesBonusToPremiumItems(t *testing.T) {
	template := &domain.CaseTemplate{ID: 1, ItemPool: domain.ItemPoolConfig{1: {Weight: 10}, 3: {Weight: 1}}}
	rule := &domain.DropRule{PremiumItemBonus: 5, PremiumPriceThreshold: 50}

	drop, err := NewServiceWithRandom(utils.FixedRandom(0.99)).Draw(context.Background(), DrawInput{
		Template:              template,
		Items:                 testItems(),
		Rule:                  rule,
		Level:                 &domain.LevelSettings{Level: 3, BonusPercentage: 2},
		CompletedAchievements: achievements(10),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, drop.Item.ID)
	assert.Equal(t, 12.0, drop.Bonus.Percentage)
	assert.InDelta(t, 1.12, drop.Pool[3], 1e-9)
	assert.Equal(t, 10.0, drop.Pool[1])
}

func TestDraw_PropagatesConfigurationErrors(t *testing.T) {
	svc := NewServiceWithRandom(utils.FixedRandom(0.5))

	_, err := svc.Draw(context.Background(), DrawInput{
		Template: &domain.CaseTemplate{ID: 2, ItemPool: domain.ItemPoolConfig{4: {Weight: 1}}},
		Items:    testItems(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyPool)

	_, err = svc.Draw(context.Background(), DrawInput{
		Template: &domain.CaseTemplate{ID: 3, ItemPool: domain.ItemPoolConfig{1: {Weight: 1}}},
		Items:    testItems(),
		Rule:     &domain.DropRule{RarityMultipliers: map[domain.Rarity]float64{domain.RarityConsumer: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrNoEligibleItems)
}
