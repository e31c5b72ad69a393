package caseopen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/database/memory"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

var errInjected = errors.New("injected failure")

// failingRepo hands out transactions that fail at a chosen write
type failingRepo struct {
	*memory.Store
	failAt string
}

func (r *failingRepo) BeginCaseTx(ctx context.Context) (repository.CaseTx, error) {
	tx, err := r.Store.BeginCaseTx(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{CaseTx: tx, failAt: r.failAt}, nil
}

type failingTx struct {
	repository.CaseTx
	failAt string
}

func (t *failingTx) InsertXpTransaction(ctx context.Context, xp *domain.XpTransaction) error {
	if t.failAt == "xp" {
		return errInjected
	}
	return t.CaseTx.InsertXpTransaction(ctx, xp)
}

func (t *failingTx) UpsertUserAchievements(ctx context.Context, rows []domain.UserAchievement) error {
	if t.failAt == "achievements" {
		return errInjected
	}
	return t.CaseTx.UpsertUserAchievements(ctx, rows)
}

func (t *failingTx) Commit(ctx context.Context) error {
	if t.failAt == "commit" {
		_ = t.CaseTx.Rollback(ctx)
		return errInjected
	}
	return t.CaseTx.Commit(ctx)
}

func TestOpenCase_FailedApplyLeavesNoTrace(t *testing.T) {
	for _, failAt := range []string{"xp", "achievements", "commit"} {
		t.Run(failAt, func(t *testing.T) {
			base := newFixture(t, testTemplate())
			base.store.PutAchievement(domain.Achievement{
				ID: 1, Key: "first_case", Metric: domain.MetricCasesOpened, Target: 1,
			})
			repo := &failingRepo{Store: base.store, failAt: failAt}
			f := newFixtureWith(t, repo, base.store, base.user)
			ctx := context.Background()
			caseID := f.issue(t)

			before, err := f.store.GetUser(ctx, f.user.ID)
			require.NoError(t, err)

			_, err = f.svc.OpenCase(ctx, f.user.ID, caseID)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrOutcomeApplyFailed)
			assert.ErrorIs(t, err, errInjected)
			assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
			assert.True(t, domain.IsRetryable(err))

			c, err := f.store.GetCase(ctx, caseID)
			require.NoError(t, err)
			assert.False(t, c.IsOpened)
			assert.Nil(t, c.ResultItemID)

			assert.Empty(t, f.store.InventoryFor(f.user.ID))
			assert.Empty(t, f.store.XpTransactionsFor(f.user.ID))
			assert.Empty(t, f.store.DropsFor(f.user.ID))
			assert.Empty(t, f.store.UserAchievementsFor(f.user.ID))
			assert.Zero(t, f.store.DailyCounter(f.user.ID, f.svc.policy.ReferenceDate(f.now), domain.CounterCasesOpened))

			after, err := f.store.GetUser(ctx, f.user.ID)
			require.NoError(t, err)
			assert.Equal(t, before.TotalCasesOpened, after.TotalCasesOpened)
			assert.Equal(t, before.TotalXP, after.TotalXP)

			// The case is still issued, so a retry against a healthy store succeeds.
			healthy := newFixtureWith(t, f.store, f.store, f.user)
			res, err := healthy.svc.OpenCase(ctx, f.user.ID, caseID)
			require.NoError(t, err)
			assert.Equal(t, caseID, res.CaseID)
		})
	}
}
