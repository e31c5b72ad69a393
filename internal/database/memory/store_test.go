package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

func seed(t *testing.T) (*Store, uuid.UUID, uuid.UUID) {
	t.Helper()
	s := NewStore()
	userID := uuid.New()
	s.PutUser(domain.User{ID: userID, Username: "alice", Level: 1})
	s.PutItem(domain.Item{ID: 1, Name: "Sticker", Price: 1, Rarity: domain.RarityConsumer, IsAvailable: true})
	s.PutTemplate(domain.CaseTemplate{ID: 1, Name: "Starter", IsActive: true,
		ItemPool: domain.ItemPoolConfig{1: {Weight: 1}}})

	c := &domain.Case{ID: uuid.New(), UserID: userID, TemplateID: 1, Source: domain.SourceGift}
	require.NoError(t, s.CreateCase(context.Background(), c))
	return s, userID, c.ID
}

func TestCreateCase_Validation(t *testing.T) {
	s, userID, _ := seed(t)
	ctx := context.Background()

	err := s.CreateCase(ctx, &domain.Case{ID: uuid.New(), UserID: uuid.New(), TemplateID: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = s.CreateCase(ctx, &domain.Case{ID: uuid.New(), UserID: userID, TemplateID: 99})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestCaseTx_CommitAppliesStagedWrites(t *testing.T) {
	s, userID, caseID := seed(t)
	ctx := context.Background()
	now := time.Now()

	tx, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)

	n, err := tx.MarkCaseOpened(ctx, caseID, 1, 2.5, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, tx.InsertCaseItemDrop(ctx, &domain.CaseItemDrop{ID: uuid.New(), UserID: userID, TemplateID: 1, ItemID: 1, CaseID: caseID}))
	require.NoError(t, tx.IncrementDailyCounter(ctx, userID, now, domain.CounterCasesOpened, 1))

	// Reads inside the transaction see staged writes
	h, err := tx.GetOpenHistory(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Opens)
	ids, err := tx.GetDroppedItemIDs(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)

	// Nothing visible outside yet
	c, err := s.GetCase(ctx, caseID)
	require.NoError(t, err)
	assert.False(t, c.IsOpened)
	assert.Empty(t, s.DropsFor(userID))

	require.NoError(t, tx.Commit(ctx))

	c, err = s.GetCase(ctx, caseID)
	require.NoError(t, err)
	assert.True(t, c.IsOpened)
	assert.Equal(t, 1, *c.ResultItemID)
	assert.Len(t, s.DropsFor(userID), 1)
	assert.Equal(t, 1, s.DailyCounter(userID, now, domain.CounterCasesOpened))

	assert.EqualError(t, tx.Rollback(ctx), domain.ErrMsgTxClosed)
}

func TestCaseTx_RollbackDiscards(t *testing.T) {
	s, userID, caseID := seed(t)
	ctx := context.Background()

	tx, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	_, err = tx.MarkCaseOpened(ctx, caseID, 1, 0, time.Now())
	require.NoError(t, err)
	require.NoError(t, tx.InsertXpTransaction(ctx, &domain.XpTransaction{ID: uuid.New(), UserID: userID, Amount: 10}))
	require.NoError(t, tx.Rollback(ctx))

	c, err := s.GetCase(ctx, caseID)
	require.NoError(t, err)
	assert.False(t, c.IsOpened)
	assert.Empty(t, s.XpTransactionsFor(userID))
}

func TestCaseTx_MarkCaseOpenedIsCompareAndSwap(t *testing.T) {
	s, _, caseID := seed(t)
	ctx := context.Background()

	tx, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	n, err := tx.MarkCaseOpened(ctx, caseID, 1, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = tx.MarkCaseOpened(ctx, caseID, 1, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCaseTx_LockTimeoutIsBusy(t *testing.T) {
	s, _, caseID := seed(t)
	ctx := context.Background()

	holder, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	_, err = holder.LockCase(ctx, caseID)
	require.NoError(t, err)

	waiter, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	require.NoError(t, waiter.SetLockTimeout(ctx, 20*time.Millisecond))

	_, err = waiter.LockCase(ctx, caseID)
	assert.ErrorIs(t, err, domain.ErrBusy)
	require.NoError(t, waiter.Rollback(ctx))

	// Releasing the holder lets the next transaction in
	require.NoError(t, holder.Rollback(ctx))
	next, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	require.NoError(t, next.SetLockTimeout(ctx, 20*time.Millisecond))
	_, err = next.LockCase(ctx, caseID)
	assert.NoError(t, err)
	require.NoError(t, next.Rollback(ctx))
}

func TestCaseTx_LockCaseNotFound(t *testing.T) {
	s, _, _ := seed(t)
	ctx := context.Background()

	tx, err := s.BeginCaseTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.LockCase(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestGetDropRule_NoneForTier(t *testing.T) {
	s := NewStore()
	rule, err := s.GetDropRule(context.Background(), domain.TierPremium)
	assert.NoError(t, err)
	assert.Nil(t, rule)
}
