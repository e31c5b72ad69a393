package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/concurrency"
	"github.com/osse101/CaseDrop_Go/internal/cooldown"
	"github.com/osse101/CaseDrop_Go/internal/domain"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// caseTx stages writes in memory and applies them to the store on Commit.
// Reads see committed rows overlaid with this transaction's staged writes.
type caseTx struct {
	store *Store

	mu          sync.Mutex
	done        bool
	lockTimeout time.Duration
	releases    []func()
	held        map[string]struct{}

	cases        map[uuid.UUID]domain.Case
	users        map[uuid.UUID]domain.User
	achievements map[achievementKey]domain.UserAchievement
	counters     map[dailyKey]int
	drops        []domain.CaseItemDrop
	inventory    []domain.UserInventory
	xp           []domain.XpTransaction
}

func newCaseTx(s *Store) *caseTx {
	return &caseTx{
		store:        s,
		held:         make(map[string]struct{}),
		cases:        make(map[uuid.UUID]domain.Case),
		users:        make(map[uuid.UUID]domain.User),
		achievements: make(map[achievementKey]domain.UserAchievement),
		counters:     make(map[dailyKey]int),
	}
}

func (t *caseTx) checkOpen() error {
	if t.done {
		return errTxClosed
	}
	return nil
}

// acquire takes a named lock for the lifetime of the transaction. Re-acquiring
// a held lock is a no-op.
func (t *caseTx) acquire(ctx context.Context, name string) error {
	if _, ok := t.held[name]; ok {
		return nil
	}
	release, err := t.store.locks.Acquire(ctx, name, t.lockTimeout)
	if err != nil {
		if errors.Is(err, concurrency.ErrLockTimeout) {
			return fmt.Errorf("%w: %s: %w", domain.ErrBusy, name, err)
		}
		return err
	}
	t.held[name] = struct{}{}
	t.releases = append(t.releases, release)
	return nil
}

func (t *caseTx) finish() {
	t.done = true
	for i := len(t.releases) - 1; i >= 0; i-- {
		t.releases[i]()
	}
	t.releases = nil
}

func (t *caseTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	defer t.finish()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range t.cases {
		s.cases[id] = c
	}
	for id, u := range t.users {
		s.users[id] = u
	}
	for k, ua := range t.achievements {
		s.userAchievements[k] = ua
	}
	for k, delta := range t.counters {
		s.dailyCounters[k] += delta
	}
	s.drops = append(s.drops, t.drops...)
	s.inventory = append(s.inventory, t.inventory...)
	s.xp = append(s.xp, t.xp...)
	return nil
}

func (t *caseTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.finish()
	return nil
}

func (t *caseTx) SetLockTimeout(ctx context.Context, d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.lockTimeout = d
	return nil
}

func (t *caseTx) LockCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	if err := t.acquire(ctx, cooldown.CaseLockName(caseID)); err != nil {
		return nil, err
	}
	c, ok := t.caseLocked(caseID)
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	return &c, nil
}

func (t *caseTx) LockUserTemplate(ctx context.Context, userID uuid.UUID, templateID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	return t.acquire(ctx, cooldown.LockName(userID, templateID))
}

func (t *caseTx) LockUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	if err := t.acquire(ctx, cooldown.UserLockName(userID)); err != nil {
		return nil, err
	}
	if u, ok := t.users[userID]; ok {
		return &u, nil
	}
	return t.store.GetUser(ctx, userID)
}

func (t *caseTx) GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.store.GetTemplate(ctx, templateID)
}

func (t *caseTx) GetOpenHistory(ctx context.Context, userID uuid.UUID, templateID int) (domain.OpenHistory, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return domain.OpenHistory{}, err
	}

	s := t.store
	s.mu.RLock()
	all := make(map[uuid.UUID]domain.Case, len(s.cases))
	for id, c := range s.cases {
		all[id] = c
	}
	s.mu.RUnlock()
	for id, c := range t.cases {
		all[id] = c
	}

	var h domain.OpenHistory
	for _, c := range all {
		if c.UserID != userID || c.TemplateID != templateID || !c.IsOpened || c.OpenedAt == nil {
			continue
		}
		h.Opens++
		at := *c.OpenedAt
		if h.FirstOpenedAt == nil || at.Before(*h.FirstOpenedAt) {
			h.FirstOpenedAt = &at
		}
		if h.LastOpenedAt == nil || at.After(*h.LastOpenedAt) {
			h.LastOpenedAt = &at
		}
	}
	return h, nil
}

func (t *caseTx) GetItems(ctx context.Context, itemIDs []int) (map[int]domain.Item, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	s := t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]domain.Item, len(itemIDs))
	for _, id := range itemIDs {
		if it, ok := s.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (t *caseTx) GetUserAchievements(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return nil, err
	}

	merged := make(map[int]domain.UserAchievement)
	for _, ua := range t.store.UserAchievementsFor(userID) {
		merged[ua.AchievementID] = ua
	}
	for k, ua := range t.achievements {
		if k.UserID == userID {
			merged[k.AchievementID] = ua
		}
	}

	out := make([]domain.UserAchievement, 0, len(merged))
	for _, ua := range merged {
		out = append(out, ua)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out, nil
}

func (t *caseTx) GetDroppedItemIDs(ctx context.Context, userID uuid.UUID, templateID int) ([]int, error) {
	drops, err := t.dropsFor(userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var ids []int
	for _, d := range drops {
		if d.TemplateID != templateID {
			continue
		}
		if _, ok := seen[d.ItemID]; ok {
			continue
		}
		seen[d.ItemID] = struct{}{}
		ids = append(ids, d.ItemID)
	}
	sort.Ints(ids)
	return ids, nil
}

func (t *caseTx) GetDropSnapshots(ctx context.Context, userID uuid.UUID) ([]domain.CaseItemDrop, error) {
	return t.dropsFor(userID)
}

func (t *caseTx) MarkCaseOpened(ctx context.Context, caseID uuid.UUID, itemID int, bonus float64, openedAt time.Time) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return 0, err
	}
	c, ok := t.caseLocked(caseID)
	if !ok || c.IsOpened {
		return 0, nil
	}
	c.IsOpened = true
	c.OpenedAt = &openedAt
	c.ResultItemID = &itemID
	c.DropBonusApplied = &bonus
	t.cases[caseID] = c
	return 1, nil
}

func (t *caseTx) InsertCaseItemDrop(ctx context.Context, drop *domain.CaseItemDrop) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.drops = append(t.drops, *drop)
	return nil
}

func (t *caseTx) InsertInventory(ctx context.Context, inv *domain.UserInventory) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.inventory = append(t.inventory, *inv)
	return nil
}

func (t *caseTx) IncrementDailyCounter(ctx context.Context, userID uuid.UUID, day time.Time, key string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.counters[dailyKey{UserID: userID, Day: day.Format(time.DateOnly), Key: key}] += delta
	return nil
}

func (t *caseTx) InsertXpTransaction(ctx context.Context, xp *domain.XpTransaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.xp = append(t.xp, *xp)
	return nil
}

func (t *caseTx) UpdateUserProgress(ctx context.Context, user *domain.User) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	u := *user
	u.UpdatedAt = time.Now()
	t.users[u.ID] = u
	return nil
}

func (t *caseTx) UpsertUserAchievements(ctx context.Context, rows []domain.UserAchievement) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	for _, ua := range rows {
		t.achievements[achievementKey{UserID: ua.UserID, AchievementID: ua.AchievementID}] = ua
	}
	return nil
}

func (t *caseTx) guard() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checkOpen()
}

func (t *caseTx) caseLocked(caseID uuid.UUID) (domain.Case, bool) {
	if c, ok := t.cases[caseID]; ok {
		return c, true
	}
	s := t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	return c, ok
}

func (t *caseTx) dropsFor(userID uuid.UUID) ([]domain.CaseItemDrop, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	out := t.store.DropsFor(userID)
	for _, d := range t.drops {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}
