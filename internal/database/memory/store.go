// Package memory is an in-process implementation of the case and catalog
// repositories. Opening transactions stage their writes and apply them on
// Commit; row and (user, template) locks come from a keyed lock manager with
// the same bounded wait as the PostgreSQL lock_timeout.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/concurrency"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

type dailyKey struct {
	UserID uuid.UUID
	Day    string
	Key    string
}

type achievementKey struct {
	UserID        uuid.UUID
	AchievementID int
}

// Store holds every table in memory
type Store struct {
	mu    sync.RWMutex
	locks *concurrency.LockManager

	users        map[uuid.UUID]domain.User
	items        map[int]domain.Item
	templates    map[int]domain.CaseTemplate
	cases        map[uuid.UUID]domain.Case
	dropRules    map[int]domain.DropRule
	levels       []domain.LevelSettings
	achievements []domain.Achievement

	drops            []domain.CaseItemDrop
	inventory        []domain.UserInventory
	xp               []domain.XpTransaction
	userAchievements map[achievementKey]domain.UserAchievement
	dailyCounters    map[dailyKey]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		locks:            concurrency.NewLockManager(),
		users:            make(map[uuid.UUID]domain.User),
		items:            make(map[int]domain.Item),
		templates:        make(map[int]domain.CaseTemplate),
		cases:            make(map[uuid.UUID]domain.Case),
		dropRules:        make(map[int]domain.DropRule),
		userAchievements: make(map[achievementKey]domain.UserAchievement),
		dailyCounters:    make(map[dailyKey]int),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() {}

// ---- Seeding ----

func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
}

func (s *Store) PutItem(it domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *Store) PutTemplate(t domain.CaseTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t
}

func (s *Store) PutDropRule(r domain.DropRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropRules[r.SubscriptionTier] = r
}

func (s *Store) PutLevelSettings(levels ...domain.LevelSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels = append(s.levels, levels...)
}

func (s *Store) PutAchievement(a domain.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = append(s.achievements, a)
}

// ---- Inspection ----

// InventoryFor returns the inventory rows granted to a user
func (s *Store) InventoryFor(userID uuid.UUID) []domain.UserInventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.UserInventory
	for _, inv := range s.inventory {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out
}

// XpTransactionsFor returns the XP ledger rows of a user
func (s *Store) XpTransactionsFor(userID uuid.UUID) []domain.XpTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.XpTransaction
	for _, xp := range s.xp {
		if xp.UserID == userID {
			out = append(out, xp)
		}
	}
	return out
}

// DropsFor returns the drop ledger rows of a user
func (s *Store) DropsFor(userID uuid.UUID) []domain.CaseItemDrop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CaseItemDrop
	for _, d := range s.drops {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out
}

// UserAchievementsFor returns the achievement rows of a user, ordered by id
func (s *Store) UserAchievementsFor(userID uuid.UUID) []domain.UserAchievement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userAchievementsLocked(userID)
}

// DailyCounter returns a counter value for a reference date
func (s *Store) DailyCounter(userID uuid.UUID, day time.Time, key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dailyCounters[dailyKey{UserID: userID, Day: day.Format(time.DateOnly), Key: key}]
}

func (s *Store) userAchievementsLocked(userID uuid.UUID) []domain.UserAchievement {
	var out []domain.UserAchievement
	for k, ua := range s.userAchievements {
		if k.UserID == userID {
			out = append(out, ua)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out
}

// ---- repository.Case ----

func (s *Store) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[templateID]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &t, nil
}

func (s *Store) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	return &c, nil
}

func (s *Store) CreateCase(ctx context.Context, c *domain.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := s.templates[c.TemplateID]; !ok {
		return domain.ErrTemplateNotFound
	}
	c.CreatedAt = time.Now()
	s.cases[c.ID] = *c
	return nil
}

func (s *Store) BeginCaseTx(ctx context.Context) (repository.CaseTx, error) {
	return newCaseTx(s), nil
}

// ---- repository.Catalog ----

func (s *Store) GetDropRule(ctx context.Context, tier int) (*domain.DropRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.dropRules[tier]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) GetLevelSettings(ctx context.Context) ([]domain.LevelSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LevelSettings, len(s.levels))
	copy(out, s.levels)
	return out, nil
}

func (s *Store) GetAchievements(ctx context.Context) ([]domain.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out, nil
}
