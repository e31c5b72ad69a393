package caseopen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/cooldown"
	"github.com/osse101/CaseDrop_Go/internal/database/memory"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/lootbox"
	"github.com/osse101/CaseDrop_Go/internal/repository"
	"github.com/osse101/CaseDrop_Go/internal/utils"
)

const testTemplateID = 1

var msk = time.FixedZone("MSK", 3*60*60)

// recordingDispatcher captures dispatched events
type recordingDispatcher struct {
	mu     sync.Mutex
	events []event.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, evt event.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, evt)
}

func (d *recordingDispatcher) Events() []event.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]event.Event, len(d.events))
	copy(out, d.events)
	return out
}

type fixture struct {
	store      *memory.Store
	svc        *service
	dispatcher *recordingDispatcher
	user       domain.User
	now        time.Time
}

// testItems: 1 cheap consumer, 2 mid restricted, 3 premium covert
func testItems() []domain.Item {
	return []domain.Item{
		{ID: 1, Name: "P250 | Sand Dune", Price: 5, Rarity: domain.RarityConsumer, IsAvailable: true},
		{ID: 2, Name: "AK-47 | Redline", Price: 50, Rarity: domain.RarityRestricted, IsAvailable: true},
		{ID: 3, Name: "AWP | Asiimov", Price: 200, Rarity: domain.RarityCovert, IsAvailable: true},
	}
}

func testTemplate() domain.CaseTemplate {
	return domain.CaseTemplate{
		ID:   testTemplateID,
		Name: "Weapon Case",
		ItemPool: domain.ItemPoolConfig{
			1: {Weight: 10},
			2: {Weight: 5},
			3: {Weight: 1},
		},
		IsActive: true,
	}
}

// newFixture seeds one user and the test template. rnd 0 always selects the
// lowest eligible item id.
func newFixture(t *testing.T, tmpl domain.CaseTemplate) *fixture {
	t.Helper()

	store := memory.NewStore()
	user := domain.User{ID: uuid.New(), Username: "alice", Level: 1}
	store.PutUser(user)
	for _, it := range testItems() {
		store.PutItem(it)
	}
	store.PutTemplate(tmpl)
	store.PutLevelSettings(
		domain.LevelSettings{Level: 1, XPRequired: 0},
		domain.LevelSettings{Level: 2, XPRequired: 20, BonusPercentage: 2},
	)

	return newFixtureWith(t, store, store, user)
}

func newFixtureWith(t *testing.T, repo repository.Case, store *memory.Store, user domain.User) *fixture {
	t.Helper()

	dispatcher := &recordingDispatcher{}
	cfg := Config{
		LockTimeout: 5 * time.Second,
		OpenXP:      10,
		Cooldown:    cooldown.Config{Location: msk, CutoffHour: 16},
	}
	svc := NewService(repo, store, lootbox.NewServiceWithRandom(utils.FixedRandom(0)), dispatcher, cfg).(*service)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, msk)
	f := &fixture{store: store, svc: svc, dispatcher: dispatcher, user: user, now: now}
	svc.now = func() time.Time { return f.now }
	return f
}

// issue creates an unopened case for the fixture user
func (f *fixture) issue(t *testing.T) uuid.UUID {
	t.Helper()
	c, err := f.svc.IssueCase(context.Background(), f.user.ID, testTemplateID, domain.SourceSubscription)
	require.NoError(t, err)
	return c.ID
}

// seedOpened records a case of the template already opened at openedAt
func (f *fixture) seedOpened(t *testing.T, openedAt time.Time) {
	t.Helper()
	itemID := 1
	require.NoError(t, f.store.CreateCase(context.Background(), &domain.Case{
		ID:           uuid.New(),
		UserID:       f.user.ID,
		TemplateID:   testTemplateID,
		IsOpened:     true,
		OpenedAt:     &openedAt,
		ResultItemID: &itemID,
		Source:       domain.SourceSubscription,
	}))
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(v float64) *float64 { return &v }
