package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseDrop_Go/internal/config"
	"github.com/osse101/CaseDrop_Go/internal/database/memory"
	"github.com/osse101/CaseDrop_Go/internal/event"
)

const seedFile = "../../configs/seed.json"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:            "debug",
		LogFormat:           "json",
		Environment:         "test",
		ServiceName:         "casedrop",
		Storage:             config.StorageMemory,
		SeedPath:            seedFile,
		CatalogCacheSize:    16,
		CatalogCacheTTL:     time.Minute,
		EventWorkers:        2,
		EventQueueSize:      8,
		EventMaxRetries:     1,
		EventRetryDelay:     time.Millisecond,
		EventDeadLetterPath: filepath.Join(t.TempDir(), "dl", "events.jsonl"),
	}
}

func TestLoadSeed_RepositoryFile(t *testing.T) {
	seed, err := LoadSeed(seedFile)
	require.NoError(t, err)

	assert.NotEmpty(t, seed.Items)
	assert.NotEmpty(t, seed.Templates)
	assert.NotEmpty(t, seed.Levels)
	for _, tmpl := range seed.Templates {
		assert.NotEmpty(t, tmpl.ItemPool, tmpl.Name)
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"malformed json", `{"items": [`, ErrMsgFailedLoadSeed},
		{"no levels", `{"items": [], "levels": []}`, ErrMsgInvalidSeed},
		{"duplicate item", `{"items": [{"item_id": 1}, {"item_id": 1}], "levels": [{"level": 1}]}`, "duplicate item id 1"},
		{"unknown pool item", `{"items": [{"item_id": 1}], "templates": [{"template_id": 9, "item_pool_config": {"2": {"weight": 1}}}], "levels": [{"level": 1}]}`, "unknown item 2"},
		{"negative weight", `{"items": [{"item_id": 1}], "templates": [{"template_id": 9, "item_pool_config": {"1": {"weight": -1}}}], "levels": [{"level": 1}]}`, "template 9 item 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := LoadSeed(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSeedMemoryStore(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, SeedMemoryStore(seedFile, store))

	ctx := context.Background()
	tmpl, err := store.GetTemplate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Premium Case", tmpl.Name)
	assert.Equal(t, 0.5, tmpl.CooldownHours)

	user, err := store.GetUser(ctx, uuid.MustParse("0b6c6f0e-9f0c-4c61-9a51-2f1c4f6c0002"))
	require.NoError(t, err)
	assert.Equal(t, 2, user.SubscriptionTier)

	levels, err := store.GetLevelSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, levels, 5)
}

func TestSeedMemoryStore_MissingFileIsEmpty(t *testing.T) {
	store := memory.NewStore()
	assert.NoError(t, SeedMemoryStore(filepath.Join(t.TempDir(), "absent.json"), store))
}

func TestInitializeStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		storage, err := InitializeStorage(context.Background(), testConfig(t))
		require.NoError(t, err)
		defer storage.Close()

		assert.NoError(t, storage.Pinger.Ping(context.Background()))
		rule, err := storage.Catalog.GetDropRule(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, 5.0, rule.PremiumItemBonus)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Storage = "sqlite"
		_, err := InitializeStorage(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})
}

func TestEventSystem_DeliversAndShutsDown(t *testing.T) {
	cfg := testConfig(t)
	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NoError(t, RegisterEventHandlers(events.Bus))

	received := make(chan event.Event, 1)
	events.Bus.Subscribe(event.CaseOpened, func(_ context.Context, evt event.Event) error {
		received <- evt
		return nil
	})

	events.Dispatcher.Dispatch(context.Background(), event.NewCaseOpenedEvent(event.CaseOpenedPayloadV1{
		CaseID:         uuid.New(),
		UserID:         uuid.New(),
		ItemID:         4,
		CaseTemplateID: 1,
	}))

	select {
	case evt := <-received:
		assert.Equal(t, event.CaseOpened, evt.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	GracefulShutdown(ctx, ShutdownComponents{Events: events})

	_, err = os.Stat(filepath.Dir(cfg.EventDeadLetterPath))
	assert.NoError(t, err)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	SetupLogger(cfg, &buf)

	out := buf.String()
	assert.Contains(t, out, LogMsgStartingService)
	assert.Contains(t, out, `"service":"casedrop"`)
	assert.Contains(t, out, "STORAGE=memory")
}
