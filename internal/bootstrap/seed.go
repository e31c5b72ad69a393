package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CaseDrop_Go/internal/database/memory"
	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// SeedConfig is the JSON catalog loaded into memory storage for local runs.
// In postgres mode the same data is maintained by administrative tooling.
type SeedConfig struct {
	Items        []domain.Item          `json:"items" validate:"dive"`
	Templates    []domain.CaseTemplate  `json:"templates" validate:"dive"`
	DropRules    []domain.DropRule      `json:"drop_rules"`
	Levels       []domain.LevelSettings `json:"levels" validate:"min=1"`
	Achievements []domain.Achievement   `json:"achievements"`
	Users        []domain.User          `json:"users"`
}

// LoadSeed reads and validates a seed file
func LoadSeed(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed SeedConfig
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}

	if err := validateSeed(&seed); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidSeed, err)
	}

	return &seed, nil
}

// validateSeed checks structure with validator tags and cross references by hand
func validateSeed(seed *SeedConfig) error {
	if err := validator.New().Struct(seed); err != nil {
		return err
	}

	items := make(map[int]struct{}, len(seed.Items))
	for _, it := range seed.Items {
		if _, dup := items[it.ID]; dup {
			return fmt.Errorf("duplicate item id %d", it.ID)
		}
		items[it.ID] = struct{}{}
	}

	for _, tmpl := range seed.Templates {
		for id, entry := range tmpl.ItemPool {
			if _, ok := items[id]; !ok {
				return fmt.Errorf("template %d references unknown item %d", tmpl.ID, id)
			}
			if entry.Weight < 0 {
				return fmt.Errorf("template %d item %d: %s", tmpl.ID, id, domain.ErrMsgInvalidPoolEntry)
			}
		}
	}

	return nil
}

// SeedMemoryStore loads path into store. A missing file leaves the store empty.
func SeedMemoryStore(path string, store *memory.Store) error {
	slog.Info(LogMsgSeedingCatalog, "path", path)

	seed, err := LoadSeed(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgSeedFileMissing, "path", path)
		return nil
	}
	if err != nil {
		return err
	}

	for _, it := range seed.Items {
		store.PutItem(it)
	}
	for _, tmpl := range seed.Templates {
		store.PutTemplate(tmpl)
	}
	for _, rule := range seed.DropRules {
		store.PutDropRule(rule)
	}
	store.PutLevelSettings(seed.Levels...)
	for _, a := range seed.Achievements {
		store.PutAchievement(a)
	}
	for _, u := range seed.Users {
		store.PutUser(u)
	}

	slog.Info(LogMsgCatalogSeeded,
		"items", len(seed.Items),
		"templates", len(seed.Templates),
		"users", len(seed.Users))
	return nil
}
