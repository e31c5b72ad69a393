package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/osse101/CaseDrop_Go/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"gte=0,lte=65535"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	// Storage selects the repository backend
	Storage string `validate:"oneof=postgres memory"`

	// SeedPath is the catalog loaded into memory storage at startup
	SeedPath string

	DBUser        string `validate:"required_if=Storage postgres"`
	DBPassword    string
	DBHost        string `validate:"required_if=Storage postgres"`
	DBPort        string `validate:"required_if=Storage postgres"`
	DBName        string `validate:"required_if=Storage postgres"`
	DBMaxConns    int    `validate:"gt=0"`
	DBMaxConnIdle time.Duration
	DBMaxConnLife time.Duration

	// APIKey guards /api routes; empty disables the check outside production
	APIKey         string `validate:"required_if=Environment prod"`
	TrustedProxies []string
	RateLimit      int           `validate:"gt=0"`
	RateWindow     time.Duration `validate:"gt=0"`

	CaseLockTimeout     time.Duration `validate:"gt=0"`
	CaseOpenXP          int64         `validate:"gte=0"`
	CaseReferenceTZ     string        `validate:"timezone"`
	CaseDailyCutoffHour int           `validate:"gte=0,lte=23"`

	CatalogCacheTTL  time.Duration `validate:"gt=0"`
	CatalogCacheSize int           `validate:"gt=0"`

	EventWorkers        int `validate:"gt=0"`
	EventQueueSize      int `validate:"gt=0"`
	EventMaxRetries     int `validate:"gte=0"`
	EventRetryDelay     time.Duration
	EventDeadLetterPath string `validate:"required"`

	OpenRetryAttempts int `validate:"gte=1"`
	OpenRetryDelay    time.Duration
}

// Load loads the configuration from environment variables and validates it
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Storage:     strings.ToLower(getEnv("STORAGE", DefaultStorage)),
		SeedPath:    getEnv("SEED_PATH", DefaultSeedPath),

		DBUser:     getEnv("DB_USER", DefaultDBUser),
		DBPassword: getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:     getEnv("DB_HOST", DefaultDBHost),
		DBPort:     getEnv("DB_PORT", DefaultDBPort),
		DBName:     getEnv("DB_NAME", DefaultDBName),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		CaseReferenceTZ:     getEnv("CASE_REFERENCE_TZ", DefaultCaseReferenceTZ),
		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultEventDeadLetterPath),
	}

	var err error
	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"PORT", DefaultPort, &cfg.Port},
		{"DB_MAX_CONNS", DefaultDBMaxConns, &cfg.DBMaxConns},
		{"RATE_LIMIT", DefaultRateLimit, &cfg.RateLimit},
		{"CASE_DAILY_CUTOFF_HOUR", DefaultCaseDailyCutoffHour, &cfg.CaseDailyCutoffHour},
		{"CATALOG_CACHE_SIZE", DefaultCatalogCacheSize, &cfg.CatalogCacheSize},
		{"EVENT_WORKERS", DefaultEventWorkers, &cfg.EventWorkers},
		{"EVENT_QUEUE_SIZE", DefaultEventQueueSize, &cfg.EventQueueSize},
		{"EVENT_MAX_RETRIES", DefaultEventMaxRetries, &cfg.EventMaxRetries},
		{"OPEN_RETRY_ATTEMPTS", DefaultOpenRetryAttempts, &cfg.OpenRetryAttempts},
	}
	for _, v := range ints {
		if *v.dest, err = parseEnvInt(v.key, v.def); err != nil {
			return nil, err
		}
	}

	openXP, err := parseEnvInt("CASE_OPEN_XP", DefaultCaseOpenXP)
	if err != nil {
		return nil, err
	}
	cfg.CaseOpenXP = int64(openXP)

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle, &cfg.DBMaxConnIdle},
		{"DB_MAX_CONN_LIFE", DefaultDBMaxConnLife, &cfg.DBMaxConnLife},
		{"RATE_WINDOW", DefaultRateWindow, &cfg.RateWindow},
		{"CASE_LOCK_TIMEOUT", DefaultCaseLockTimeout, &cfg.CaseLockTimeout},
		{"CATALOG_CACHE_TTL", DefaultCatalogCacheTTL, &cfg.CatalogCacheTTL},
		{"EVENT_RETRY_DELAY", DefaultEventRetryDelay, &cfg.EventRetryDelay},
		{"OPEN_RETRY_DELAY", DefaultOpenRetryDelay, &cfg.OpenRetryDelay},
	}
	for _, v := range durations {
		if *v.dest, err = parseEnvDuration(v.key, v.def); err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, "")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseEnvInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidInt, key, raw, err)
	}
	return v, nil
}

func parseEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidDuration, key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}
