package config

import "time"

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Defaults applied when a variable is unset
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "casedrop"
	DefaultVersion     = "dev"
	DefaultStorage     = StoragePostgres
	DefaultSeedPath    = "configs/seed.json"

	DefaultDBUser        = "postgres"
	DefaultDBPassword    = "postgres"
	DefaultDBHost        = "localhost"
	DefaultDBPort        = "5432"
	DefaultDBName        = "casedrop"
	DefaultDBMaxConns    = 20
	DefaultDBMaxConnIdle = 5 * time.Minute
	DefaultDBMaxConnLife = time.Hour

	DefaultRateLimit  = 1000
	DefaultRateWindow = 5 * time.Minute

	DefaultCaseLockTimeout     = 3 * time.Second
	DefaultCaseOpenXP          = 10
	DefaultCaseReferenceTZ     = "Europe/Moscow"
	DefaultCaseDailyCutoffHour = 16

	DefaultCatalogCacheTTL  = 5 * time.Minute
	DefaultCatalogCacheSize = 256

	DefaultEventWorkers        = 4
	DefaultEventQueueSize      = 1024
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultOpenRetryAttempts = 3
	DefaultOpenRetryDelay    = 50 * time.Millisecond
)

// Values from the example .env that must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Error messages
const (
	ErrMsgInvalidInt      = "invalid %s value %q: %w"
	ErrMsgInvalidDuration = "invalid %s duration %q: %w"
	ErrMsgInvalidConfig   = "invalid configuration"
)
