package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultApplicationName tags sessions in pg_stat_activity
	DefaultApplicationName = "casedrop"

	// DefaultSSLMode is used when no sslmode is configured
	DefaultSSLMode = "disable"

	// ConnStringFormat is user, password, host, port, database, sslmode
	ConnStringFormat = "postgres://%s:%s@%s:%s/%s?sslmode=%s"

	// MigrationDialect is the goose dialect
	MigrationDialect = "postgres"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToMigrate          = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
