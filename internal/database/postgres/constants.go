package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeLockNotAvailable is raised when lock_timeout expires
	PgErrorCodeLockNotAvailable = "55P03"

	// PgErrorCodeDeadlockDetected is raised when the server breaks a lock cycle
	PgErrorCodeDeadlockDetected = "40P01"

	// PgErrorCodeSerializationFailure is raised on serialization conflicts
	PgErrorCodeSerializationFailure = "40001"

	// PgErrorCodeQueryCanceled is raised when statement_timeout expires
	PgErrorCodeQueryCanceled = "57014"
)

// Lock Statements
const (
	// SetLockTimeoutFormat cannot be parameterized; the value is an integer millisecond count
	SetLockTimeoutFormat = "SET LOCAL lock_timeout = '%dms'"

	// AdvisoryXactLockQuery takes a transaction-scoped advisory lock
	AdvisoryXactLockQuery = "SELECT pg_advisory_xact_lock($1)"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToSetLockTimeout    = "failed to set lock timeout"
)

// Error Messages - Read Operations
const (
	ErrMsgFailedToGetUser             = "failed to get user"
	ErrMsgFailedToGetTemplate         = "failed to get case template"
	ErrMsgFailedToGetCase             = "failed to get case"
	ErrMsgFailedToGetItems            = "failed to get items"
	ErrMsgFailedToGetOpenHistory      = "failed to get open history"
	ErrMsgFailedToGetDroppedItems     = "failed to get dropped items"
	ErrMsgFailedToGetDropSnapshots    = "failed to get drop snapshots"
	ErrMsgFailedToGetUserAchievements = "failed to get user achievements"
	ErrMsgFailedToGetDropRule         = "failed to get drop rule"
	ErrMsgFailedToGetLevelSettings    = "failed to get level settings"
	ErrMsgFailedToGetAchievements     = "failed to get achievements"
	ErrMsgFailedToScanRow             = "failed to scan row"
)

// Error Messages - Lock Operations
const (
	ErrMsgFailedToLockCase         = "failed to lock case"
	ErrMsgFailedToLockUser         = "failed to lock user"
	ErrMsgFailedToLockUserTemplate = "failed to lock user template"
)

// Error Messages - Write Operations
const (
	ErrMsgFailedToCreateCase          = "failed to create case"
	ErrMsgFailedToMarkCaseOpened      = "failed to mark case opened"
	ErrMsgFailedToInsertDrop          = "failed to insert case item drop"
	ErrMsgFailedToInsertInventory     = "failed to insert inventory"
	ErrMsgFailedToIncrementCounter    = "failed to increment daily counter"
	ErrMsgFailedToInsertXpTransaction = "failed to insert xp transaction"
	ErrMsgFailedToUpdateUserProgress  = "failed to update user progress"
	ErrMsgFailedToUpsertAchievements  = "failed to upsert user achievements"
)
