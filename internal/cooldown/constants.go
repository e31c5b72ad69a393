package cooldown

// =============================================================================
// Allowance Defaults
// =============================================================================

const (
	// DefaultReferenceTimezone is the timezone the daily claim cutoff is evaluated in
	DefaultReferenceTimezone = "Europe/Moscow"

	// DefaultDailyCutoffHour is the local hour at which the next free claim unlocks
	DefaultDailyCutoffHour = 16

	// afterCutoffDayShift is how many calendar days a first claim made at or after
	// the cutoff pushes the second claim back
	afterCutoffDayShift = 2
)

// =============================================================================
// Hash Constants
// =============================================================================

const (
	// HashSeparator is the separator used when combining userID and templateID for advisory lock hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 is the bit mask to ensure advisory lock keys are positive int64 values
	// This masks the MSB to avoid overflow warnings and ensure PostgreSQL compatibility
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	// LockKeyPrefix namespaces (user, template) lock names
	LockKeyPrefix = "case-template"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	// ErrMsgLoadTimezoneFailed is returned when the reference timezone cannot be loaded
	ErrMsgLoadTimezoneFailed = "failed to load reference timezone %q: %w"

	// ErrMsgInvalidCutoffHour is returned when the cutoff hour is outside 0-23
	ErrMsgInvalidCutoffHour = "daily cutoff hour must be between 0 and 23, got %d"

	// ErrMsgQuotaReachedFormat describes an exhausted allowance
	ErrMsgQuotaReachedFormat = "%w: %d of %d free claims used"

	// ErrMsgForfeitedFormat describes a forfeited allowance
	ErrMsgForfeitedFormat = "%w: %d days since first claim, window is %d"
)
