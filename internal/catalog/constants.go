package catalog

import "time"

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Cache keys
const (
	keyDropRulePrefix = "drop_rule:"
	keyLevelSettings  = "level_settings"
	keyAchievements   = "achievements"
)
