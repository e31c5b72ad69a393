package lootbox

// ============================================================================
// Bonus Caps
// ============================================================================

// MaxAchievementBonus caps the summed bonus of completed achievements, in percentage points.
const MaxAchievementBonus = 5.0

// MaxTotalBonus caps the combined tier, level and achievement bonus, in percentage points.
const MaxTotalBonus = 15.0

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPoolResolved       = "Item pool resolved"
	LogMsgDuplicateGuardLift = "Duplicate guard exhausted the pool, allowing duplicates for this draw"
	LogMsgItemSelected       = "Item selected"
)

// ============================================================================
// Log Fields
// ============================================================================

const (
	LogFieldTemplateID   = "template_id"
	LogFieldPoolSize     = "pool_size"
	LogFieldTotalWeight  = "total_weight"
	LogFieldItemID       = "item_id"
	LogFieldBonus        = "bonus_percentage"
	LogFieldPreviousSize = "previous_drops"
)
