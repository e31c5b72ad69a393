package caseopen

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultLockTimeout bounds every lock wait inside an opening.
	DefaultLockTimeout = 3 * time.Second

	// DefaultOpenXP is the XP granted for each opened case.
	DefaultOpenXP int64 = 10
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgOpenCaseCalled    = "OpenCase called"
	LogMsgCaseOpened        = "Case opened"
	LogMsgOpenRejected      = "Case open rejected"
	LogMsgOpenBusy          = "Case open hit lock timeout"
	LogMsgOpenMisconfigured = "Case template cannot resolve a drop"
	LogMsgOpenFailed        = "Case open failed"
	LogMsgIssueCaseCalled   = "IssueCase called"
	LogMsgCaseIssued        = "Case issued"
	LogMsgLevelUp           = "User leveled up from case opening"

	LogMsgAchievementsCompleted = "User completed achievements from case opening"
)

// ============================================================================
// Log Fields
// ============================================================================

const (
	LogFieldUserID         = "user_id"
	LogFieldCaseID         = "case_id"
	LogFieldTemplateID     = "template_id"
	LogFieldItemID         = "item_id"
	LogFieldBonus          = "bonus_percentage"
	LogFieldKind           = "kind"
	LogFieldSource         = "source"
	LogFieldOldLevel       = "old_level"
	LogFieldNewLevel       = "new_level"
	LogFieldAchievementIDs = "achievement_ids"
	LogFieldError          = "error"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgBeginTx          = "failed to begin opening transaction"
	ErrMsgSetLockTimeout   = "failed to set lock timeout"
	ErrMsgLockCase         = "failed to lock case"
	ErrMsgLockUserTemplate = "failed to lock user template"
	ErrMsgLockUser         = "failed to lock user"
	ErrMsgGetTemplate      = "failed to get case template"
	ErrMsgGetOpenHistory   = "failed to get open history"
	ErrMsgGetItems         = "failed to get pool items"
	ErrMsgGetDropRule      = "failed to get drop rule"
	ErrMsgGetLevels        = "failed to get level settings"
	ErrMsgGetAchievements  = "failed to get achievements"
	ErrMsgGetUserProgress  = "failed to get user achievements"
	ErrMsgGetPrevious      = "failed to get previous drops"
	ErrMsgMarkOpened       = "failed to mark case opened"
	ErrMsgInsertDrop       = "failed to insert drop ledger row"
	ErrMsgInsertInventory  = "failed to insert inventory grant"
	ErrMsgIncrementCounter = "failed to increment daily counter"
	ErrMsgInsertXP         = "failed to insert xp transaction"
	ErrMsgUpdateUser       = "failed to update user progress"
	ErrMsgGetSnapshots     = "failed to get drop snapshots"
	ErrMsgUpsertProgress   = "failed to upsert achievement progress"
	ErrMsgCommit           = "failed to commit opening"
	ErrMsgCreateCase       = "failed to create case"
)
