package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidCaseID         = "Invalid case ID"
	ErrMsgInvalidUserID         = "Invalid user ID"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgCaseNotFoundError     = "Case not found"
	ErrMsgTemplateNotFoundError = "Case template not found"

	ErrMsgAlreadyOpenedError     = "This case has already been opened"
	ErrMsgTemplateInactiveError  = "This case is no longer available"
	ErrMsgOutsideWindowError     = "This case is not available right now"
	ErrMsgTierTooLowError        = "Your subscription tier cannot open this case"
	ErrMsgCooldownError          = "This case is on cooldown. Try again later"
	ErrMsgQuotaExceededError     = "You have opened this case the maximum number of times"
	ErrMsgAllowanceForfeitedErr  = "Your free claims for this case have expired"
	ErrMsgBusyError              = "The case is busy. Please try again shortly"
	ErrMsgMisconfiguredError     = "This case cannot be opened right now"
	ErrMsgOutcomeApplyFailedErr  = "Opening could not be completed. Check the case before trying again"
	ErrMsgInvalidRequestError    = "Invalid request. Please check your inputs."
)

// Operation names used in logs
const (
	OpIssueCase = "Issue case"
	OpOpenCase  = "Open case"
	OpGetCase   = "Get case"
)

// Request fields
const (
	ParamCaseID = "caseID"
	ParamUserID = "user_id"
)

// Log messages
const (
	LogMsgServiceRejected = "Request rejected"
	LogMsgServiceBusy     = "Request hit a busy resource"
	LogMsgServiceFailed   = "Request failed"
	LogMsgOpenRetry       = "Retrying busy case open"
)

// BusyRetryAfterSeconds is the Retry-After hint sent with busy responses
const BusyRetryAfterSeconds = 1
