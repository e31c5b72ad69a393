package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Not found errors
	ErrMsgUserNotFound     = "user not found"
	ErrMsgCaseNotFound     = "case not found"
	ErrMsgTemplateNotFound = "case template not found"
	ErrMsgItemNotFound     = "item not found"

	// Configuration errors
	ErrMsgEmptyPool        = "item pool is empty"
	ErrMsgPoolBelowFloor   = "every available item is priced below the guaranteed minimum value"
	ErrMsgNoEligibleItems  = "no eligible items: total weight is not positive"
	ErrMsgInvalidPoolEntry = "invalid item pool entry"

	// Eligibility errors
	ErrMsgAlreadyOpened             = "case already opened"
	ErrMsgTemplateInactive          = "case template is inactive"
	ErrMsgTierTooLow                = "subscription tier too low"
	ErrMsgCooldownActive            = "case is on cooldown"
	ErrMsgQuotaExceeded             = "open quota exceeded"
	ErrMsgAllowanceForfeited        = "free claim allowance forfeited"
	ErrMsgOutsideAvailabilityWindow = "case template is outside its availability window"

	// Concurrency errors
	ErrMsgBusy = "resource busy, retry later"

	// Persistence errors
	ErrMsgOutcomeApplyFailed = "failed to apply case outcome"
	ErrMsgTxClosed           = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)
	ErrCaseNotFound     = errors.New(ErrMsgCaseNotFound)
	ErrTemplateNotFound = errors.New(ErrMsgTemplateNotFound)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)

	ErrEmptyPool       = errors.New(ErrMsgEmptyPool)
	ErrPoolBelowFloor  = errors.New(ErrMsgPoolBelowFloor)
	ErrNoEligibleItems = errors.New(ErrMsgNoEligibleItems)

	ErrAlreadyOpened             = errors.New(ErrMsgAlreadyOpened)
	ErrTemplateInactive          = errors.New(ErrMsgTemplateInactive)
	ErrTierTooLow                = errors.New(ErrMsgTierTooLow)
	ErrCooldownActive            = errors.New(ErrMsgCooldownActive)
	ErrQuotaExceeded             = errors.New(ErrMsgQuotaExceeded)
	ErrAllowanceForfeited        = fmt.Errorf("%w: %s", ErrQuotaExceeded, ErrMsgAllowanceForfeited)
	ErrOutsideAvailabilityWindow = errors.New(ErrMsgOutsideAvailabilityWindow)

	ErrBusy = errors.New(ErrMsgBusy)

	ErrOutcomeApplyFailed = errors.New(ErrMsgOutcomeApplyFailed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// CooldownActiveError is returned while a user must wait before opening another
// case of the same template.
type CooldownActiveError struct {
	TemplateID     int
	NextEligibleAt time.Time
}

func (e CooldownActiveError) Error() string {
	return fmt.Sprintf("%s: template %d eligible again at %s", ErrMsgCooldownActive, e.TemplateID, e.NextEligibleAt.UTC().Format(time.RFC3339))
}

// Is allows errors.Is(err, ErrCooldownActive) to match
func (e CooldownActiveError) Is(target error) bool {
	if target == ErrCooldownActive {
		return true
	}
	_, ok := target.(CooldownActiveError)
	return ok
}

// ErrorKind groups errors by how a caller should react to them.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindConfiguration ErrorKind = "configuration"
	KindEligibility   ErrorKind = "eligibility"
	KindConcurrency   ErrorKind = "concurrency"
	KindPersistence   ErrorKind = "persistence"
	KindNotFound      ErrorKind = "not_found"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindInternal      ErrorKind = "internal"
)

// KindOf classifies an error returned by the case engine.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyPool), errors.Is(err, ErrPoolBelowFloor), errors.Is(err, ErrNoEligibleItems):
		return KindConfiguration
	case errors.Is(err, ErrAlreadyOpened), errors.Is(err, ErrTemplateInactive), errors.Is(err, ErrTierTooLow),
		errors.Is(err, ErrCooldownActive), errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrOutsideAvailabilityWindow):
		return KindEligibility
	case errors.Is(err, ErrBusy):
		return KindConcurrency
	case errors.Is(err, ErrOutcomeApplyFailed):
		return KindPersistence
	case errors.Is(err, ErrCaseNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrItemNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// IsRetryable reports whether the caller may retry the same request unchanged.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindConcurrency, KindPersistence:
		return true
	default:
		return false
	}
}
