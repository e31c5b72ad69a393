package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error          string     `json:"error"`
	Kind           string     `json:"kind,omitempty"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err at a level matching its kind and writes the
// mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	kind := domain.KindOf(err)

	switch kind {
	case domain.KindEligibility, domain.KindNotFound, domain.KindInvalidInput:
		log.Debug(LogMsgServiceRejected, "op", opName, "kind", kind, "error", err)
	case domain.KindConcurrency:
		log.Warn(LogMsgServiceBusy, "op", opName, "error", err)
	default:
		log.Error(LogMsgServiceFailed, "op", opName, "kind", kind, "error", err)
	}

	status, resp := mapServiceError(err)
	switch {
	case status == http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", strconv.Itoa(BusyRetryAfterSeconds))
	case resp.NextEligibleAt != nil:
		wait := math.Ceil(time.Until(*resp.NextEligibleAt).Seconds())
		if wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait)))
		}
	}
	respondJSON(w, status, resp)
}

// mapServiceError converts a case engine error to an HTTP status and a
// user-facing body
func mapServiceError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError}
	}

	resp := ErrorResponse{Kind: string(domain.KindOf(err))}

	var cooldownErr domain.CooldownActiveError
	switch {
	case errors.As(err, &cooldownErr):
		next := cooldownErr.NextEligibleAt.UTC()
		resp.Error = ErrMsgCooldownError
		resp.NextEligibleAt = &next
		return http.StatusTooManyRequests, resp
	case errors.Is(err, domain.ErrInvalidInput):
		resp.Error = ErrMsgInvalidRequestError
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrCaseNotFound):
		resp.Error = ErrMsgCaseNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrUserNotFound):
		resp.Error = ErrMsgUserNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrTemplateNotFound):
		resp.Error = ErrMsgTemplateNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrAlreadyOpened):
		resp.Error = ErrMsgAlreadyOpenedError
		return http.StatusConflict, resp
	case errors.Is(err, domain.ErrTemplateInactive):
		resp.Error = ErrMsgTemplateInactiveError
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrOutsideAvailabilityWindow):
		resp.Error = ErrMsgOutsideWindowError
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrTierTooLow):
		resp.Error = ErrMsgTierTooLowError
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrAllowanceForfeited):
		resp.Error = ErrMsgAllowanceForfeitedErr
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrQuotaExceeded):
		resp.Error = ErrMsgQuotaExceededError
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrBusy):
		resp.Error = ErrMsgBusyError
		return http.StatusServiceUnavailable, resp
	case errors.Is(err, domain.ErrOutcomeApplyFailed):
		resp.Error = ErrMsgOutcomeApplyFailedErr
		return http.StatusInternalServerError, resp
	case domain.KindOf(err) == domain.KindConfiguration:
		resp.Error = ErrMsgMisconfiguredError
		return http.StatusInternalServerError, resp
	}

	resp.Error = ErrMsgGenericServerError
	return http.StatusInternalServerError, resp
}
