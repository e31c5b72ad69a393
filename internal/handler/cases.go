package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/caseopen"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// CaseHandler serves the case lifecycle endpoints
type CaseHandler struct {
	service       caseopen.Service
	retryAttempts uint
	retryDelay    time.Duration
}

// NewCaseHandler creates a case handler. Busy opens are retried up to
// attempts times in total with exponential backoff starting at delay.
func NewCaseHandler(service caseopen.Service, attempts int, delay time.Duration) *CaseHandler {
	if attempts < 1 {
		attempts = 1
	}
	return &CaseHandler{
		service:       service,
		retryAttempts: uint(attempts),
		retryDelay:    delay,
	}
}

// IssueCaseRequest is the body of POST /cases/issue
type IssueCaseRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	TemplateID int    `json:"template_id" validate:"gt=0"`
	Source     string `json:"source" validate:"dropsource"`
}

// OpenCaseRequest is the body of POST /cases/{caseID}/open
type OpenCaseRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// HandleIssueCase issues a new case to a user
// @Summary Issue a case
// @Description Creates an unopened case of a template for a user
// @Tags cases
// @Accept json
// @Produce json
// @Param request body IssueCaseRequest true "Issue request"
// @Success 201 {object} domain.Case
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cases/issue [post]
func (h *CaseHandler) HandleIssueCase(w http.ResponseWriter, r *http.Request) {
	var req IssueCaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpIssueCase); err != nil {
		return
	}

	c, err := h.service.IssueCase(r.Context(), uuid.MustParse(req.UserID), req.TemplateID, domain.DropSource(req.Source))
	if err != nil {
		respondServiceError(w, r, OpIssueCase, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// HandleOpenCase opens an issued case
// @Summary Open a case
// @Description Opens the case exactly once and returns the dropped item. A 500 response means the outcome is unknown: re-query the case before retrying.
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param request body OpenCaseRequest true "Open request"
// @Success 200 {object} domain.OpenResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/cases/{caseID}/open [post]
func (h *CaseHandler) HandleOpenCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := getUUIDParam(r, w, ParamCaseID, ErrMsgInvalidCaseID)
	if !ok {
		return
	}

	var req OpenCaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpOpenCase); err != nil {
		return
	}
	userID := uuid.MustParse(req.UserID)

	result, err := h.openWithRetry(r.Context(), userID, caseID)
	if err != nil {
		respondServiceError(w, r, OpOpenCase, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// openWithRetry retries only lock timeouts. Every other error, persistence
// failures included, goes back to the client, which must re-query first.
func (h *CaseHandler) openWithRetry(ctx context.Context, userID, caseID uuid.UUID) (*domain.OpenResult, error) {
	log := logger.FromContext(ctx)

	var result *domain.OpenResult
	err := retry.Do(
		func() error {
			var err error
			result, err = h.service.OpenCase(ctx, userID, caseID)
			return err
		},
		retry.Attempts(h.retryAttempts),
		retry.Delay(h.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, domain.ErrBusy)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debug(LogMsgOpenRetry, "attempt", n+1, "case_id", caseID, "error", err)
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HandleGetCase returns the state of a case
// @Summary Get a case
// @Description Returns the case if it belongs to the user. Use it to check the outcome of an open that timed out.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Param user_id query string true "Owner user ID"
// @Success 200 {object} domain.Case
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cases/{caseID} [get]
func (h *CaseHandler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := getUUIDParam(r, w, ParamCaseID, ErrMsgInvalidCaseID)
	if !ok {
		return
	}
	rawUserID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
		return
	}

	c, err := h.service.GetCase(r.Context(), userID, caseID)
	if err != nil {
		respondServiceError(w, r, OpGetCase, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}
