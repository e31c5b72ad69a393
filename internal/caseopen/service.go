// Package caseopen drives the case lifecycle: issuing cases, checking
// eligibility and applying the outcome of an opening in one transaction.
package caseopen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/cooldown"
	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/logger"
	"github.com/osse101/CaseDrop_Go/internal/lootbox"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// Service defines the case lifecycle operations
type Service interface {
	// OpenCase opens an issued case exactly once. When it returns a
	// persistence or context error the caller must re-query with GetCase
	// before retrying: the opening may still have committed.
	OpenCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.OpenResult, error)
	IssueCase(ctx context.Context, userID uuid.UUID, templateID int, source domain.DropSource) (*domain.Case, error)
	GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error)
}

// Dispatcher delivers events after commit without blocking the caller
type Dispatcher interface {
	Dispatch(ctx context.Context, evt event.Event)
}

// Config holds the tunables of the lifecycle
type Config struct {
	LockTimeout time.Duration
	OpenXP      int64
	Cooldown    cooldown.Config
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		LockTimeout: DefaultLockTimeout,
		OpenXP:      DefaultOpenXP,
		Cooldown:    cooldown.DefaultConfig(),
	}
}

type service struct {
	repo       repository.Case
	catalog    repository.Catalog
	draws      lootbox.Service
	policy     *cooldown.Policy
	dispatcher Dispatcher
	cfg        Config
	now        func() time.Time
}

// NewService creates a new case lifecycle service. dispatcher may be nil.
func NewService(repo repository.Case, catalog repository.Catalog, draws lootbox.Service, dispatcher Dispatcher, cfg Config) Service {
	return &service{
		repo:       repo,
		catalog:    catalog,
		draws:      draws,
		policy:     cooldown.NewPolicy(cfg.Cooldown),
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *service) IssueCase(ctx context.Context, userID uuid.UUID, templateID int, source domain.DropSource) (*domain.Case, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgIssueCaseCalled, LogFieldUserID, userID, LogFieldTemplateID, templateID, LogFieldSource, source)

	if userID == uuid.Nil || templateID <= 0 {
		return nil, fmt.Errorf("%w: user id and template id are required", domain.ErrInvalidInput)
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	c := &domain.Case{
		ID:         uuid.New(),
		UserID:     userID,
		TemplateID: templateID,
		Source:     domain.ParseDropSource(string(source)),
	}
	if err := s.repo.CreateCase(ctx, c); err != nil {
		log.Error(ErrMsgCreateCase, LogFieldError, err)
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateCase, err)
	}

	log.Info(LogMsgCaseIssued, LogFieldCaseID, c.ID, LogFieldTemplateID, templateID)
	s.dispatch(ctx, event.NewCaseIssuedEvent(event.CaseIssuedPayloadV1{
		CaseID:         c.ID,
		UserID:         c.UserID,
		CaseTemplateID: c.TemplateID,
		Source:         string(c.Source),
	}))
	return c, nil
}

// GetCase returns the case if it belongs to userID. A case owned by someone
// else is reported as not found.
func (s *service) GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error) {
	if userID == uuid.Nil || caseID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and case id are required", domain.ErrInvalidInput)
	}
	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrCaseNotFound
	}
	return c, nil
}

func (s *service) dispatch(ctx context.Context, evt event.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(ctx, evt)
}
