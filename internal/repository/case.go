package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Case defines the interface for case persistence
type Case interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
	CreateCase(ctx context.Context, c *domain.Case) error

	BeginCaseTx(ctx context.Context) (CaseTx, error)
}

// Catalog defines the read contract for administrator-maintained configuration
type Catalog interface {
	// GetDropRule returns nil, nil when the tier has no rule.
	GetDropRule(ctx context.Context, tier int) (*domain.DropRule, error)
	GetLevelSettings(ctx context.Context) ([]domain.LevelSettings, error)
	GetAchievements(ctx context.Context) ([]domain.Achievement, error)
}
