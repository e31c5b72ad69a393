package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// CaseRepository implements repository.Case for PostgreSQL
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

// GetUser returns the user or domain.ErrUserNotFound
func (r *CaseRepository) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToGetUser, err, domain.ErrUserNotFound)
	}
	return u, nil
}

// GetTemplate returns the template or domain.ErrTemplateNotFound
func (r *CaseRepository) GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM case_templates WHERE template_id = $1`
	t, err := scanTemplate(r.db.QueryRow(ctx, query, templateID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToGetTemplate, err, domain.ErrTemplateNotFound)
	}
	return t, nil
}

// GetCase returns the case or domain.ErrCaseNotFound
func (r *CaseRepository) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE case_id = $1`
	c, err := scanCase(r.db.QueryRow(ctx, query, caseID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToGetCase, err, domain.ErrCaseNotFound)
	}
	return c, nil
}

// CreateCase inserts an issued case. CreatedAt is filled from the database.
func (r *CaseRepository) CreateCase(ctx context.Context, c *domain.Case) error {
	query := `
		INSERT INTO cases (case_id, user_id, template_id, is_opened, source)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query, c.ID, c.UserID, c.TemplateID, string(c.Source)).Scan(&c.CreatedAt); err != nil {
		return wrapErr(ErrMsgFailedToCreateCase, err)
	}
	return nil
}

// BeginCaseTx starts an opening transaction
func (r *CaseRepository) BeginCaseTx(ctx context.Context) (repository.CaseTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &caseTx{tx: tx}, nil
}
