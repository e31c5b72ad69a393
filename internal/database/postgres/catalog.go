package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetDropRule returns the rule for a tier, or nil when the tier has none
func (r *CatalogRepository) GetDropRule(ctx context.Context, tier int) (*domain.DropRule, error) {
	query := `
		SELECT subscription_tier, premium_item_bonus, premium_price_threshold, prevent_duplicates, rarity_multipliers
		FROM drop_rules
		WHERE subscription_tier = $1
	`
	var rule domain.DropRule
	err := r.db.QueryRow(ctx, query, tier).Scan(&rule.SubscriptionTier, &rule.PremiumItemBonus,
		&rule.PremiumPriceThreshold, &rule.PreventDuplicates, &rule.RarityMultipliers)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetDropRule, err)
	}
	return &rule, nil
}

func (r *CatalogRepository) GetLevelSettings(ctx context.Context) ([]domain.LevelSettings, error) {
	query := `SELECT level, xp_required, bonus_percentage FROM level_settings ORDER BY xp_required, level`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetLevelSettings, err)
	}
	settings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.LevelSettings])
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetLevelSettings, err)
	}
	return settings, nil
}

func (r *CatalogRepository) GetAchievements(ctx context.Context) ([]domain.Achievement, error) {
	query := `
		SELECT achievement_id, achievement_key, name, metric, target, bonus_percentage,
			min_item_price_for_bonus, min_rarity
		FROM achievements
		ORDER BY achievement_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetAchievements, err)
	}
	defer rows.Close()

	var out []domain.Achievement
	for rows.Next() {
		var (
			a         domain.Achievement
			metric    string
			minRarity *string
		)
		if err := rows.Scan(&a.ID, &a.Key, &a.Name, &metric, &a.Target, &a.BonusPercentage,
			&a.MinItemPriceForBonus, &minRarity); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		a.Metric = domain.ParseAchievementMetric(metric)
		if minRarity != nil {
			rarity := domain.ParseRarity(derefString(minRarity))
			a.MinRarity = &rarity
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToGetAchievements, err)
	}
	return out, nil
}
