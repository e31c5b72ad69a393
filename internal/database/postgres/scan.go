package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

const userColumns = `user_id, username, subscription_tier, level, total_xp, total_cases_opened, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.SubscriptionTier, &u.Level, &u.TotalXP,
		&u.TotalCasesOpened, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

const templateColumns = `template_id, name, item_pool_config, cooldown_hours, max_opens_per_user,
	min_subscription_tier, price, guaranteed_min_value, is_active, available_from, available_until,
	prevent_duplicates, free_claim_limit, free_claim_window_days`

func scanTemplate(row pgx.Row) (*domain.CaseTemplate, error) {
	var t domain.CaseTemplate
	if err := row.Scan(&t.ID, &t.Name, &t.ItemPool, &t.CooldownHours, &t.MaxOpensPerUser,
		&t.MinSubscriptionTier, &t.Price, &t.GuaranteedMinValue, &t.IsActive, &t.AvailableFrom,
		&t.AvailableUntil, &t.PreventDuplicates, &t.FreeClaimLimit, &t.FreeClaimWindowDays); err != nil {
		return nil, err
	}
	return &t, nil
}

const caseColumns = `case_id, user_id, template_id, is_opened, opened_date, result_item_id,
	drop_bonus_applied, source, created_at`

func scanCase(row pgx.Row) (*domain.Case, error) {
	var (
		c      domain.Case
		source string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.TemplateID, &c.IsOpened, &c.OpenedAt, &c.ResultItemID,
		&c.DropBonusApplied, &source, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Source = domain.ParseDropSource(source)
	return &c, nil
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		it     domain.Item
		rarity string
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Price, &rarity, &it.IsAvailable); err != nil {
		return domain.Item{}, err
	}
	it.Rarity = domain.ParseRarity(rarity)
	return it, nil
}
