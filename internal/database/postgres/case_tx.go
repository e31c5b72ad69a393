package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/CaseDrop_Go/internal/cooldown"
	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// caseTx implements repository.CaseTx over a pgx transaction
type caseTx struct {
	tx pgx.Tx
}

func (t *caseTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *caseTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// SetLockTimeout applies lock_timeout for the rest of the transaction
func (t *caseTx) SetLockTimeout(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	ms := d.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	if _, err := t.tx.Exec(ctx, fmt.Sprintf(SetLockTimeoutFormat, ms)); err != nil {
		return wrapErr(ErrMsgFailedToSetLockTimeout, err)
	}
	return nil
}

// LockCase takes a row lock on the case
func (t *caseTx) LockCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE case_id = $1 FOR UPDATE`
	c, err := scanCase(t.tx.QueryRow(ctx, query, caseID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToLockCase, err, domain.ErrCaseNotFound)
	}
	return c, nil
}

// LockUserTemplate takes a transaction-scoped advisory lock on the (user, template) key
func (t *caseTx) LockUserTemplate(ctx context.Context, userID uuid.UUID, templateID int) error {
	if _, err := t.tx.Exec(ctx, AdvisoryXactLockQuery, cooldown.LockKey(userID, templateID)); err != nil {
		return wrapErr(ErrMsgFailedToLockUserTemplate, err)
	}
	return nil
}

// LockUser takes a row lock on the user
func (t *caseTx) LockUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`
	u, err := scanUser(t.tx.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToLockUser, err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (t *caseTx) GetTemplate(ctx context.Context, templateID int) (*domain.CaseTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM case_templates WHERE template_id = $1`
	tmpl, err := scanTemplate(t.tx.QueryRow(ctx, query, templateID))
	if err != nil {
		return nil, notFound(ErrMsgFailedToGetTemplate, err, domain.ErrTemplateNotFound)
	}
	return tmpl, nil
}

// GetOpenHistory summarizes opened cases of the template for the user
func (t *caseTx) GetOpenHistory(ctx context.Context, userID uuid.UUID, templateID int) (domain.OpenHistory, error) {
	query := `
		SELECT COUNT(*), MIN(opened_date), MAX(opened_date)
		FROM cases
		WHERE user_id = $1 AND template_id = $2 AND is_opened
	`
	var h domain.OpenHistory
	if err := t.tx.QueryRow(ctx, query, userID, templateID).Scan(&h.Opens, &h.FirstOpenedAt, &h.LastOpenedAt); err != nil {
		return domain.OpenHistory{}, wrapErr(ErrMsgFailedToGetOpenHistory, err)
	}
	return h, nil
}

// GetItems returns the catalog records for ids, keyed by id. Missing ids are absent.
func (t *caseTx) GetItems(ctx context.Context, itemIDs []int) (map[int]domain.Item, error) {
	items := make(map[int]domain.Item, len(itemIDs))
	if len(itemIDs) == 0 {
		return items, nil
	}

	query := `SELECT item_id, name, price, rarity, is_available FROM items WHERE item_id = ANY($1)`
	rows, err := t.tx.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetItems, err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		items[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToGetItems, err)
	}
	return items, nil
}

func (t *caseTx) GetUserAchievements(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	query := `
		SELECT user_id, achievement_id, progress, is_completed, completed_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY achievement_id
	`
	rows, err := t.tx.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetUserAchievements, err)
	}
	defer rows.Close()

	var out []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.Progress, &ua.IsCompleted, &ua.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToGetUserAchievements, err)
	}
	return out, nil
}

// GetDroppedItemIDs returns the distinct items previously dropped to the user from the template
func (t *caseTx) GetDroppedItemIDs(ctx context.Context, userID uuid.UUID, templateID int) ([]int, error) {
	query := `
		SELECT DISTINCT item_id
		FROM case_item_drops
		WHERE user_id = $1 AND template_id = $2
		ORDER BY item_id
	`
	rows, err := t.tx.Query(ctx, query, userID, templateID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetDroppedItems, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetDroppedItems, err)
	}
	return ids, nil
}

// GetDropSnapshots returns every drop ledger row of the user
func (t *caseTx) GetDropSnapshots(ctx context.Context, userID uuid.UUID) ([]domain.CaseItemDrop, error) {
	query := `
		SELECT drop_id, user_id, template_id, item_id, case_id, item_price, item_rarity, dropped_at
		FROM case_item_drops
		WHERE user_id = $1
		ORDER BY dropped_at
	`
	rows, err := t.tx.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetDropSnapshots, err)
	}
	defer rows.Close()

	var out []domain.CaseItemDrop
	for rows.Next() {
		var (
			d      domain.CaseItemDrop
			rarity string
		)
		if err := rows.Scan(&d.ID, &d.UserID, &d.TemplateID, &d.ItemID, &d.CaseID, &d.ItemPrice, &rarity, &d.DroppedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		d.ItemRarity = domain.ParseRarity(rarity)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToGetDropSnapshots, err)
	}
	return out, nil
}

// MarkCaseOpened flips is_opened only while it is still false
func (t *caseTx) MarkCaseOpened(ctx context.Context, caseID uuid.UUID, itemID int, bonus float64, openedAt time.Time) (int64, error) {
	query := `
		UPDATE cases
		SET is_opened = TRUE, opened_date = $2, result_item_id = $3, drop_bonus_applied = $4
		WHERE case_id = $1 AND is_opened = FALSE
	`
	tag, err := t.tx.Exec(ctx, query, caseID, openedAt, itemID, bonus)
	if err != nil {
		return 0, wrapErr(ErrMsgFailedToMarkCaseOpened, err)
	}
	return tag.RowsAffected(), nil
}

func (t *caseTx) InsertCaseItemDrop(ctx context.Context, drop *domain.CaseItemDrop) error {
	query := `
		INSERT INTO case_item_drops (drop_id, user_id, template_id, item_id, case_id, item_price, item_rarity, dropped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := t.tx.Exec(ctx, query, drop.ID, drop.UserID, drop.TemplateID, drop.ItemID, drop.CaseID,
		drop.ItemPrice, string(drop.ItemRarity), drop.DroppedAt); err != nil {
		return wrapErr(ErrMsgFailedToInsertDrop, err)
	}
	return nil
}

func (t *caseTx) InsertInventory(ctx context.Context, inv *domain.UserInventory) error {
	query := `
		INSERT INTO user_inventory (inventory_id, user_id, item_id, case_id, source, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := t.tx.Exec(ctx, query, inv.ID, inv.UserID, inv.ItemID, inv.CaseID,
		string(inv.Source), string(inv.Status), inv.CreatedAt); err != nil {
		return wrapErr(ErrMsgFailedToInsertInventory, err)
	}
	return nil
}

// IncrementDailyCounter adds delta to the counter for the given reference date
func (t *caseTx) IncrementDailyCounter(ctx context.Context, userID uuid.UUID, day time.Time, key string, delta int) error {
	query := `
		INSERT INTO user_daily_counters (user_id, counter_date, counter_key, value)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (user_id, counter_date, counter_key)
		DO UPDATE SET value = user_daily_counters.value + EXCLUDED.value
	`
	if _, err := t.tx.Exec(ctx, query, userID, day.Format(time.DateOnly), key, delta); err != nil {
		return wrapErr(ErrMsgFailedToIncrementCounter, err)
	}
	return nil
}

func (t *caseTx) InsertXpTransaction(ctx context.Context, xp *domain.XpTransaction) error {
	query := `
		INSERT INTO xp_transactions (xp_transaction_id, user_id, amount, reason, total_after, is_level_up, new_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := t.tx.Exec(ctx, query, xp.ID, xp.UserID, xp.Amount, xp.Reason, xp.TotalAfter,
		xp.IsLevelUp, xp.NewLevel, xp.CreatedAt); err != nil {
		return wrapErr(ErrMsgFailedToInsertXpTransaction, err)
	}
	return nil
}

// UpdateUserProgress writes the user's level and counters
func (t *caseTx) UpdateUserProgress(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET level = $2, total_xp = $3, total_cases_opened = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := t.tx.Exec(ctx, query, user.ID, user.Level, user.TotalXP, user.TotalCasesOpened)
	if err != nil {
		return wrapErr(ErrMsgFailedToUpdateUserProgress, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpsertUserAchievements replaces the progress rows in one batch
func (t *caseTx) UpsertUserAchievements(ctx context.Context, rows []domain.UserAchievement) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_achievements (user_id, achievement_id, progress, is_completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, achievement_id)
		DO UPDATE SET progress = EXCLUDED.progress, is_completed = EXCLUDED.is_completed, completed_at = EXCLUDED.completed_at
	`
	batch := &pgx.Batch{}
	for _, ua := range rows {
		batch.Queue(query, ua.UserID, ua.AchievementID, ua.Progress, ua.IsCompleted, ua.CompletedAt)
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return wrapErr(ErrMsgFailedToUpsertAchievements, err)
	}
	return nil
}
