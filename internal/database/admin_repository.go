package database

import (
	"context"

	"sloboda/internal/models"
	"sloboda/internal/utils"
)

// GetSettings fetches all admin settings.
func (p *PostgresDB) GetSettings(ctx context.Context) ([]*models.Setting, error) {
	query := `SELECT key, value, updated_at FROM settings ORDER BY key ASC`
	settings := []*models.Setting{}
	if err := p.DB.SelectContext(ctx, &settings, query); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query settings", err)
	}
	return settings, nil
}

// PutSetting upserts one setting.
func (p *PostgresDB) PutSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := p.DB.ExecContext(ctx, query, key, value); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to put setting", err)
	}
	return nil
}

// EntityCounts returns row counts per entity for the admin dashboard.
func (p *PostgresDB) EntityCounts(ctx context.Context) (map[string]int, error) {
	tables := []string{"users", "threads", "comments", "votes", "events", "campaigns", "notifications", "uploads"}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var count int
		// table names come from the fixed list above.
		if err := p.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM `+table); err != nil {
			return nil, utils.NewAppError(utils.ErrDatabase, "failed to count "+table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
