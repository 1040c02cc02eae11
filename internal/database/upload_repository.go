package database

import (
	"context"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// SaveUpload records an object that has been written to storage.
func (p *PostgresDB) SaveUpload(ctx context.Context, upload *models.Upload) error {
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO uploads (id, owner_id, object_key, content_type, size, public_url, created_at)
		VALUES (:id, :owner_id, :object_key, :content_type, :size, :public_url, :created_at)
	`
	if _, err := p.DB.NamedExecContext(ctx, query, upload); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save upload record", err)
	}
	return nil
}

// UserStorageUsed sums the bytes a user has stored, for quota checks.
func (p *PostgresDB) UserStorageUsed(ctx context.Context, userID uuid.UUID) (int64, error) {
	var used int64
	query := `SELECT COALESCE(SUM(size), 0) FROM uploads WHERE owner_id = $1`
	if err := p.DB.GetContext(ctx, &used, query, userID); err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "failed to sum user storage", err)
	}
	return used, nil
}
