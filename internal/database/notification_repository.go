package database

import (
	"context"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// SaveNotification inserts a notification row.
func (p *PostgresDB) SaveNotification(ctx context.Context, n *models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if len(n.Payload) == 0 {
		n.Payload = []byte("{}")
	}

	query := `
		INSERT INTO notifications (id, user_id, kind, payload, is_read, created_at)
		VALUES (:id, :user_id, :kind, :payload, :is_read, :created_at)
	`
	if _, err := p.DB.NamedExecContext(ctx, query, n); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save notification", err)
	}
	return nil
}

// ListNotifications fetches the newest notifications for a user.
func (p *PostgresDB) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, kind, payload, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	notifications := []*models.Notification{}
	if err := p.DB.SelectContext(ctx, &notifications, query, userID, limit); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query notifications", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips is_read for a notification owned by the
// caller.
func (p *PostgresDB) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := p.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to mark notification read", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "notification not found", nil)
	}
	return nil
}
