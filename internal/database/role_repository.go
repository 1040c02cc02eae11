package database

import (
	"context"
	"database/sql"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// GetUserRole fetches the role row for a user. Users created before the
// role table existed get a default bottom-tier row on first read.
func (p *PostgresDB) GetUserRole(ctx context.Context, userID uuid.UUID) (*models.UserRole, error) {
	query := `SELECT user_id, role, points, updated_at FROM user_roles WHERE user_id = $1`
	var role models.UserRole
	err := p.DB.GetContext(ctx, &role, query, userID)
	if err == nil {
		return &role, nil
	}
	if err != sql.ErrNoRows {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query user role", err)
	}

	// No row yet: backfill the default tier.
	insert := `
		INSERT INTO user_roles (user_id, role, points, updated_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := p.DB.ExecContext(ctx, insert, userID, models.RoleNewUser); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to backfill user role", err)
	}
	err = p.DB.GetContext(ctx, &role, query, userID)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to re-query user role", err)
	}
	return &role, nil
}

// SetUserRole stores a new tier for the user. Tier-step validation happens
// in the role actor; this only persists the result.
func (p *PostgresDB) SetUserRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	query := `UPDATE user_roles SET role = $1, updated_at = NOW() WHERE user_id = $2`
	result, err := p.DB.ExecContext(ctx, query, role, userID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update user role", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "user role row not found", nil)
	}
	return nil
}
