package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GetUserByEmail fetches a user by their email address.
func (p *PostgresDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, avatar_url, bio, created_at, updated_at, last_active, is_connected FROM users WHERE email = $1`
	var user models.User
	err := p.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query user by email", err)
	}
	return &user, nil
}

// GetUser fetches a user by their ID.
func (p *PostgresDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, avatar_url, bio, created_at, updated_at, last_active, is_connected FROM users WHERE id = $1`
	var user models.User
	err := p.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query user by id", err)
	}
	return &user, nil
}

// SaveUser inserts a new user and their starting role row in one
// transaction. Every account begins at the bottom of the role ladder.
func (p *PostgresDB) SaveUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.UpdatedAt = now
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastActive.IsZero() {
		user.LastActive = now
	}

	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for save user", err)
	}
	defer tx.Rollback() // Rollback is ignored if tx is committed.

	query := `
		INSERT INTO users (id, username, email, password_hash, avatar_url, bio, created_at, updated_at, last_active, is_connected)
		VALUES (:id, :username, :email, :password_hash, :avatar_url, :bio, :created_at, :updated_at, :last_active, :is_connected)
	`
	_, err = tx.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return utils.NewAppError(utils.ErrUserAlreadyExists, fmt.Sprintf("user already exists: %v", pqErr.Constraint), err)
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to save user", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role, points, updated_at) VALUES ($1, $2, 0, NOW())`,
		user.ID, models.RoleNewUser)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to create role row for user", err)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit save user", err)
	}
	return nil
}

// UpdateUserActivity updates the user's last active time and connection status.
func (p *PostgresDB) UpdateUserActivity(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE users SET last_active = NOW(), is_connected = $1, updated_at = NOW() WHERE id = $2`
	result, err := p.DB.ExecContext(ctx, query, active, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update user activity", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to get rows affected after update", err)
	}
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "user not found for activity update", nil)
	}
	return nil
}

// UpdateUserAvatar stores the public URL of a freshly uploaded avatar.
func (p *PostgresDB) UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`
	result, err := p.DB.ExecContext(ctx, query, avatarURL, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update user avatar", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "user not found for avatar update", nil)
	}
	return nil
}

// GetAllUsers fetches users for the admin back-office, newest first.
func (p *PostgresDB) GetAllUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT id, username, email, password_hash, avatar_url, bio, created_at, updated_at, last_active, is_connected
	          FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	users := []*models.User{}
	err := p.DB.SelectContext(ctx, &users, query, limit, offset)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query all users", err)
	}
	return users, nil
}
