package database

import (
	"context"
	"fmt"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CreateCategory inserts a new category record.
func (p *PostgresDB) CreateCategory(ctx context.Context, cat *models.Category) error {
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO categories (id, name, slug, description, sort_order, created_at)
		VALUES (:id, :name, :slug, :description, :sort_order, :created_at)
	`
	_, err := p.DB.NamedExecContext(ctx, query, cat)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return utils.NewAppError(utils.ErrDuplicate, fmt.Sprintf("category slug already exists: %s", cat.Slug), err)
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to create category", err)
	}
	return nil
}

// ListCategories fetches all categories in display order.
func (p *PostgresDB) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT id, name, slug, description, sort_order, created_at FROM categories ORDER BY sort_order ASC, name ASC`
	cats := []*models.Category{}
	err := p.DB.SelectContext(ctx, &cats, query)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query categories", err)
	}
	return cats, nil
}

// UpdateCategory edits name, slug, description and sort order.
func (p *PostgresDB) UpdateCategory(ctx context.Context, cat *models.Category) error {
	query := `UPDATE categories SET name = $1, slug = $2, description = $3, sort_order = $4 WHERE id = $5`
	result, err := p.DB.ExecContext(ctx, query, cat.Name, cat.Slug, cat.Description, cat.SortOrder, cat.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return utils.NewAppError(utils.ErrDuplicate, fmt.Sprintf("category slug already exists: %s", cat.Slug), err)
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to update category", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "category not found", nil)
	}
	return nil
}

// DeleteCategory removes a category; threads keep a NULL category_id.
func (p *PostgresDB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for delete category", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE threads SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to detach threads from category", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete category", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "category not found", nil)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit delete category", err)
	}
	return nil
}
