package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

const threadColumns = `
	t.id, t.title, t.body, t.thread_type, t.author_id, t.category_id,
	t.vote_count, t.comment_count, t.view_count,
	t.is_pinned, t.is_locked, t.is_deleted,
	t.created_at, t.updated_at, t.last_activity_at,
	u.username AS author_username,
	COALESCE(c.slug, '') AS category_slug,
	COALESCE(v.value, 0) AS current_user_vote`

const threadJoins = `
	FROM threads t
	LEFT JOIN users u ON t.author_id = u.id
	LEFT JOIN categories c ON t.category_id = c.id
	LEFT JOIN votes v ON v.target_id = t.id AND v.target_type = 'thread' AND v.user_id = $1`

// maskDeletedThread applies the soft-delete display rule: the row survives
// but renders as the placeholder.
func maskDeletedThread(t *models.Thread) {
	if t.IsDeleted {
		t.Title = models.DeletedPlaceholder
		t.Body = models.DeletedPlaceholder
	}
}

// SaveThread inserts a new thread.
func (p *PostgresDB) SaveThread(ctx context.Context, thread *models.Thread) error {
	now := time.Now()
	thread.UpdatedAt = now
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = now
	}
	if thread.LastActivityAt.IsZero() {
		thread.LastActivityAt = now
	}

	query := `
		INSERT INTO threads (id, title, body, thread_type, author_id, category_id, vote_count, comment_count, view_count, is_pinned, is_locked, is_deleted, created_at, updated_at, last_activity_at)
		VALUES (:id, :title, :body, :thread_type, :author_id, :category_id, :vote_count, :comment_count, :view_count, :is_pinned, :is_locked, :is_deleted, :created_at, :updated_at, :last_activity_at)
	`
	_, err := p.DB.NamedExecContext(ctx, query, thread)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save thread", err)
	}
	return nil
}

// GetThread fetches a thread by ID, including the requesting user's vote
// state. Soft-deleted threads come back with the placeholder title/body.
func (p *PostgresDB) GetThread(ctx context.Context, id uuid.UUID, requestingUserID uuid.UUID) (*models.Thread, error) {
	query := `SELECT ` + threadColumns + threadJoins + ` WHERE t.id = $2`
	var thread models.Thread
	err := p.DB.GetContext(ctx, &thread, query, requestingUserID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrThreadNotFound, "thread not found", err)
		}
		log.Printf("Error fetching thread %s: %v", id, err)
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query thread by id", err)
	}

	tagsQuery := `SELECT tag FROM thread_tags WHERE thread_id = $1 ORDER BY tag`
	if err := p.DB.SelectContext(ctx, &thread.Tags, tagsQuery, id); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query thread tags", err)
	}

	maskDeletedThread(&thread)
	return &thread, nil
}

// ListThreads fetches a page of threads, pinned first then newest
// activity. An empty categorySlug means all categories.
func (p *PostgresDB) ListThreads(ctx context.Context, limit, offset int, categorySlug string, requestingUserID uuid.UUID) ([]*models.Thread, error) {
	query := `SELECT ` + threadColumns + threadJoins
	args := []interface{}{requestingUserID}
	if categorySlug != "" {
		query += ` WHERE c.slug = $2 ORDER BY t.is_pinned DESC, t.last_activity_at DESC LIMIT $3 OFFSET $4`
		args = append(args, categorySlug, limit, offset)
	} else {
		query += ` ORDER BY t.is_pinned DESC, t.last_activity_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	threads := []*models.Thread{}
	err := p.DB.SelectContext(ctx, &threads, query, args...)
	if err != nil {
		log.Printf("Error querying threads: %v", err)
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query threads", err)
	}
	for _, t := range threads {
		maskDeletedThread(t)
	}
	return threads, nil
}

// UpdateThreadContent edits the title and body. Authorization is handled
// by the thread actor.
func (p *PostgresDB) UpdateThreadContent(ctx context.Context, id uuid.UUID, title, body string) error {
	query := `UPDATE threads SET title = $1, body = $2, updated_at = NOW(), last_activity_at = NOW() WHERE id = $3 AND is_deleted = FALSE`
	result, err := p.DB.ExecContext(ctx, query, title, body, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update thread content", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrThreadNotFound, "thread not found or deleted", nil)
	}
	return nil
}

// SetThreadPinned toggles the pin flag.
func (p *PostgresDB) SetThreadPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	return p.setThreadFlag(ctx, id, "is_pinned", pinned)
}

// SetThreadLocked toggles the lock flag.
func (p *PostgresDB) SetThreadLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	return p.setThreadFlag(ctx, id, "is_locked", locked)
}

func (p *PostgresDB) setThreadFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	// column comes from the two callers above, never from input.
	query := `UPDATE threads SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2`
	result, err := p.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update thread flag "+column, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrThreadNotFound, "thread not found", nil)
	}
	return nil
}

// SoftDeleteThread marks a thread deleted. One-way: there is no undelete.
func (p *PostgresDB) SoftDeleteThread(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE threads SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`
	result, err := p.DB.ExecContext(ctx, query, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to soft delete thread", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrThreadNotFound, "thread not found", nil)
	}
	return nil
}

// IncrementThreadViews bumps the view counter. Missing threads are ignored
// here; the read that follows reports not-found.
func (p *PostgresDB) IncrementThreadViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE threads SET view_count = view_count + 1 WHERE id = $1`
	if _, err := p.DB.ExecContext(ctx, query, id); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to increment view count", err)
	}
	return nil
}

// SetThreadTags replaces the tag set of a thread.
func (p *PostgresDB) SetThreadTags(ctx context.Context, id uuid.UUID, tags []string) error {
	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for thread tags", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM thread_tags WHERE thread_id = $1`, id); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to clear thread tags", err)
	}
	for _, tag := range tags {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO thread_tags (thread_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, tag)
		if err != nil {
			return utils.NewAppError(utils.ErrDatabase, "failed to insert thread tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit thread tags", err)
	}
	return nil
}
