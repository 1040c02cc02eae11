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

func maskDeletedComment(c *models.Comment) {
	if c.IsDeleted {
		c.Body = models.DeletedPlaceholder
	}
}

// SaveComment inserts a new comment and, in the same transaction, bumps
// the thread's comment_count and last activity time.
func (p *PostgresDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	comment.UpdatedAt = now
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}

	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for save comment", err)
	}
	defer tx.Rollback() // Rollback is ignored if tx is committed.

	query := `
		INSERT INTO comments (id, body, thread_id, parent_comment_id, author_id, vote_count, depth, is_deleted, created_at, updated_at)
		VALUES (:id, :body, :thread_id, :parent_comment_id, :author_id, :vote_count, :depth, :is_deleted, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, comment); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save comment", err)
	}

	updateThread := `UPDATE threads SET comment_count = comment_count + 1, last_activity_at = NOW(), updated_at = NOW() WHERE id = $1`
	result, err := tx.ExecContext(ctx, updateThread, comment.ThreadID)
	if err != nil {
		log.Printf("Failed to increment comment_count for thread %s: %v", comment.ThreadID, err)
		return utils.NewAppError(utils.ErrDatabase, "failed to update thread comment_count", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrThreadNotFound, "thread not found to update comment count", nil)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit save comment", err)
	}
	return nil
}

// GetComment fetches a single comment by its ID.
func (p *PostgresDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT
			c.id, c.body, c.thread_id, c.parent_comment_id, c.author_id,
			u.username AS author_username,
			c.vote_count, c.depth, c.is_deleted, c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.id = $1
	`
	var comment models.Comment
	err := p.DB.GetContext(ctx, &comment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrCommentNotFound, "comment not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query comment by id", err)
	}
	maskDeletedComment(&comment)
	return &comment, nil
}

// GetThreadComments fetches the flat comment list of a thread in
// submission order, including the requesting user's vote per comment. The
// client (or the tree assembler) turns this into a forest.
func (p *PostgresDB) GetThreadComments(ctx context.Context, threadID uuid.UUID, requestingUserID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT
			c.id, c.body, c.thread_id, c.parent_comment_id, c.author_id,
			u.username AS author_username,
			c.vote_count, c.depth, c.is_deleted, c.created_at, c.updated_at,
			COALESCE(v.value, 0) AS current_user_vote
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		LEFT JOIN votes v ON v.target_id = c.id AND v.target_type = 'comment' AND v.user_id = $2
		WHERE c.thread_id = $1
		ORDER BY c.created_at ASC
	`
	comments := []*models.Comment{}
	err := p.DB.SelectContext(ctx, &comments, query, threadID, requestingUserID)
	if err != nil {
		log.Printf("Error querying thread comments: %v. ThreadID: %s, UserID: %s", err, threadID, requestingUserID)
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query thread comments", err)
	}
	for _, c := range comments {
		maskDeletedComment(c)
	}
	return comments, nil
}

// UpdateCommentBody edits a comment's body. Authorization is handled by
// the comment actor.
func (p *PostgresDB) UpdateCommentBody(ctx context.Context, id uuid.UUID, body string) error {
	query := `UPDATE comments SET body = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = FALSE`
	result, err := p.DB.ExecContext(ctx, query, body, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update comment body", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrCommentNotFound, "comment not found or deleted", nil)
	}
	return nil
}

// SoftDeleteComment marks a comment deleted. The row and its descendants
// stay in place so the reply tree keeps its shape; comment_count on the
// thread is intentionally not decremented.
func (p *PostgresDB) SoftDeleteComment(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE comments SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`
	result, err := p.DB.ExecContext(ctx, query, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to soft delete comment", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrCommentNotFound, "comment not found", nil)
	}
	return nil
}
