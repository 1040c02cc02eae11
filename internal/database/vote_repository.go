package database

import (
	"context"
	"database/sql"
	"log"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// RecordVote applies one vote: casting the value already held retracts it,
// any other value sets or overwrites it. The aggregate on the target is
// recomputed as SUM(value) inside the transaction, never adjusted
// incrementally, and the author's reputation points move by the caller's
// vote delta. Returns the new aggregate and the caller's resulting vote
// state.
func (p *PostgresDB) RecordVote(ctx context.Context, userID, targetID uuid.UUID, targetType models.VoteTargetType, value int) (*models.VoteResult, error) {
	if !models.ValidVoteValue(value) {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "vote value must be 1 or -1", nil)
	}

	var targetTable string
	switch targetType {
	case models.ThreadVote:
		targetTable = "threads"
	case models.CommentVote:
		targetTable = "comments"
	default:
		return nil, utils.NewAppError(utils.ErrInvalidInput, "invalid vote target type", nil)
	}

	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to begin vote transaction", err)
	}
	defer tx.Rollback() // Rollback is ignored if tx is committed.

	// The target must exist; its author receives the reputation delta.
	var authorID uuid.UUID
	getAuthorQuery := `SELECT author_id FROM ` + targetTable + ` WHERE id = $1`
	err = tx.QueryRowxContext(ctx, getAuthorQuery, targetID).Scan(&authorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "vote target not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to get vote target author", err)
	}

	// Previous vote, if any.
	previous := 0
	getVoteQuery := `SELECT value FROM votes WHERE user_id = $1 AND target_id = $2 AND target_type = $3`
	err = tx.QueryRowxContext(ctx, getVoteQuery, userID, targetID, targetType).Scan(&previous)
	if err != nil && err != sql.ErrNoRows {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to check existing vote", err)
	}

	userVote := value
	if previous == value {
		// Same value again: toggle off.
		userVote = models.VoteNone
		_, err = tx.ExecContext(ctx,
			`DELETE FROM votes WHERE user_id = $1 AND target_id = $2 AND target_type = $3`,
			userID, targetID, targetType)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrDatabase, "failed to retract vote", err)
		}
	} else {
		upsertQuery := `
			INSERT INTO votes (id, user_id, target_id, target_type, value, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (user_id, target_id, target_type) DO UPDATE SET
				value = EXCLUDED.value,
				created_at = NOW()
		`
		_, err = tx.ExecContext(ctx, upsertQuery, uuid.New(), userID, targetID, targetType, value)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrDatabase, "failed to upsert vote record", err)
		}
	}

	// Recompute the aggregate from the ledger.
	var voteCount int
	sumQuery := `SELECT COALESCE(SUM(value), 0) FROM votes WHERE target_id = $1 AND target_type = $2`
	if err := tx.QueryRowxContext(ctx, sumQuery, targetID, targetType).Scan(&voteCount); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to recompute vote count", err)
	}

	updateTargetQuery := `UPDATE ` + targetTable + ` SET vote_count = $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.ExecContext(ctx, updateTargetQuery, voteCount, targetID); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to update target vote count", err)
	}

	// Reputation moves by what the caller changed.
	pointsDelta := userVote - previous
	if authorID != uuid.Nil && pointsDelta != 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE user_roles SET points = points + $1, updated_at = NOW() WHERE user_id = $2`,
			pointsDelta, authorID)
		if err != nil {
			log.Printf("Warning: Failed to update author (%s) points during vote: %v", authorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to commit vote transaction", err)
	}

	return &models.VoteResult{
		TargetID:  targetID.String(),
		VoteCount: voteCount,
		UserVote:  userVote,
	}, nil
}
