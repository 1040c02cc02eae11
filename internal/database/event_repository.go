package database

import (
	"context"
	"database/sql"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// SaveEvent inserts a new event or updates an existing one based on the ID.
func (p *PostgresDB) SaveEvent(ctx context.Context, event *models.Event) error {
	now := time.Now()
	event.UpdatedAt = now
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}

	query := `
		INSERT INTO events (id, title, description, starts_at, location, latitude, longitude, capacity, going_count, created_by, created_at, updated_at)
		VALUES (:id, :title, :description, :starts_at, :location, :latitude, :longitude, :capacity, :going_count, :created_by, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			starts_at = EXCLUDED.starts_at,
			location = EXCLUDED.location,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			capacity = EXCLUDED.capacity,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := p.DB.NamedExecContext(ctx, query, event); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save event", err)
	}
	return nil
}

// GetEvent fetches an event by its ID.
func (p *PostgresDB) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `SELECT id, title, description, starts_at, location, latitude, longitude, capacity, going_count, created_by, created_at, updated_at FROM events WHERE id = $1`
	var event models.Event
	err := p.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "event not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query event by id", err)
	}
	return &event, nil
}

// ListEvents fetches upcoming events first, then past ones.
func (p *PostgresDB) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	query := `
		SELECT id, title, description, starts_at, location, latitude, longitude, capacity, going_count, created_by, created_at, updated_at
		FROM events
		ORDER BY (starts_at < NOW()), starts_at ASC
		LIMIT $1 OFFSET $2
	`
	events := []*models.Event{}
	if err := p.DB.SelectContext(ctx, &events, query, limit, offset); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query events", err)
	}
	return events, nil
}

// DeleteEvent removes an event and its RSVPs.
func (p *PostgresDB) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for delete event", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_rsvps WHERE event_id = $1`, id); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete event rsvps", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete event", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "event not found", nil)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit delete event", err)
	}
	return nil
}

// UpsertRSVP records or updates a user's RSVP and recomputes going_count
// from the rsvp rows in the same transaction. Returns the updated event.
func (p *PostgresDB) UpsertRSVP(ctx context.Context, rsvp *models.RSVP) (*models.Event, error) {
	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to begin rsvp transaction", err)
	}
	defer tx.Rollback()

	// Event must exist.
	var capacity, goingCount int
	err = tx.QueryRowxContext(ctx, `SELECT capacity, going_count FROM events WHERE id = $1`, rsvp.EventID).Scan(&capacity, &goingCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "event not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query event for rsvp", err)
	}

	upsert := `
		INSERT INTO event_rsvps (event_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsert, rsvp.EventID, rsvp.UserID, rsvp.Status); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to upsert rsvp", err)
	}

	recount := `
		UPDATE events SET going_count = (
			SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1 AND status = 'going'
		), updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, recount, rsvp.EventID); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to recount event attendance", err)
	}

	var event models.Event
	getQuery := `SELECT id, title, description, starts_at, location, latitude, longitude, capacity, going_count, created_by, created_at, updated_at FROM events WHERE id = $1`
	if err := tx.GetContext(ctx, &event, getQuery, rsvp.EventID); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to re-query event after rsvp", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to commit rsvp transaction", err)
	}
	return &event, nil
}
