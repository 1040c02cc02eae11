package database

import (
	"context"
	"database/sql"
	"time"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

const campaignColumns = `
	c.id, c.title, c.description, c.goal_amount, c.raised_amount,
	c.owner_id, c.is_closed, c.created_at, c.updated_at,
	u.username AS owner_username`

// SaveCampaign inserts a new fundraising campaign.
func (p *PostgresDB) SaveCampaign(ctx context.Context, campaign *models.Campaign) error {
	now := time.Now()
	campaign.UpdatedAt = now
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = now
	}

	query := `
		INSERT INTO campaigns (id, title, description, goal_amount, raised_amount, owner_id, is_closed, created_at, updated_at)
		VALUES (:id, :title, :description, :goal_amount, :raised_amount, :owner_id, :is_closed, :created_at, :updated_at)
	`
	if _, err := p.DB.NamedExecContext(ctx, query, campaign); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save campaign", err)
	}
	return nil
}

// GetCampaign fetches a campaign by its ID.
func (p *PostgresDB) GetCampaign(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c LEFT JOIN users u ON c.owner_id = u.id WHERE c.id = $1`
	var campaign models.Campaign
	err := p.DB.GetContext(ctx, &campaign, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "campaign not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query campaign by id", err)
	}
	return &campaign, nil
}

// ListCampaigns fetches open campaigns first, newest first within each
// group.
func (p *PostgresDB) ListCampaigns(ctx context.Context, limit, offset int) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns c
		LEFT JOIN users u ON c.owner_id = u.id
		ORDER BY c.is_closed ASC, c.created_at DESC
		LIMIT $1 OFFSET $2`
	campaigns := []*models.Campaign{}
	if err := p.DB.SelectContext(ctx, &campaigns, query, limit, offset); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query campaigns", err)
	}
	return campaigns, nil
}

// CloseCampaign marks a campaign closed. Only the owner may close it.
func (p *PostgresDB) CloseCampaign(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `UPDATE campaigns SET is_closed = TRUE, updated_at = NOW() WHERE id = $1 AND owner_id = $2`
	result, err := p.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to close campaign", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewAppError(utils.ErrNotFound, "campaign not found or not owned by caller", nil)
	}
	return nil
}

// RecordDonation inserts a donation and recomputes raised_amount from the
// donations table in the same transaction. Donations to closed campaigns
// are rejected. Returns the updated campaign.
func (p *PostgresDB) RecordDonation(ctx context.Context, donation *models.Donation) (*models.Campaign, error) {
	if donation.Amount <= 0 {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "donation amount must be positive", nil)
	}

	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to begin donation transaction", err)
	}
	defer tx.Rollback()

	var isClosed bool
	err = tx.QueryRowxContext(ctx, `SELECT is_closed FROM campaigns WHERE id = $1`, donation.CampaignID).Scan(&isClosed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "campaign not found", err)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query campaign for donation", err)
	}
	if isClosed {
		return nil, utils.NewAppError(utils.ErrForbidden, "campaign is closed", nil)
	}

	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}
	insert := `
		INSERT INTO donations (id, campaign_id, donor_id, amount, created_at)
		VALUES (:id, :campaign_id, :donor_id, :amount, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, insert, donation); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to save donation", err)
	}

	recompute := `
		UPDATE campaigns SET raised_amount = (
			SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, recompute, donation.CampaignID); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to recompute raised amount", err)
	}

	var campaign models.Campaign
	getQuery := `SELECT ` + campaignColumns + ` FROM campaigns c LEFT JOIN users u ON c.owner_id = u.id WHERE c.id = $1`
	if err := tx.GetContext(ctx, &campaign, getQuery, donation.CampaignID); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to re-query campaign after donation", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to commit donation transaction", err)
	}
	return &campaign, nil
}
