package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is a personal fundraising drive. RaisedAmount is derived from
// the donations table and recomputed on every donation, never trusted
// incrementally.
type Campaign struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description,omitempty" db:"description"`
	GoalAmount    int64     `json:"goalAmount" db:"goal_amount"`
	RaisedAmount  int64     `json:"raisedAmount" db:"raised_amount"`
	OwnerID       uuid.UUID `json:"ownerId" db:"owner_id"`
	OwnerUsername string    `json:"ownerUsername,omitempty" db:"owner_username"`
	IsClosed      bool      `json:"isClosed" db:"is_closed"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type Donation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CampaignID uuid.UUID `json:"campaignId" db:"campaign_id"`
	DonorID    uuid.UUID `json:"donorId" db:"donor_id"`
	Amount     int64     `json:"amount" db:"amount"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
