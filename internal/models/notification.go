package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification kinds.
const (
	NotifyReply      = "reply"
	NotifyRoleChange = "role_change"
	NotifyRSVP       = "rsvp"
	NotifyDonation   = "donation"
)

type Notification struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	Kind      string          `json:"kind" db:"kind"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	IsRead    bool            `json:"isRead" db:"is_read"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
