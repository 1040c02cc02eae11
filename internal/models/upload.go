package models

import (
	"time"

	"github.com/google/uuid"
)

type Upload struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"ownerId" db:"owner_id"`
	ObjectKey   string    `json:"objectKey" db:"object_key"`
	ContentType string    `json:"contentType" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	PublicURL   string    `json:"publicUrl" db:"public_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
