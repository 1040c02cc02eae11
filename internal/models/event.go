package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is the attendee's declared intent for an event.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPDeclined RSVPStatus = "declined"
)

// ValidRSVPStatus reports whether s is a known RSVP status.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPGoing, RSVPMaybe, RSVPDeclined:
		return true
	}
	return false
}

type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	Location    string    `json:"location,omitempty" db:"location"`
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`
	Capacity    int       `json:"capacity" db:"capacity"`
	GoingCount  int       `json:"goingCount" db:"going_count"`
	CreatedBy   uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type RSVP struct {
	EventID   uuid.UUID  `json:"eventId" db:"event_id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	Status    RSVPStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
