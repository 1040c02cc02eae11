package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// EventRequest represents event create and update bodies
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Capacity    int       `json:"capacity"`
}

// RSVPRequest represents an attendance declaration
type RSVPRequest struct {
	Status string `json:"status"`
}

func (req *EventRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "event title is required", nil)
	}
	if req.StartsAt.IsZero() {
		return utils.NewAppError(utils.ErrInvalidInput, "event start time is required", nil)
	}
	if req.Capacity < 0 {
		return utils.NewAppError(utils.ErrInvalidInput, "capacity cannot be negative", nil)
	}
	return nil
}

// HandleEvents serves GET (list) and POST (create).
func (s *Server) HandleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			limit, offset := parseListParams(r)
			events, err := s.DB.ListEvents(r.Context(), limit, offset)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, events)

		case http.MethodPost:
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var req EventRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if err := req.validate(); err != nil {
				respondError(w, err)
				return
			}

			event := &models.Event{
				ID:          uuid.New(),
				Title:       req.Title,
				Description: req.Description,
				StartsAt:    req.StartsAt,
				Location:    req.Location,
				Latitude:    req.Latitude,
				Longitude:   req.Longitude,
				Capacity:    req.Capacity,
				CreatedBy:   userID,
			}
			if err := s.DB.SaveEvent(r.Context(), event); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, event)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleEventByID serves GET, PUT, and DELETE for one event. Updates and
// deletes are for the creator or a moderator.
func (s *Server) HandleEventByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid event ID format", http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodGet:
			event, err := s.DB.GetEvent(r.Context(), eventID)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, event)

		case http.MethodPut:
			event, err := s.eventForWrite(r, eventID)
			if err != nil {
				respondError(w, err)
				return
			}

			var req EventRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if err := req.validate(); err != nil {
				respondError(w, err)
				return
			}

			event.Title = req.Title
			event.Description = req.Description
			event.StartsAt = req.StartsAt
			event.Location = req.Location
			event.Latitude = req.Latitude
			event.Longitude = req.Longitude
			event.Capacity = req.Capacity
			if err := s.DB.SaveEvent(r.Context(), event); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, event)

		case http.MethodDelete:
			if _, err := s.eventForWrite(r, eventID); err != nil {
				respondError(w, err)
				return
			}
			if err := s.DB.DeleteEvent(r.Context(), eventID); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "event deleted"})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// eventForWrite loads the event and checks the caller may modify it.
func (s *Server) eventForWrite(r *http.Request, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.DB.GetEvent(r.Context(), eventID)
	if err != nil {
		return nil, err
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if event.CreatedBy == userID {
		return event, nil
	}
	if err := s.requireModerator(r); err != nil {
		return nil, err
	}
	return event, nil
}

// HandleRSVP records or updates the caller's attendance. The event
// creator is notified on new "going" responses.
func (s *Server) HandleRSVP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid event ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req RSVPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		status := models.RSVPStatus(req.Status)
		if !models.ValidRSVPStatus(status) {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "status must be going, maybe, or declined", nil))
			return
		}

		event, err := s.DB.UpsertRSVP(r.Context(), &models.RSVP{
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		if status == models.RSVPGoing && event.CreatedBy != userID {
			s.notify(r, event.CreatedBy, models.NotifyRSVP, map[string]string{
				"eventId": event.ID.String(),
				"title":   event.Title,
			})
		}

		respondJSON(w, http.StatusOK, event)
	}
}

// notify persists a notification and pushes it to any live connection.
// Failures are logged only; the triggering request still succeeds.
func (s *Server) notify(r *http.Request, userID uuid.UUID, kind string, payload map[string]string) {
	data, _ := json.Marshal(payload)
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now(),
	}
	if err := s.DB.SaveNotification(r.Context(), n); err != nil {
		log.Printf("Warning: failed to save %s notification for user %s: %v", kind, userID, err)
		return
	}
	if s.Hub != nil {
		s.Hub.Push(userID, n)
	}
}
