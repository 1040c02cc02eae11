package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"sloboda/internal/engine/actors"
	"sloboda/internal/middleware"
	"sloboda/internal/models"

	"github.com/google/uuid"
)

// CreateThreadRequest represents a request to start a new thread
type CreateThreadRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Type       string   `json:"type"`
	CategoryID string   `json:"categoryId"`
	Tags       []string `json:"tags"`
}

// UpdateThreadRequest represents an edit to an existing thread
type UpdateThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func parseListParams(r *http.Request) (limit, offset int) {
	limit = 25
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// HandleThreads serves GET (list) and POST (create) on the thread
// collection.
func (s *Server) HandleThreads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			limit, offset := parseListParams(r)
			// Anonymous readers get uuid.Nil, their currentUserVote is 0.
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			threads, err := s.DB.ListThreads(r.Context(), limit, offset, r.URL.Query().Get("category"), userID)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, threads)

		case http.MethodPost:
			userID, _ := middleware.GetUserIDFromContext(r.Context())

			var req CreateThreadRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if req.Type == "" {
				req.Type = string(models.ThreadDiscussion)
			}
			var categoryID *uuid.UUID
			if req.CategoryID != "" {
				id, err := uuid.Parse(req.CategoryID)
				if err != nil {
					http.Error(w, "Invalid category ID format", http.StatusBadRequest)
					return
				}
				categoryID = &id
			}

			result, err := s.ask(s.Engine.ThreadActor(), &actors.CreateThreadMsg{
				Title:      req.Title,
				Body:       req.Body,
				Type:       models.ThreadType(req.Type),
				AuthorID:   userID,
				CategoryID: categoryID,
				Tags:       req.Tags,
			})
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, result)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleThreadByID serves GET, PUT, and DELETE for one thread.
func (s *Server) HandleThreadByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		switch r.Method {
		case http.MethodGet:
			thread, err := s.DB.GetThread(r.Context(), threadID, userID)
			if err != nil {
				respondError(w, err)
				return
			}
			// View counting is best effort.
			if err := s.DB.IncrementThreadViews(r.Context(), threadID); err != nil {
				log.Printf("Warning: failed to count view for thread %s: %v", threadID, err)
			}
			respondJSON(w, http.StatusOK, thread)

		case http.MethodPut:
			var req UpdateThreadRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			result, err := s.ask(s.Engine.ThreadActor(), &actors.EditThreadMsg{
				ThreadID: threadID,
				EditorID: userID,
				Title:    req.Title,
				Body:     req.Body,
			})
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, result)

		case http.MethodDelete:
			result, err := s.ask(s.Engine.ThreadActor(), &actors.DeleteThreadMsg{
				ThreadID:    threadID,
				RequesterID: userID,
			})
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, result)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleThreadPin toggles the pinned flag. Moderator only, enforced by
// the actor.
func (s *Server) HandleThreadPin() http.HandlerFunc {
	return s.handleThreadFlag(func(threadID, userID uuid.UUID, value bool) interface{} {
		return &actors.PinThreadMsg{ThreadID: threadID, RequesterID: userID, Pinned: value}
	})
}

// HandleThreadLock toggles the locked flag. Moderator only, enforced by
// the actor.
func (s *Server) HandleThreadLock() http.HandlerFunc {
	return s.handleThreadFlag(func(threadID, userID uuid.UUID, value bool) interface{} {
		return &actors.LockThreadMsg{ThreadID: threadID, RequesterID: userID, Locked: value}
	})
}

func (s *Server) handleThreadFlag(makeMsg func(threadID, userID uuid.UUID, value bool) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req struct {
			Value *bool `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
			http.Error(w, "Invalid request, expected {\"value\": true|false}", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.ThreadActor(), makeMsg(threadID, userID, *req.Value))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleThreadTags replaces the tag set of a thread.
func (s *Server) HandleThreadTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req struct {
			Tags []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.ThreadActor(), &actors.TagThreadMsg{
			ThreadID:    threadID,
			RequesterID: userID,
			Tags:        req.Tags,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
