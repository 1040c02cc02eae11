package handlers

import (
	"encoding/json"
	"net/http"

	"sloboda/internal/engine/actors"
	"sloboda/internal/forum"
	"sloboda/internal/middleware"

	"github.com/google/uuid"
)

// CreateCommentRequest represents a new comment or reply
type CreateCommentRequest struct {
	ThreadID        string `json:"threadId"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
	Body            string `json:"body"`
}

// HandleComments serves POST on the comment collection.
func (s *Server) HandleComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		threadID, err := uuid.Parse(req.ThreadID)
		if err != nil {
			http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
			return
		}
		var parentID *uuid.UUID
		if req.ParentCommentID != "" {
			id, err := uuid.Parse(req.ParentCommentID)
			if err != nil {
				http.Error(w, "Invalid parent comment ID format", http.StatusBadRequest)
				return
			}
			parentID = &id
		}

		result, err := s.ask(s.Engine.CommentActor(), &actors.CreateCommentMsg{
			ThreadID:        threadID,
			ParentCommentID: parentID,
			AuthorID:        userID,
			Body:            req.Body,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleCommentByID serves PUT and DELETE for one comment.
func (s *Server) HandleCommentByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		switch r.Method {
		case http.MethodPut:
			var req struct {
				Body string `json:"body"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			result, err := s.ask(s.Engine.CommentActor(), &actors.EditCommentMsg{
				CommentID: commentID,
				EditorID:  userID,
				Body:      req.Body,
			})
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, result)

		case http.MethodDelete:
			result, err := s.ask(s.Engine.CommentActor(), &actors.DeleteCommentMsg{
				CommentID:   commentID,
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

// HandleThreadComments returns the full comment tree of a thread.
func (s *Server) HandleThreadComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		comments, err := s.DB.GetThreadComments(r.Context(), threadID, userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, forum.BuildTree(comments))
	}
}
