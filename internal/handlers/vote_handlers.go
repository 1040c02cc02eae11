package handlers

import (
	"encoding/json"
	"net/http"

	"sloboda/internal/engine/actors"
	"sloboda/internal/middleware"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// VoteRequest carries a vote for either a thread or a comment. Exactly
// one of thread_id and comment_id must be set.
type VoteRequest struct {
	ThreadID  string `json:"thread_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	VoteValue int    `json:"vote_value"`
}

// HandleVotes applies an upvote or downvote. Casting the same value
// twice retracts the vote.
func (s *Server) HandleVotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		var req VoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if (req.ThreadID == "") == (req.CommentID == "") {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "exactly one of thread_id and comment_id is required", nil))
			return
		}

		var (
			result interface{}
			err    error
		)
		if req.ThreadID != "" {
			threadID, parseErr := uuid.Parse(req.ThreadID)
			if parseErr != nil {
				http.Error(w, "Invalid thread ID format", http.StatusBadRequest)
				return
			}
			result, err = s.ask(s.Engine.ThreadActor(), &actors.VoteThreadMsg{
				ThreadID: threadID,
				UserID:   userID,
				Value:    req.VoteValue,
			})
		} else {
			commentID, parseErr := uuid.Parse(req.CommentID)
			if parseErr != nil {
				http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
				return
			}
			result, err = s.ask(s.Engine.CommentActor(), &actors.VoteCommentMsg{
				CommentID: commentID,
				UserID:    userID,
				Value:     req.VoteValue,
			})
		}
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
