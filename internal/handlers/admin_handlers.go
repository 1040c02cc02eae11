package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"sloboda/internal/models"
	"sloboda/internal/utils"
)

// HandleAdminStats returns entity counts and the current top tags for
// the back-office dashboard.
func (s *Server) HandleAdminStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.requireModerator(r); err != nil {
			respondError(w, err)
			return
		}

		counts, err := s.DB.EntityCounts(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		topTags, err := s.DB.PopularTags(r.Context(), 10)
		if err != nil {
			respondError(w, err)
			return
		}

		respondEnvelope(w, map[string]interface{}{
			"counts":  counts,
			"topTags": topTags,
		})
	}
}

// HandleAdminUsers lists accounts for the back-office.
func (s *Server) HandleAdminUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.requireModerator(r); err != nil {
			respondError(w, err)
			return
		}

		limit, offset := parseListParams(r)
		users, err := s.DB.GetAllUsers(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondEnvelope(w, users)
	}
}

// HandleAdminSettings serves GET (all settings) and PUT (upsert one).
func (s *Server) HandleAdminSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.requireModerator(r); err != nil {
			respondError(w, err)
			return
		}

		switch r.Method {
		case http.MethodGet:
			settings, err := s.DB.GetSettings(r.Context())
			if err != nil {
				respondError(w, err)
				return
			}
			respondEnvelope(w, settings)

		case http.MethodPut:
			var req struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if strings.TrimSpace(req.Key) == "" {
				respondError(w, utils.NewAppError(utils.ErrInvalidInput, "setting key is required", nil))
				return
			}
			if err := s.DB.PutSetting(r.Context(), req.Key, req.Value); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleHealth is the liveness probe.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
