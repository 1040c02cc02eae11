package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"sloboda/internal/utils"
)

func tagLimit(r *http.Request) int {
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return limit
}

// HandlePopularTags returns the most used tags across live threads.
func (s *Server) HandlePopularTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.DB.PopularTags(r.Context(), tagLimit(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondEnvelope(w, tags)
	}
}

// HandleSearchTags returns tags matching a prefix query.
func (s *Server) HandleSearchTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "query parameter q is required", nil))
			return
		}
		tags, err := s.DB.SearchTags(r.Context(), query, tagLimit(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondEnvelope(w, tags)
	}
}

// HandleRelatedTags returns tags that co-occur with the given tag.
func (s *Server) HandleRelatedTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := strings.TrimSpace(r.URL.Query().Get("tag"))
		if tag == "" {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "query parameter tag is required", nil))
			return
		}
		tags, err := s.DB.RelatedTags(r.Context(), tag, tagLimit(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondEnvelope(w, tags)
	}
}

// HandleTagCategories returns per-category tag usage.
func (s *Server) HandleTagCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.DB.TagCategories(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondEnvelope(w, categories)
	}
}
