package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sloboda/internal/forum"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// CategoryRequest represents category create and update bodies
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// categorySlug derives the URL slug for a category name. A name with no
// sluggable characters (digits, Latin or Cyrillic letters) would collide
// on the empty string, so it is rejected up front.
func categorySlug(name string) (string, error) {
	slug := forum.Slugify(name)
	if slug == "" {
		return "", utils.NewAppError(utils.ErrInvalidInput, "category name must contain letters or digits", nil)
	}
	return slug, nil
}

// HandleCategories serves GET (list) and POST (create, moderator only).
func (s *Server) HandleCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categories, err := s.DB.ListCategories(r.Context())
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, categories)

		case http.MethodPost:
			if err := s.requireModerator(r); err != nil {
				respondError(w, err)
				return
			}
			var req CategoryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			if strings.TrimSpace(req.Name) == "" {
				respondError(w, utils.NewAppError(utils.ErrInvalidInput, "category name is required", nil))
				return
			}
			slug, err := categorySlug(req.Name)
			if err != nil {
				respondError(w, err)
				return
			}
			category := &models.Category{
				ID:          uuid.New(),
				Name:        req.Name,
				Slug:        slug,
				Description: req.Description,
				SortOrder:   req.SortOrder,
				CreatedAt:   time.Now(),
			}
			if err := s.DB.CreateCategory(r.Context(), category); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, category)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleCategoryByID serves PUT and DELETE for one category. Moderator
// only.
func (s *Server) HandleCategoryByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid category ID format", http.StatusBadRequest)
			return
		}
		if err := s.requireModerator(r); err != nil {
			respondError(w, err)
			return
		}

		switch r.Method {
		case http.MethodPut:
			var req CategoryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			slug, err := categorySlug(req.Name)
			if err != nil {
				respondError(w, err)
				return
			}
			category := &models.Category{
				ID:          categoryID,
				Name:        req.Name,
				Slug:        slug,
				Description: req.Description,
				SortOrder:   req.SortOrder,
			}
			if err := s.DB.UpdateCategory(r.Context(), category); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, category)

		case http.MethodDelete:
			if err := s.DB.DeleteCategory(r.Context(), categoryID); err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "category deleted"})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
