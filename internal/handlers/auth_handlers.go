package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"sloboda/internal/forum"
	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account. New accounts start at the bottom
// of the role ladder.
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || len(req.Password) < 8 {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "username and a password of at least 8 characters are required", nil))
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "invalid email address", nil))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 14)
		if err != nil {
			respondError(w, utils.NewAppError(utils.ErrInvalidInput, "failed to hash password", err))
			return
		}

		now := time.Now()
		user := &models.User{
			ID:             uuid.New(),
			Username:       req.Username,
			Email:          strings.ToLower(req.Email),
			HashedPassword: string(hashed),
			CreatedAt:      now,
			UpdatedAt:      now,
			LastActive:     now,
		}
		if err := s.DB.SaveUser(r.Context(), user); err != nil {
			respondError(w, err)
			return
		}

		log.Printf("Registered user %s (%s)", user.Username, user.ID)
		respondJSON(w, http.StatusCreated, user)
	}
}

// HandleLogin verifies credentials and sets the session cookie.
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		user, err := s.DB.GetUserByEmail(r.Context(), strings.ToLower(req.Email))
		if err != nil {
			// Same response for unknown email and bad password.
			respondError(w, utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
			respondError(w, utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil))
			return
		}

		token, err := s.Sessions.GenerateToken(user.ID)
		if err != nil {
			respondError(w, utils.NewAppError(utils.ErrDatabase, "failed to create session", err))
			return
		}
		s.Sessions.SetSessionCookie(w, token)

		if err := s.DB.UpdateUserActivity(r.Context(), user.ID, true); err != nil {
			log.Printf("Warning: failed to update activity for user %s: %v", user.ID, err)
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"user":  user,
			"token": token,
		})
	}
}

// HandleLogout clears the session cookie.
func (s *Server) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
			if err := s.DB.UpdateUserActivity(r.Context(), userID, false); err != nil {
				log.Printf("Warning: failed to update activity for user %s: %v", userID, err)
			}
		}
		s.Sessions.ClearSessionCookie(w)
		respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "logged out"})
	}
}

// HandleMe returns the caller's profile with role and capabilities.
func (s *Server) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		user, err := s.DB.GetUser(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		role, err := s.DB.GetUserRole(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"user":         user,
			"role":         role,
			"capabilities": forum.CapabilitiesFor(role.Level()),
		})
	}
}
