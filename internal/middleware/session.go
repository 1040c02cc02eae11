// internal/middleware/session.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sloboda/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the session token claims for our application
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates session tokens. The token is a JWT
// carried in an HTTP-only cookie; a Bearer header is accepted as a
// fallback for non-browser clients.
type SessionManager struct {
	secret     []byte
	cookieName string
	lifetime   time.Duration
}

func NewSessionManager(cfg *config.AuthConfig) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.JWTSecret),
		cookieName: cfg.CookieName,
		lifetime:   time.Duration(cfg.TokenLifetime) * time.Hour,
	}
}

// GenerateToken creates a new session token for the given user ID
func (m *SessionManager) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "sloboda-api",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates the provided session token
func (m *SessionManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// SetSessionCookie writes the session cookie on a successful login.
func (m *SessionManager) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.lifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on logout.
func (m *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest pulls the session token from the cookie, falling back
// to an Authorization: Bearer header.
func (m *SessionManager) tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	return "", false
}

// RequireAuth rejects requests without a valid session and puts the user
// ID in the request context.
func (m *SessionManager) RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := m.tokenFromRequest(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		claims, err := m.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}
		if time.Now().After(claims.ExpiresAt.Time) {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		handler(w, r.WithContext(SetUserIDInContext(r.Context(), claims.UserID)))
	}
}

// OptionalAuth puts the user ID in the context when a valid session is
// present but lets anonymous requests through. Listing endpoints use it
// to include the caller's own votes.
func (m *SessionManager) OptionalAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokenString, ok := m.tokenFromRequest(r); ok {
			if claims, err := m.ValidateToken(tokenString); err == nil && time.Now().Before(claims.ExpiresAt.Time) {
				r = r.WithContext(SetUserIDInContext(r.Context(), claims.UserID))
			}
		}
		handler(w, r)
	}
}

// Define a custom context key type to avoid collisions
type contextKey string

// UserIDKey is the key used to store the user ID in the context
const UserIDKey contextKey = "user_id"

// SetUserIDInContext saves the user ID in the request context
func SetUserIDInContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID from the context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
