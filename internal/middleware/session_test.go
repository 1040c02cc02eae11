package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sloboda/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionManager() *SessionManager {
	return NewSessionManager(&config.AuthConfig{
		JWTSecret:     "test-secret",
		CookieName:    "sloboda_session",
		TokenLifetime: 1,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testSessionManager()
	userID := uuid.New()

	token, err := m.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "sloboda-api", claims.Issuer)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	m := testSessionManager()
	other := NewSessionManager(&config.AuthConfig{
		JWTSecret:     "different-secret",
		CookieName:    "sloboda_session",
		TokenLifetime: 1,
	})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestRequireAuthFromCookie(t *testing.T) {
	m := testSessionManager()
	userID := uuid.New()
	token, err := m.GenerateToken(userID)
	require.NoError(t, err)

	var gotID uuid.UUID
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.AddCookie(&http.Cookie{Name: "sloboda_session", Value: token})
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotID)
}

func TestRequireAuthFromBearerHeader(t *testing.T) {
	m := testSessionManager()
	token, err := m.GenerateToken(uuid.New())
	require.NoError(t, err)

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	m := testSessionManager()
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	r := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	m := testSessionManager()
	var hasUser bool
	handler := m.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		_, hasUser = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/threads", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hasUser)
}

func TestSetAndClearSessionCookie(t *testing.T) {
	m := testSessionManager()

	w := httptest.NewRecorder()
	m.SetSessionCookie(w, "token-value")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sloboda_session", cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = httptest.NewRecorder()
	m.ClearSessionCookie(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
