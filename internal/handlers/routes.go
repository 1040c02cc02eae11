package handlers

import (
	"net/http"

	"sloboda/internal/metrics"
	"sloboda/internal/middleware"
)

// Routes builds the full HTTP surface. Session-protected routes go
// through RequireAuth; public reads use OptionalAuth so a logged-in
// caller still sees their own votes.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	cors := middleware.DefaultCORSConfig(s.Config.AllowedOrigins)

	public := func(route string, handler http.HandlerFunc) http.HandlerFunc {
		return middleware.ApplyCORS(instrumented(route, s.Sessions.OptionalAuth(handler)), cors)
	}
	protected := func(route string, handler http.HandlerFunc) http.HandlerFunc {
		return middleware.ApplyCORS(instrumented(route, s.Sessions.RequireAuth(handler)), cors)
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", public("/api/auth/register", s.HandleRegister()))
	mux.HandleFunc("POST /api/auth/login", public("/api/auth/login", s.HandleLogin()))
	mux.HandleFunc("POST /api/auth/logout", public("/api/auth/logout", s.HandleLogout()))
	mux.HandleFunc("GET /api/users/me", protected("/api/users/me", s.HandleMe()))
	mux.HandleFunc("POST /api/users/me/avatar", protected("/api/users/me/avatar", s.HandleAvatarUpload()))

	// Forum
	mux.HandleFunc("GET /api/forum/threads", public("/api/forum/threads", s.HandleThreads()))
	mux.HandleFunc("POST /api/forum/threads", protected("/api/forum/threads", s.HandleThreads()))
	mux.HandleFunc("GET /api/forum/threads/{id}", public("/api/forum/threads/{id}", s.HandleThreadByID()))
	mux.HandleFunc("PUT /api/forum/threads/{id}", protected("/api/forum/threads/{id}", s.HandleThreadByID()))
	mux.HandleFunc("DELETE /api/forum/threads/{id}", protected("/api/forum/threads/{id}", s.HandleThreadByID()))
	mux.HandleFunc("POST /api/forum/threads/{id}/pin", protected("/api/forum/threads/{id}/pin", s.HandleThreadPin()))
	mux.HandleFunc("POST /api/forum/threads/{id}/lock", protected("/api/forum/threads/{id}/lock", s.HandleThreadLock()))
	mux.HandleFunc("PUT /api/forum/threads/{id}/tags", protected("/api/forum/threads/{id}/tags", s.HandleThreadTags()))
	mux.HandleFunc("GET /api/forum/threads/{id}/comments", public("/api/forum/threads/{id}/comments", s.HandleThreadComments()))

	mux.HandleFunc("POST /api/comments", protected("/api/comments", s.HandleComments()))
	mux.HandleFunc("PUT /api/comments/{id}", protected("/api/comments/{id}", s.HandleCommentByID()))
	mux.HandleFunc("DELETE /api/comments/{id}", protected("/api/comments/{id}", s.HandleCommentByID()))

	mux.HandleFunc("POST /api/votes", protected("/api/votes", s.HandleVotes()))

	mux.HandleFunc("GET /api/roles/user/me", protected("/api/roles/user/me", s.HandleMyRole()))
	mux.HandleFunc("POST /api/forum/roles/promote/{userId}", protected("/api/forum/roles/promote/{userId}", s.HandlePromote()))
	mux.HandleFunc("POST /api/forum/roles/demote/{userId}", protected("/api/forum/roles/demote/{userId}", s.HandleDemote()))

	// Tags
	mux.HandleFunc("GET /api/tags/popular", public("/api/tags/popular", s.HandlePopularTags()))
	mux.HandleFunc("GET /api/tags/search", public("/api/tags/search", s.HandleSearchTags()))
	mux.HandleFunc("GET /api/tags/related", public("/api/tags/related", s.HandleRelatedTags()))
	mux.HandleFunc("GET /api/tags/categories", public("/api/tags/categories", s.HandleTagCategories()))

	// Categories
	mux.HandleFunc("GET /api/categories", public("/api/categories", s.HandleCategories()))
	mux.HandleFunc("POST /api/categories", protected("/api/categories", s.HandleCategories()))
	mux.HandleFunc("PUT /api/categories/{id}", protected("/api/categories/{id}", s.HandleCategoryByID()))
	mux.HandleFunc("DELETE /api/categories/{id}", protected("/api/categories/{id}", s.HandleCategoryByID()))

	// Events
	mux.HandleFunc("GET /api/events", public("/api/events", s.HandleEvents()))
	mux.HandleFunc("POST /api/events", protected("/api/events", s.HandleEvents()))
	mux.HandleFunc("GET /api/events/{id}", public("/api/events/{id}", s.HandleEventByID()))
	mux.HandleFunc("PUT /api/events/{id}", protected("/api/events/{id}", s.HandleEventByID()))
	mux.HandleFunc("DELETE /api/events/{id}", protected("/api/events/{id}", s.HandleEventByID()))
	mux.HandleFunc("POST /api/events/{id}/rsvp", protected("/api/events/{id}/rsvp", s.HandleRSVP()))

	// Campaigns
	mux.HandleFunc("GET /api/campaigns", public("/api/campaigns", s.HandleCampaigns()))
	mux.HandleFunc("POST /api/campaigns", protected("/api/campaigns", s.HandleCampaigns()))
	mux.HandleFunc("GET /api/campaigns/{id}", public("/api/campaigns/{id}", s.HandleCampaignByID()))
	mux.HandleFunc("POST /api/campaigns/{id}/close", protected("/api/campaigns/{id}/close", s.HandleCampaignClose()))
	mux.HandleFunc("POST /api/campaigns/{id}/donate", protected("/api/campaigns/{id}/donate", s.HandleDonate()))

	// Uploads
	mux.HandleFunc("POST /api/uploads", protected("/api/uploads", s.HandleUpload()))

	// Notifications
	mux.HandleFunc("GET /api/notifications", protected("/api/notifications", s.HandleNotifications()))
	mux.HandleFunc("POST /api/notifications/{id}/read", protected("/api/notifications/{id}/read", s.HandleNotificationRead()))
	mux.HandleFunc("GET /ws/notifications", s.Sessions.RequireAuth(s.HandleNotificationSocket()))

	// Admin
	mux.HandleFunc("GET /api/admin/stats", protected("/api/admin/stats", s.HandleAdminStats()))
	mux.HandleFunc("GET /api/admin/users", protected("/api/admin/users", s.HandleAdminUsers()))
	mux.HandleFunc("GET /api/admin/settings", protected("/api/admin/settings", s.HandleAdminSettings()))
	mux.HandleFunc("PUT /api/admin/settings", protected("/api/admin/settings", s.HandleAdminSettings()))

	// Operational
	mux.HandleFunc("GET /health", instrumented("/health", s.HandleHealth()))
	if s.Config.Server.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return mux
}
