package handlers

import (
	"log"
	"net/http"
	"strconv"

	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The session cookie is checked before the upgrade; cross-origin
		// pages cannot read the stream anyway.
		return true
	},
}

// HandleNotifications lists the caller's newest notifications.
func (s *Server) HandleNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
			limit = v
		}
		notifications, err := s.DB.ListNotifications(r.Context(), userID, limit)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, notifications)
	}
}

// HandleNotificationRead marks one of the caller's notifications read.
func (s *Server) HandleNotificationRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid notification ID format", http.StatusBadRequest)
			return
		}
		if err := s.DB.MarkNotificationRead(r.Context(), id, userID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, &models.StatusResponse{Success: true})
	}
}

// HandleNotificationSocket upgrades the connection and streams
// notifications as they arrive.
func (s *Server) HandleNotificationSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Websocket upgrade failed for user %s: %v", userID, err)
			return
		}

		client := websocket.NewClient(s.Hub, userID, conn)
		go client.WritePump()
		go client.ReadPump()
	}
}
