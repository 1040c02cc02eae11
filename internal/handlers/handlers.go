package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"sloboda/internal/config"
	"sloboda/internal/database"
	"sloboda/internal/engine"
	"sloboda/internal/metrics"
	"sloboda/internal/middleware"
	"sloboda/internal/models"
	"sloboda/internal/storage"
	"sloboda/internal/utils"
	"sloboda/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies: the actor system, the engine with
// the forum actors, and the supporting services.
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	DB             database.Adapter
	Storage        *storage.S3Store
	Hub            *websocket.Hub
	Sessions       *middleware.SessionManager
	UploadGuard    *middleware.UploadGuard
	Config         *config.Config
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	db database.Adapter,
	store *storage.S3Store,
	hub *websocket.Hub,
	cfg *config.Config,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		DB:             db,
		Storage:        store,
		Hub:            hub,
		Sessions:       middleware.NewSessionManager(cfg.Auth),
		UploadGuard:    middleware.NewUploadGuard(cfg.Upload),
		Config:         cfg,
		RequestTimeout: 5 * time.Second,
	}
}

// envelope is the {success, data} wrapper the tag and admin endpoints use.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondEnvelope(w http.ResponseWriter, payload interface{}) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: payload})
}

// respondError maps an error to its HTTP status. Actor replies that are
// *utils.AppError values flow through here too.
func respondError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		respondJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), map[string]string{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// ask sends a message to an actor and waits for the reply. An *AppError
// reply is turned back into an error.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	result, err := s.Context.RequestFuture(pid, msg, s.RequestTimeout).Result()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrActorTimeout, "request timed out", err)
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result, nil
}

// requireModerator checks the caller's tier for endpoints that are not
// routed through an actor.
func (s *Server) requireModerator(r *http.Request) error {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return utils.NewAppError(utils.ErrUnauthorized, "authentication required", nil)
	}
	role, err := s.DB.GetUserRole(r.Context(), userID)
	if err != nil {
		return err
	}
	if role.Level() < models.ModeratorLevel {
		return utils.NewAppError(utils.ErrForbidden, "moderator role required", nil)
	}
	return nil
}

// instrumented wraps a handler with request metrics for one route label.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func instrumented(route string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(rec, r)
		metrics.ObserveRequest(route, rec.status, time.Since(start))
	}
}
