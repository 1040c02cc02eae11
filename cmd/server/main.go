package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sloboda/internal/config"
	"sloboda/internal/database"
	"sloboda/internal/engine"
	"sloboda/internal/handlers"
	"sloboda/internal/storage"
	"sloboda/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	ctx := context.Background()

	db, err := database.NewPostgresDB(cfg.Database.URI)
	if err != nil {
		slog.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	if err := db.InitializeTables(ctx); err != nil {
		slog.Error("Failed to initialize tables", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		slog.Error("Failed to connect to object storage", "error", err)
		os.Exit(1)
	}

	hub := websocket.NewHub()
	go hub.Run()

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, db, hub)

	server := handlers.NewServer(system, eng, db, store, hub, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", addr, "metrics", cfg.Server.MetricsEnabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown did not complete cleanly", "error", err)
	}
	system.Shutdown()
}
