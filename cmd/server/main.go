package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"philcali.me/movies/internal/app"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/logging"
	"philcali.me/movies/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	logger := logging.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := app.NewClients(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create clients: %s", err)
	}
	handler := server.NewHandler(clients.LocalRouter(), server.Identity{
		Username: cfg.Local.Username,
		Email:    cfg.Local.Email,
		Scopes:   data.AllScopes(),
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Local.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	logger.Info("listening", "addr", cfg.Local.ListenAddr, "username", cfg.Local.Username)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %s", err)
	}
}
