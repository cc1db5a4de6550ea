package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"philcali.me/movies/internal/app"
	"philcali.me/movies/internal/cli"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/logging"
	"philcali.me/movies/internal/routes"
)

func main() {
	_ = godotenv.Load(".env")
	factory := func(ctx context.Context) (*routes.Router, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		clients, err := app.NewClients(ctx, cfg, logging.NewLogger(cfg.Log))
		if err != nil {
			return nil, err
		}
		return clients.LocalRouter(), nil
	}
	if err := cli.NewRootCommand(factory, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
