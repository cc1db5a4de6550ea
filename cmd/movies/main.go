package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/movies/internal/app"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/logging"
	"philcali.me/movies/internal/routes"
)

type App struct {
	Router *routes.Router
}

func NewApp(ctx context.Context) App {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %s", err))
	}
	logger := logging.NewLogger(cfg.Log)
	clients, err := app.NewClients(ctx, cfg, logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to load AWS config: %s", err))
	}
	return App{
		Router: clients.Router(),
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp(context.Background())
	lambda.Start(app.HandleRequest)
}
