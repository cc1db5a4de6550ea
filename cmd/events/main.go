package main

import (
	"context"
	"fmt"
	"log/slog"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/movies/internal/app"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/events"
	"philcali.me/movies/internal/logging"
)

type StreamApp struct {
	Handlers []events.EventFilter
	Logger   *slog.Logger
}

func NewStreamApp(ctx context.Context) *StreamApp {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %s", err))
	}
	logger := logging.NewLogger(cfg.Log)
	clients, err := app.NewClients(ctx, cfg, logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to load AWS config: %s", err))
	}
	return &StreamApp{
		Logger: logger,
		Handlers: []events.EventFilter{
			events.NewDefaultListHandler(clients.Lists, logger),
			events.NewDeleteListItemsHandler(clients.Items, logger),
			events.DefaultAuditHandler(clients.Audits),
			events.DefaultActivityHandler(clients.Notifications),
		},
	}
}

// HandleRequest gives every record to each interested handler. A failing
// handler is logged and does not stop the rest of the batch.
func (sa *StreamApp) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	for _, record := range event.Records {
		for _, handler := range sa.Handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				sa.Logger.Error("failed to handle record", "eventId", record.EventID, "eventName", record.EventName, "handler", fmt.Sprintf("%T", handler), "error", err)
			}
		}
	}
	return nil
}

func main() {
	app := NewStreamApp(context.Background())
	lambda.Start(app.HandleRequest)
}
