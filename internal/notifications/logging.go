package notifications

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LoggingService stands in for a topic when none is configured, as when running locally.
type LoggingService struct {
	Logger *slog.Logger
}

func (ls *LoggingService) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	id := uuid.NewString()
	ls.Logger.Info("subscribe", "account", input.AccountId, "subscriberId", id)
	return &SubscribeOutput{SubscriberId: id}, nil
}

func (ls *LoggingService) Unsubscribe(ctx context.Context, subscriberId string) error {
	ls.Logger.Info("unsubscribe", "subscriberId", subscriberId)
	return nil
}

func (ls *LoggingService) Publish(ctx context.Context, input PublishInput) error {
	ls.Logger.Info("publish", "account", input.AccountId, "subject", input.Subject)
	return nil
}
