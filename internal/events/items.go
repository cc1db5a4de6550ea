package events

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/lists"
)

// DeleteListItemsHandler purges the item partition of a removed list. Deletes
// through the API already cascade, this covers lists removed any other way.
type DeleteListItemsHandler struct {
	Items  data.ListItemRepository
	Logger *slog.Logger
}

func (dh *DeleteListItemsHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != REMOVE {
		return false
	}
	key, ok := ParseStreamKey(record)
	return ok && key.Resource == lists.RESOURCE_NAME
}

func (dh *DeleteListItemsHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	key, _ := ParseStreamKey(record)
	purged, err := dh.Items.Purge(ctx, key.AccountId, key.ItemId)
	if err != nil {
		return err
	}
	if purged > 0 {
		dh.Logger.Info("purged orphaned list items", "account", key.AccountId, "listId", key.ItemId, "count", purged)
	}
	return nil
}

func NewDeleteListItemsHandler(items data.ListItemRepository, logger *slog.Logger) *DeleteListItemsHandler {
	return &DeleteListItemsHandler{
		Items:  items,
		Logger: logger,
	}
}
