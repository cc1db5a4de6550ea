package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/dynamodb/items"
	"philcali.me/movies/internal/dynamodb/lists"
	"philcali.me/movies/internal/notifications"
)

type ActivityMessage struct {
	Subject string
	Message string
}

type ActivityFormat func(key StreamKey, record events.DynamoDBEventRecord) *ActivityMessage

func _listActivity(key StreamKey, record events.DynamoDBEventRecord) *ActivityMessage {
	name := _stringAttribute(_getRecordImage(record), "name")
	switch record.EventName {
	case INSERT:
		return &ActivityMessage{
			Subject: fmt.Sprintf("New list: %s", name),
			Message: fmt.Sprintf("You created the movie list %s.", name),
		}
	case REMOVE:
		return &ActivityMessage{
			Subject: fmt.Sprintf("List deleted: %s", name),
			Message: fmt.Sprintf("The movie list %s was deleted.", name),
		}
	}
	return nil
}

func _itemActivity(key StreamKey, record events.DynamoDBEventRecord) *ActivityMessage {
	if record.EventName != INSERT {
		return nil
	}
	image := record.Change.NewImage
	title := _stringAttribute(image, "title")
	year := _stringAttribute(image, "year")
	return &ActivityMessage{
		Subject: fmt.Sprintf("Added %s", title),
		Message: fmt.Sprintf("%s (%s) was added to one of your lists.", title, year),
	}
}

// ActivityNotificationHandler publishes list activity to the account's subscribers.
type ActivityNotificationHandler struct {
	Notifications notifications.NotificationService
	Formats       map[string]ActivityFormat
}

func (ah *ActivityNotificationHandler) Filter(record events.DynamoDBEventRecord) bool {
	key, ok := ParseStreamKey(record)
	if !ok {
		return false
	}
	format, ok := ah.Formats[key.Resource]
	return ok && format(key, record) != nil
}

func (ah *ActivityNotificationHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	key, _ := ParseStreamKey(record)
	activity := ah.Formats[key.Resource](key, record)
	if activity == nil {
		return nil
	}
	return ah.Notifications.Publish(ctx, notifications.PublishInput{
		AccountId: key.AccountId,
		Subject:   activity.Subject,
		Message:   activity.Message,
	})
}

func DefaultActivityHandler(service notifications.NotificationService) *ActivityNotificationHandler {
	return &ActivityNotificationHandler{
		Notifications: service,
		Formats: map[string]ActivityFormat{
			lists.RESOURCE_NAME: _listActivity,
			items.RESOURCE_NAME: _itemActivity,
		},
	}
}
