package events

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/notifications"
)

type recordingNotifications struct {
	published []notifications.PublishInput
}

func (rn *recordingNotifications) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	return &notifications.SubscribeOutput{SubscriberId: "arn"}, nil
}

func (rn *recordingNotifications) Unsubscribe(ctx context.Context, subscriberId string) error {
	return nil
}

func (rn *recordingNotifications) Publish(ctx context.Context, input notifications.PublishInput) error {
	rn.published = append(rn.published, input)
	return nil
}

func TestActivityNotifications(t *testing.T) {
	recorder := &recordingNotifications{}
	handler := DefaultActivityHandler(recorder)

	itemInsert := events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("moviebuff:ListItem:abc-123"),
				"SK": events.NewStringAttribute("tt0133093"),
			},
			NewImage: map[string]events.DynamoDBAttributeValue{
				"title": events.NewStringAttribute("The Matrix"),
				"year":  events.NewStringAttribute("1999"),
			},
		},
	}
	itemRemove := itemInsert
	itemRemove.EventName = "REMOVE"
	listModify := events.DynamoDBEventRecord{
		EventName: "MODIFY",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("moviebuff:MovieList"),
				"SK": events.NewStringAttribute("abc-123"),
			},
		},
	}
	listRemoved := listRemove("moviebuff", "abc-123")

	if !handler.Filter(itemInsert) || !handler.Filter(listRemoved) {
		t.Fatalf("Expected item insert and list removal to filter")
	}

	if handler.Filter(itemRemove) || handler.Filter(listModify) {
		t.Fatalf("Expected item removal and list modify not to filter")
	}

	for _, record := range []events.DynamoDBEventRecord{itemInsert, listRemoved} {
		if err := handler.Apply(context.TODO(), record); err != nil {
			t.Fatalf("Failed to publish %v: %v", record, err)
		}
	}

	if len(recorder.published) != 2 {
		t.Fatalf("Expected 2 published messages, got %d", len(recorder.published))
	}

	for _, published := range recorder.published {
		if published.AccountId != "moviebuff" {
			t.Fatalf("Expected message tagged with moviebuff, got %s", published.AccountId)
		}
	}

	if !strings.Contains(recorder.published[0].Message, "The Matrix (1999)") {
		t.Fatalf("Unexpected message: %s", recorder.published[0].Message)
	}

	if !strings.Contains(recorder.published[1].Subject, "Watch Later") {
		t.Fatalf("Unexpected subject: %s", recorder.published[1].Subject)
	}
}
