package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/items"
	"philcali.me/movies/internal/dynamodb/token"
	"philcali.me/movies/internal/test"
)

func listRemove(accountId, listId string) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventName: "REMOVE",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute(accountId + ":MovieList"),
				"SK": events.NewStringAttribute(listId),
			},
			OldImage: map[string]events.DynamoDBAttributeValue{
				"name": events.NewStringAttribute("Watch Later"),
			},
		},
	}
}

func TestDeleteListItemsFilter(t *testing.T) {
	handler := NewDeleteListItemsHandler(nil, discardLogger())

	if !handler.Filter(listRemove("moviebuff", "abc-123")) {
		t.Fatalf("Expected list removal to filter")
	}

	insert := listRemove("moviebuff", "abc-123")
	insert.EventName = "INSERT"
	if handler.Filter(insert) {
		t.Fatalf("Expected list insert not to filter")
	}

	itemRemove := events.DynamoDBEventRecord{
		EventName: "REMOVE",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("moviebuff:ListItem:abc-123"),
				"SK": events.NewStringAttribute("tt0133093"),
			},
		},
	}
	if handler.Filter(itemRemove) {
		t.Fatalf("Expected item removal not to filter")
	}
}

func TestDeleteListItemsApply(t *testing.T) {
	client, tableName := test.NewLocalTable(t, test.LOCAL_DDB_PORT+3)
	itemData := items.NewListItemService(tableName, client, token.NewGCM())
	handler := NewDeleteListItemsHandler(itemData, discardLogger())
	ctx := context.TODO()

	for i := 0; i < 30; i++ {
		_, err := itemData.Add(ctx, "moviebuff", "abc-123", data.ListItemInputDTO{
			ImdbId: aws.String(fmt.Sprintf("tt%07d", i)),
			Title:  aws.String(fmt.Sprintf("Movie %d", i)),
		})
		if err != nil {
			t.Fatalf("Failed to add item %d: %v", i, err)
		}
	}

	if err := handler.Apply(ctx, listRemove("moviebuff", "abc-123")); err != nil {
		t.Fatalf("Failed to purge items: %v", err)
	}

	count, err := itemData.Count(ctx, "moviebuff", "abc-123")
	if err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}

	if count != 0 {
		t.Fatalf("Expected the list to be empty, but got %d", count)
	}
}
