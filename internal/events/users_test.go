package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/lists"
	"philcali.me/movies/internal/dynamodb/token"
	"philcali.me/movies/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func userInsert(username string) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("Global:User"),
				"SK": events.NewStringAttribute(username),
			},
			NewImage: map[string]events.DynamoDBAttributeValue{
				"PK":        events.NewStringAttribute("Global:User"),
				"SK":        events.NewStringAttribute(username),
				"accountId": events.NewStringAttribute(username),
			},
		},
	}
}

func TestDefaultListFilter(t *testing.T) {
	handler := NewDefaultListHandler(nil, discardLogger())

	if !handler.Filter(userInsert("moviebuff")) {
		t.Fatalf("Expected user insert to filter")
	}

	modify := userInsert("moviebuff")
	modify.EventName = "MODIFY"
	if handler.Filter(modify) {
		t.Fatalf("Expected user modify not to filter")
	}

	listInsert := events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("moviebuff:MovieList"),
				"SK": events.NewStringAttribute("abc-123"),
			},
		},
	}
	if handler.Filter(listInsert) {
		t.Fatalf("Expected list insert not to filter")
	}
}

func TestDefaultListId(t *testing.T) {
	if DefaultListId("moviebuff") != DefaultListId("moviebuff") {
		t.Fatalf("Expected the default list id to be stable")
	}
	if DefaultListId("moviebuff") == DefaultListId("critic") {
		t.Fatalf("Expected default list ids to differ per account")
	}
}

func TestDefaultListApply(t *testing.T) {
	client, tableName := test.NewLocalTable(t, test.LOCAL_DDB_PORT+2)
	listData := lists.NewMovieListService(tableName, client, token.NewGCM())
	handler := NewDefaultListHandler(listData, discardLogger())
	ctx := context.TODO()

	if err := handler.Apply(ctx, userInsert("moviebuff")); err != nil {
		t.Fatalf("Unexpected failure for insert: %v", err)
	}

	if err := handler.Apply(ctx, userInsert("moviebuff")); err != nil {
		t.Fatalf("Expected a replayed insert to be skipped: %v", err)
	}

	results, err := listData.List(ctx, "moviebuff", data.QueryParams{Limit: 10})
	if err != nil {
		t.Fatalf("Failed to list movie lists: %v", err)
	}

	if len(results.Items) != 1 {
		t.Fatalf("Expected exactly one default list, got: %v", results.Items)
	}

	list := results.Items[0]
	if !list.IsDefault || list.IsPublic || list.Name != data.DEFAULT_LIST_NAME {
		t.Fatalf("Default list was not created correctly: %v", list)
	}
}
