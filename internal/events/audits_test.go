package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/audits"
	"philcali.me/movies/internal/dynamodb/token"
	"philcali.me/movies/internal/test"
)

func NewAuditRepository(t *testing.T) data.AuditRepository {
	client, tableName := test.NewLocalTable(t, test.LOCAL_DDB_PORT+4)
	return audits.NewAuditService(tableName, client, token.NewGCM())
}

func lifecycle(keys func(image map[string]events.DynamoDBAttributeValue), oldName, newName string) []events.DynamoDBEventRecord {
	image := func(name string) map[string]events.DynamoDBAttributeValue {
		img := map[string]events.DynamoDBAttributeValue{
			"name": events.NewStringAttribute(name),
		}
		keys(img)
		return img
	}
	return []events.DynamoDBEventRecord{
		{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: image(oldName),
			},
		},
		{
			EventName: "MODIFY",
			Change: events.DynamoDBStreamRecord{
				OldImage: image(oldName),
				NewImage: image(newName),
			},
		},
		{
			EventName: "REMOVE",
			Change: events.DynamoDBStreamRecord{
				OldImage: image(newName),
			},
		},
	}
}

func TestAuditFilter(t *testing.T) {
	handler := DefaultAuditHandler(nil)
	for _, pk := range []string{"moviebuff:MovieList", "moviebuff:ListItem:abc", "Global:ApiToken", "moviebuff:Subscription"} {
		record := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: map[string]events.DynamoDBAttributeValue{
					"PK": events.NewStringAttribute(pk),
					"SK": events.NewStringAttribute("abc"),
				},
			},
		}
		if !handler.Filter(record) {
			t.Fatalf("Expected %s to filter", pk)
		}
	}
	for _, pk := range []string{"Global:User", "moviebuff:Audit", "garbage"} {
		record := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: map[string]events.DynamoDBAttributeValue{
					"PK": events.NewStringAttribute(pk),
				},
			},
		}
		if handler.Filter(record) {
			t.Fatalf("Expected %s not to filter", pk)
		}
	}
}

func TestAudits(t *testing.T) {
	auditData := NewAuditRepository(t)
	ctx := context.TODO()

	t.Run("AuditHandler", func(t *testing.T) {
		handler := DefaultAuditHandler(auditData)

		t.Run("MovieListAudit", func(t *testing.T) {
			id := uuid.NewString()
			accountId := uuid.NewString()
			pk := fmt.Sprintf("%s:MovieList", accountId)
			records := lifecycle(func(image map[string]events.DynamoDBAttributeValue) {
				image["SK"] = events.NewStringAttribute(id)
				image["PK"] = events.NewStringAttribute(pk)
			}, "Watch Later", "Watch Soon")

			for _, record := range records {
				if !handler.Filter(record) {
					t.Fatalf("Expected true for %v", record)
				}
				err := handler.Apply(ctx, record)
				if err != nil {
					t.Fatalf("Failed to create audit entry for %v: %v", record, err)
				}
				listEntry, err := auditData.List(ctx, accountId, data.QueryParams{
					Limit: 1,
				})
				if err != nil {
					t.Fatalf("Failed to list audit entry for %v", err)
				}
				item := listEntry.Items[0]
				var action string
				switch record.EventName {
				case "INSERT":
					action = "CREATED"
				case "MODIFY":
					action = "UPDATED"
				case "REMOVE":
					action = "DELETED"
				}
				if item.Action != action {
					t.Fatalf("Expected %s, but got %s", action, item.Action)
				}
				if item.ResourceType != "MovieList" {
					t.Fatalf("Expected type to be 'MovieList', but got %s", item.ResourceType)
				}
				if item.ResourceId != id {
					t.Fatalf("Expected resource Id to be %s, but got %s", id, item.ResourceId)
				}
				if err := handler.Audit.Delete(ctx, accountId, item.SK); err != nil {
					t.Fatalf("Expected no error, but got %v", err)
				}
			}
		})

		t.Run("ApiTokenAudit", func(t *testing.T) {
			id := uuid.NewString()
			accountId := uuid.NewString()
			records := lifecycle(func(image map[string]events.DynamoDBAttributeValue) {
				image["SK"] = events.NewStringAttribute(id)
				image["PK"] = events.NewStringAttribute("Global:ApiToken")
				image["GS1-PK"] = events.NewStringAttribute(accountId + ":ApiToken")
				image["accountId"] = events.NewStringAttribute(accountId)
			}, "CLI Token", "Renamed Token")

			for _, record := range records {
				if !handler.Filter(record) {
					t.Fatalf("Expected true for %v", record)
				}
				err := handler.Apply(ctx, record)
				if err != nil {
					t.Fatalf("Failed to create audit entry for %v: %v", record, err)
				}
				listEntry, err := auditData.ListByIndex(ctx, accountId, test.INDEX_NAME, data.QueryParams{
					Limit: 1,
				})
				if err != nil {
					t.Fatalf("Failed to list audit entry for %v", err)
				}
				if len(listEntry.Items) != 1 {
					t.Fatalf("Expected the audit to be filed under %s", accountId)
				}
				item := listEntry.Items[0]
				if item.ResourceType != "ApiToken" {
					t.Fatalf("Expected type to be 'ApiToken', but got %s", item.ResourceType)
				}
				if item.ResourceId != id {
					t.Fatalf("Expected resource Id to be %s, but got %s", id, item.ResourceId)
				}
				if err := handler.Audit.Delete(ctx, accountId, item.SK); err != nil {
					t.Fatalf("Expected no error, but got %v", err)
				}
			}
		})

		t.Run("ListItemModifyIsSkipped", func(t *testing.T) {
			accountId := uuid.NewString()
			records := lifecycle(func(image map[string]events.DynamoDBAttributeValue) {
				image["SK"] = events.NewStringAttribute("tt0133093")
				image["PK"] = events.NewStringAttribute(accountId + ":ListItem:abc")
				image["title"] = events.NewStringAttribute("The Matrix")
			}, "", "")
			if err := handler.Apply(ctx, records[1]); err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			listEntry, err := auditData.List(ctx, accountId, data.QueryParams{})
			if err != nil {
				t.Fatalf("Failed to list audit entry for %v", err)
			}
			if len(listEntry.Items) != 0 {
				t.Fatalf("Expected no audit for a modified item, got %v", listEntry.Items)
			}
		})
	})
}
