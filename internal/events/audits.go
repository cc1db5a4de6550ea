package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/users"
)

// Five years for things to expire
const EXPIRY_LOG = 5 * 365 * 24 * time.Hour

type AuditMessageFormat func(record events.DynamoDBEventRecord) *string

func _action(record events.DynamoDBEventRecord) string {
	switch record.EventName {
	case INSERT:
		return "created"
	case MODIFY:
		return "updated"
	case REMOVE:
		return "deleted"
	}
	return strings.ToLower(record.EventName)
}

func _formatList(record events.DynamoDBEventRecord) *string {
	image := _getRecordImage(record)
	name := _stringAttribute(image, "name")
	id := _stringAttribute(image, "SK")
	return aws.String(fmt.Sprintf("Movie list %s (%s) was %s", id, name, _action(record)))
}

func _formatListItem(record events.DynamoDBEventRecord) *string {
	if record.EventName == MODIFY {
		return nil
	}
	image := _getRecordImage(record)
	title := _stringAttribute(image, "title")
	listId := _stringAttribute(image, "listId")
	if record.EventName == INSERT {
		return aws.String(fmt.Sprintf("Movie %s was added to list %s", title, listId))
	}
	return aws.String(fmt.Sprintf("Movie %s was removed from list %s", title, listId))
}

func _formatApiToken(record events.DynamoDBEventRecord) *string {
	image := _getRecordImage(record)
	action := _action(record)
	if record.EventName == REMOVE {
		if exp, ok := image["expiresIn"]; ok && exp.DataType() == events.DataTypeNumber {
			millis, err := strconv.ParseInt(exp.Number(), 10, 64)
			if err == nil && millis < time.Now().UnixMilli() {
				action = "expired"
			}
		}
	}
	name := _stringAttribute(image, "name")
	return aws.String(fmt.Sprintf("API token %s was %s", name, action))
}

func _formatSubscription(record events.DynamoDBEventRecord) *string {
	image := _getRecordImage(record)
	endpoint := _stringAttribute(image, "endpoint")
	protocol := _stringAttribute(image, "protocol")
	return aws.String(fmt.Sprintf("Subscription %s (%s) was %s", endpoint, protocol, _action(record)))
}

type CreateAuditEntryHandler struct {
	Audit   data.AuditRepository
	Formats map[string]AuditMessageFormat
}

func (ch *CreateAuditEntryHandler) Filter(record events.DynamoDBEventRecord) bool {
	key, ok := ParseStreamKey(record)
	if !ok {
		return false
	}
	_, ok = ch.Formats[key.Resource]
	return ok
}

// Global resources such as API tokens are filed under the owning account.
func _owner(key StreamKey, record events.DynamoDBEventRecord) string {
	if key.AccountId == users.GLOBAL_ACCOUNT {
		if accountId := _stringAttribute(_getRecordImage(record), "accountId"); accountId != "" {
			return accountId
		}
	}
	return key.AccountId
}

func (ch *CreateAuditEntryHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	key, _ := ParseStreamKey(record)
	format := ch.Formats[key.Resource]
	message := format(record)
	if message == nil {
		return nil
	}
	accountId := _owner(key, record)
	_, err := ch.Audit.Create(ctx, accountId, data.AuditInputDTO{
		Message:      message,
		AccountId:    &accountId,
		Action:       aws.String(strings.ToUpper(_action(record))),
		ResourceId:   aws.String(key.ItemId),
		ResourceType: aws.String(key.Resource),
		ExpiresIn:    aws.Int(int(time.Now().Add(EXPIRY_LOG).UnixMilli())),
	})
	return err
}

func DefaultAuditHandler(db data.AuditRepository) *CreateAuditEntryHandler {
	return &CreateAuditEntryHandler{
		Audit: db,
		Formats: map[string]AuditMessageFormat{
			"MovieList":    _formatList,
			"ListItem":     _formatListItem,
			"ApiToken":     _formatApiToken,
			"Subscription": _formatSubscription,
		},
	}
}
