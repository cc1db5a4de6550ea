package events

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	INSERT = "INSERT"
	MODIFY = "MODIFY"
	REMOVE = "REMOVE"
)

// StreamKey is a parsed partition key of the form <account>:<resource>[:<parent>].
type StreamKey struct {
	AccountId string
	Resource  string
	ParentId  string
	ItemId    string
}

func _getRecordImage(record events.DynamoDBEventRecord) map[string]events.DynamoDBAttributeValue {
	if record.Change.NewImage != nil {
		return record.Change.NewImage
	} else {
		return record.Change.OldImage
	}
}

func _stringAttribute(image map[string]events.DynamoDBAttributeValue, name string) string {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeString {
		return ""
	}
	return value.String()
}

func ParseStreamKey(record events.DynamoDBEventRecord) (StreamKey, bool) {
	pk := _stringAttribute(record.Change.Keys, "PK")
	if pk == "" {
		pk = _stringAttribute(_getRecordImage(record), "PK")
	}
	parts := strings.SplitN(pk, ":", 3)
	if len(parts) < 2 {
		return StreamKey{}, false
	}
	key := StreamKey{
		AccountId: parts[0],
		Resource:  parts[1],
	}
	if len(parts) == 3 {
		key.ParentId = parts[2]
	}
	key.ItemId = _stringAttribute(record.Change.Keys, "SK")
	if key.ItemId == "" {
		key.ItemId = _stringAttribute(_getRecordImage(record), "SK")
	}
	return key, true
}
