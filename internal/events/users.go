package events

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/users"
	"philcali.me/movies/internal/exceptions"
)

// DefaultListId is stable per account, so a replayed user insert collides with
// the list it already created instead of making a second one.
func DefaultListId(accountId string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("moviebuff:default-list:"+accountId)).String()
}

type DefaultListHandler struct {
	Lists  data.MovieListRepository
	Logger *slog.Logger
}

func (dh *DefaultListHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != INSERT {
		return false
	}
	key, ok := ParseStreamKey(record)
	return ok && key.AccountId == users.GLOBAL_ACCOUNT && key.Resource == users.RESOURCE_NAME
}

func (dh *DefaultListHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	key, _ := ParseStreamKey(record)
	accountId := _stringAttribute(record.Change.NewImage, "accountId")
	if accountId == "" {
		accountId = key.ItemId
	}
	return dh.Create(ctx, accountId)
}

// Create makes the default list of accountId, skipping accounts that already have one.
func (dh *DefaultListHandler) Create(ctx context.Context, accountId string) error {
	list, err := dh.Lists.CreateWithItemId(ctx, accountId, data.MovieListInputDTO{
		Name:      aws.String(data.DEFAULT_LIST_NAME),
		IsDefault: aws.Bool(true),
		IsPublic:  aws.Bool(false),
		Owner:     aws.String(accountId),
	}, DefaultListId(accountId))
	if exceptions.IsConflict(err) {
		dh.Logger.Info("default list already exists", "account", accountId)
		return nil
	}
	if err != nil {
		return err
	}
	dh.Logger.Info("created default list", "account", accountId, "listId", list.SK)
	return nil
}

func NewDefaultListHandler(lists data.MovieListRepository, logger *slog.Logger) *DefaultListHandler {
	return &DefaultListHandler{
		Lists:  lists,
		Logger: logger,
	}
}
