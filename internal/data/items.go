package data

import (
	"context"
	"time"
)

// ListItemDTO is a denormalized copy of a movie stored under the list's item partition.
// The sort key is the IMDb id, which keeps a movie unique within a list.
type ListItemDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	ListId     string    `dynamodbav:"listId"`
	ImdbId     string    `dynamodbav:"imdbId"`
	Title      string    `dynamodbav:"title"`
	Year       string    `dynamodbav:"year"`
	Type       string    `dynamodbav:"type"`
	Poster     *string   `dynamodbav:"poster"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type ListItemInputDTO struct {
	ImdbId *string `dynamodbav:"imdbId"`
	Title  *string `dynamodbav:"title"`
	Year   *string `dynamodbav:"year"`
	Type   *string `dynamodbav:"type"`
	Poster *string `dynamodbav:"poster"`
}

type ListItemRepository interface {
	List(ctx context.Context, accountId string, listId string, params QueryParams) (QueryResults[ListItemDTO], error)
	Get(ctx context.Context, accountId string, listId string, imdbId string) (ListItemDTO, error)
	Add(ctx context.Context, accountId string, listId string, input ListItemInputDTO) (ListItemDTO, error)
	Remove(ctx context.Context, accountId string, listId string, imdbId string) error
	Count(ctx context.Context, accountId string, listId string) (int, error)
	Purge(ctx context.Context, accountId string, listId string) (int, error)
}
