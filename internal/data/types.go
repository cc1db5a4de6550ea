package data

import "context"

const DEFAULT_LIMIT = int32(100)

type QueryParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := DEFAULT_LIMIT
	if q.Limit > 0 && q.Limit < int(DEFAULT_LIMIT) {
		limit = int32(q.Limit)
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken"`
}

type NextToken map[string]map[string]string

type Repository[T interface{}, I interface{}] interface {
	List(ctx context.Context, accountId string, params QueryParams) (QueryResults[T], error)
	ListByIndex(ctx context.Context, accountId string, indexName string, params QueryParams) (QueryResults[T], error)
	Get(ctx context.Context, accountId string, itemId string) (T, error)
	Create(ctx context.Context, accountId string, input I) (T, error)
	CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error)
	Update(ctx context.Context, accountId string, itemId string, input I) (T, error)
	Delete(ctx context.Context, accountId string, itemId string) error
}
