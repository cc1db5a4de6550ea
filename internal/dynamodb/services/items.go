package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sourcegraph/conc/pool"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
)

// DynamoDB rejects batch writes with more than 25 requests.
const MAX_BATCH_WRITE = 25

type ListItemPartition func(listId string) *RepositoryDynamoDBService[data.ListItemDTO, data.ListItemInputDTO]

// ListItemDynamoDBService stores the movies of a list in their own partition,
// keyed by IMDb id: <accountId>:ListItem:<listId> / <imdbId>.
type ListItemDynamoDBService struct {
	DynamoDB     *dynamodb.Client
	TableName    string
	Partition    ListItemPartition
	PurgeWorkers int
	BatchRetries uint
}

func (ls *ListItemDynamoDBService) List(ctx context.Context, accountId string, listId string, params data.QueryParams) (data.QueryResults[data.ListItemDTO], error) {
	return ls.Partition(listId).List(ctx, accountId, params)
}

func (ls *ListItemDynamoDBService) Get(ctx context.Context, accountId string, listId string, imdbId string) (data.ListItemDTO, error) {
	return ls.Partition(listId).Get(ctx, accountId, imdbId)
}

func (ls *ListItemDynamoDBService) Add(ctx context.Context, accountId string, listId string, input data.ListItemInputDTO) (data.ListItemDTO, error) {
	if input.ImdbId == nil || *input.ImdbId == "" {
		return data.ListItemDTO{}, exceptions.InvalidInput("An imdbId is required to add a movie to a list.")
	}
	created, err := ls.Partition(listId).CreateWithItemId(ctx, accountId, input, *input.ImdbId)
	if exceptions.IsConflict(err) {
		return created, exceptions.AlreadyInList(listId, *input.ImdbId)
	}
	return created, err
}

// Remove deletes the movie from the list. Removing a movie that is not in the list is not an error.
func (ls *ListItemDynamoDBService) Remove(ctx context.Context, accountId string, listId string, imdbId string) error {
	return ls.Partition(listId).Delete(ctx, accountId, imdbId)
}

func (ls *ListItemDynamoDBService) Count(ctx context.Context, accountId string, listId string) (int, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ls.Partition(listId).PartitionKey(accountId)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return 0, err
	}
	paginator := dynamodb.NewQueryPaginator(ls.DynamoDB, &dynamodb.QueryInput{
		TableName:                 aws.String(ls.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	})
	count := 0
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return count, err
		}
		count += int(output.Count)
	}
	return count, nil
}

func (ls *ListItemDynamoDBService) keys(ctx context.Context, accountId string, listId string) ([]map[string]types.AttributeValue, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ls.Partition(listId).PartitionKey(accountId)))
	projection := expression.NamesList(expression.Name("PK"), expression.Name("SK"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).WithProjection(projection).Build()
	if err != nil {
		return nil, err
	}
	paginator := dynamodb.NewQueryPaginator(ls.DynamoDB, &dynamodb.QueryInput{
		TableName:                 aws.String(ls.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var keys []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, output.Items...)
	}
	return keys, nil
}

func (ls *ListItemDynamoDBService) deleteBatch(ctx context.Context, keys []map[string]types.AttributeValue) error {
	attempts := ls.BatchRetries
	if attempts == 0 {
		attempts = 3
	}
	requests := make([]types.WriteRequest, len(keys))
	for i, key := range keys {
		requests[i] = types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: key}}
	}
	return retry.Do(
		func() error {
			output, err := ls.DynamoDB.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{ls.TableName: requests},
			})
			if err != nil {
				return retry.Unrecoverable(err)
			}
			requests = output.UnprocessedItems[ls.TableName]
			if len(requests) > 0 {
				return fmt.Errorf("%d list items were left unprocessed", len(requests))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// Purge deletes every movie in the list and returns how many were removed.
func (ls *ListItemDynamoDBService) Purge(ctx context.Context, accountId string, listId string) (int, error) {
	keys, err := ls.keys(ctx, accountId, listId)
	if err != nil {
		return 0, err
	}
	workers := ls.PurgeWorkers
	if workers <= 0 {
		workers = 1
	}
	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers).WithCancelOnError()
	for start := 0; start < len(keys); start += MAX_BATCH_WRITE {
		end := min(start+MAX_BATCH_WRITE, len(keys))
		batch := keys[start:end]
		p.Go(func(ctx context.Context) error {
			return ls.deleteBatch(ctx, batch)
		})
	}
	if err := p.Wait(); err != nil {
		return 0, fmt.Errorf("failed to purge list %s: %w", listId, err)
	}
	return len(keys), nil
}
