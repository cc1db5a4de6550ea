package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/token"
	"philcali.me/movies/internal/exceptions"
)

const FIRST_INDEX_KEY = "GS1-PK"

type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Name           string
	// Resource names the entity in errors; defaults to the lower cased Name.
	Resource string
	Shim     func(pk string, sk string) T
	OnCreate func(I, time.Time, string, string) T
	OnUpdate func(I, expression.UpdateBuilder) expression.UpdateBuilder
}

func PrimaryKey(accountId string, name string) string {
	return fmt.Sprintf("%s:%s", accountId, name)
}

func ItemKey(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func IsConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (rs *RepositoryDynamoDBService[T, I]) resource() string {
	if rs.Resource != "" {
		return rs.Resource
	}
	return strings.ToLower(rs.Name)
}

func (rs *RepositoryDynamoDBService[T, I]) PartitionKey(accountId string) string {
	return PrimaryKey(accountId, rs.Name)
}

func (rs *RepositoryDynamoDBService[T, I]) query(ctx context.Context, accountId string, input *dynamodb.QueryInput, keyEx expression.KeyConditionBuilder, params data.QueryParams) (data.QueryResults[T], error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	startKey, err := rs.TokenMarshaler.Unmarshal(accountId, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, exceptions.InvalidInput("The nextToken parameter is invalid.")
	}
	input.TableName = aws.String(rs.TableName)
	input.Limit = params.GetLimit()
	input.KeyConditionExpression = expr.KeyCondition()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()
	input.ExclusiveStartKey = startKey
	output, err := rs.DynamoDB.Query(ctx, input)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	items := make([]T, 0, len(output.Items))
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[T]{}, err
	}
	nextToken, err := rs.TokenMarshaler.Marshal(accountId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

func (rs *RepositoryDynamoDBService[T, I]) List(ctx context.Context, accountId string, params data.QueryParams) (data.QueryResults[T], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(rs.PartitionKey(accountId)))
	return rs.query(ctx, accountId, &dynamodb.QueryInput{}, keyEx, params)
}

func (rs *RepositoryDynamoDBService[T, I]) ListByIndex(ctx context.Context, accountId string, indexName string, params data.QueryParams) (data.QueryResults[T], error) {
	keyEx := expression.Key(FIRST_INDEX_KEY).Equal(expression.Value(PrimaryKey(accountId, rs.Name)))
	return rs.query(ctx, accountId, &dynamodb.QueryInput{IndexName: aws.String(indexName)}, keyEx, params)
}

func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, accountId string, input I) (T, error) {
	gid, err := uuid.NewUUID()
	if err != nil {
		var empty T
		return empty, err
	}
	return rs.CreateWithItemId(ctx, accountId, input, gid.String())
}

func (rs *RepositoryDynamoDBService[T, I]) CreateWithItemId(ctx context.Context, accountId string, input I, itemId string) (T, error) {
	shim := rs.OnCreate(input, time.Now(), rs.PartitionKey(accountId), itemId)
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if IsConditionFailure(err) {
			return shim, exceptions.Conflict(rs.resource(), itemId)
		}
		return shim, err
	}
	return shim, nil
}

func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, accountId string, itemId string, input I) (T, error) {
	pk := rs.PartitionKey(accountId)
	shim := rs.Shim(pk, itemId)
	key, err := ItemKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now()))
	if rs.OnUpdate != nil {
		update = rs.OnUpdate(input, update)
	}
	condition := expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if IsConditionFailure(err) {
			return shim, exceptions.NotFound(rs.resource(), itemId)
		}
		return shim, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Get(ctx context.Context, accountId string, itemId string) (T, error) {
	pk := rs.PartitionKey(accountId)
	shim := rs.Shim(pk, itemId)
	key, err := ItemKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound(rs.resource(), itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, accountId string, itemId string) error {
	key, err := ItemKey(rs.PartitionKey(accountId), itemId)
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(rs.TableName),
	})
	return err
}
