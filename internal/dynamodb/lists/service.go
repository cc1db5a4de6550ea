package lists

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/services"
	"philcali.me/movies/internal/dynamodb/token"
)

const RESOURCE_NAME = "MovieList"

func NewMovieListService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.MovieListRepository {
	return &services.RepositoryDynamoDBService[data.MovieListDTO, data.MovieListInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           RESOURCE_NAME,
		Resource:       "list",
		Shim: func(pk, sk string) data.MovieListDTO {
			return data.MovieListDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.MovieListInputDTO, now time.Time, pk, sk string) data.MovieListDTO {
			list := data.MovieListDTO{
				PK:         pk,
				SK:         sk,
				Owner:      input.Owner,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Name != nil {
				list.Name = strings.TrimSpace(*input.Name)
			}
			if input.IsDefault != nil {
				list.IsDefault = *input.IsDefault
			}
			if input.IsPublic != nil {
				list.IsPublic = *input.IsPublic
			}
			return list
		},
		OnUpdate: func(input data.MovieListInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(strings.TrimSpace(*input.Name)))
			}
			if input.IsPublic != nil {
				update = update.Set(expression.Name("isPublic"), expression.Value(*input.IsPublic))
			}
			return update
		},
	}
}
