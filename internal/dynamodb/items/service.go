package items

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/services"
	"philcali.me/movies/internal/dynamodb/token"
)

const RESOURCE_NAME = "ListItem"

func PartitionName(listId string) string {
	return RESOURCE_NAME + ":" + listId
}

func NewListItemService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ListItemRepository {
	return &services.ListItemDynamoDBService{
		DynamoDB:     client,
		TableName:    tableName,
		PurgeWorkers: 4,
		BatchRetries: 5,
		Partition: func(listId string) *services.RepositoryDynamoDBService[data.ListItemDTO, data.ListItemInputDTO] {
			return &services.RepositoryDynamoDBService[data.ListItemDTO, data.ListItemInputDTO]{
				DynamoDB:       client,
				TableName:      tableName,
				TokenMarshaler: marshaler,
				Name:           PartitionName(listId),
				Resource:       "movie",
				Shim: func(pk, sk string) data.ListItemDTO {
					return data.ListItemDTO{PK: pk, SK: sk}
				},
				OnCreate: func(input data.ListItemInputDTO, now time.Time, pk, sk string) data.ListItemDTO {
					item := data.ListItemDTO{
						PK:         pk,
						SK:         sk,
						ListId:     listId,
						ImdbId:     sk,
						Poster:     input.Poster,
						CreateTime: now,
						UpdateTime: now,
					}
					if input.Title != nil {
						item.Title = *input.Title
					}
					if input.Year != nil {
						item.Year = *input.Year
					}
					if input.Type != nil {
						item.Type = *input.Type
					}
					return item
				},
			}
		},
	}
}
