package audits

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/services"
	"philcali.me/movies/internal/dynamodb/token"
)

const RESOURCE_NAME = "Audit"

func NewAuditService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.AuditRepository {
	return &services.RepositoryDynamoDBService[data.AuditDTO, data.AuditInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           RESOURCE_NAME,
		Shim: func(pk, sk string) data.AuditDTO {
			return data.AuditDTO{PK: pk, SK: sk}
		},
		OnCreate: func(aid data.AuditInputDTO, t time.Time, pk, sk string) data.AuditDTO {
			return data.AuditDTO{
				PK:           pk,
				SK:           sk,
				FirstIndex:   fmt.Sprintf("%s:%s", *aid.AccountId, RESOURCE_NAME),
				Message:      aid.Message,
				ExpiresIn:    aid.ExpiresIn,
				Action:       *aid.Action,
				ResourceId:   *aid.ResourceId,
				ResourceType: *aid.ResourceType,
				CreateTime:   t,
				UpdateTime:   t,
			}
		},
	}
}
