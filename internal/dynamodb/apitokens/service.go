package apitokens

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/services"
	"philcali.me/movies/internal/dynamodb/token"
)

const RESOURCE_NAME = "ApiToken"

func NewApiTokenService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ApiTokenDataService {
	return &services.RepositoryDynamoDBService[data.ApiTokenDTO, data.ApiTokenInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           RESOURCE_NAME,
		Resource:       "token",
		Shim: func(pk, sk string) data.ApiTokenDTO {
			return data.ApiTokenDTO{PK: pk, SK: sk}
		},
		OnCreate: func(atid data.ApiTokenInputDTO, t time.Time, pk, sk string) data.ApiTokenDTO {
			dto := data.ApiTokenDTO{
				PK:         pk,
				SK:         sk,
				FirstIndex: fmt.Sprintf("%s:%s", *atid.AccountId, RESOURCE_NAME),
				Name:       *atid.Name,
				ExpiresIn:  atid.ExpiresIn,
				AccountId:  *atid.AccountId,
				CreateTime: t,
				UpdateTime: t,
			}
			if atid.Scopes != nil {
				dto.Scopes = *atid.Scopes
			}
			if atid.Claims != nil {
				dto.Claims = *atid.Claims
			}
			return dto
		},
		OnUpdate: func(atid data.ApiTokenInputDTO, ub expression.UpdateBuilder) expression.UpdateBuilder {
			if atid.Name != nil {
				ub = ub.Set(expression.Name("name"), expression.Value(atid.Name))
			}
			if atid.ExpiresIn != nil {
				ub = ub.Set(expression.Name("expiresIn"), expression.Value(atid.ExpiresIn))
			}
			return ub
		},
	}
}
