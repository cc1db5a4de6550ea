package users

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/services"
	"philcali.me/movies/internal/dynamodb/token"
)

// Site Wide Users
const GLOBAL_ACCOUNT = "Global"

const RESOURCE_NAME = "User"

func NewUserService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.UserService {
	return &services.RepositoryDynamoDBService[data.UserDTO, data.UserInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           RESOURCE_NAME,
		Shim: func(pk, sk string) data.UserDTO {
			return data.UserDTO{PK: pk, SK: sk}
		},
		OnCreate: func(uid data.UserInputDTO, createTime time.Time, pk, sk string) data.UserDTO {
			accountId := sk
			if uid.AccountId != nil {
				accountId = *uid.AccountId
			}
			return data.UserDTO{
				PK:          pk,
				SK:          sk,
				AccountId:   accountId,
				Email:       uid.Email,
				DisplayName: uid.DisplayName,
				CreateTime:  createTime,
				UpdateTime:  createTime,
			}
		},
		OnUpdate: func(uid data.UserInputDTO, ub expression.UpdateBuilder) expression.UpdateBuilder {
			if uid.Email != nil {
				ub = ub.Set(expression.Name("email"), expression.Value(uid.Email))
			}
			if uid.DisplayName != nil {
				ub = ub.Set(expression.Name("displayName"), expression.Value(uid.DisplayName))
			}
			return ub
		},
	}
}
