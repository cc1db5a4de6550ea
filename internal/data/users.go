package data

import "time"

type UserDTO struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	AccountId   string    `dynamodbav:"accountId"`
	Email       *string   `dynamodbav:"email"`
	DisplayName *string   `dynamodbav:"displayName"`
	CreateTime  time.Time `dynamodbav:"createTime"`
	UpdateTime  time.Time `dynamodbav:"updateTime"`
}

type UserInputDTO struct {
	AccountId   *string `dynamodbav:"accountId"`
	Email       *string `dynamodbav:"email"`
	DisplayName *string `dynamodbav:"displayName"`
}

type UserService interface {
	Repository[UserDTO, UserInputDTO]
}
