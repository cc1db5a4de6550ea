package data

import "time"

const DEFAULT_LIST_NAME = "Favorites"

type MovieListDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Name       string    `dynamodbav:"name"`
	IsDefault  bool      `dynamodbav:"isDefault"`
	IsPublic   bool      `dynamodbav:"isPublic"`
	Owner      *string   `dynamodbav:"owner"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type MovieListInputDTO struct {
	Name      *string `dynamodbav:"name"`
	IsDefault *bool   `dynamodbav:"isDefault"`
	IsPublic  *bool   `dynamodbav:"isPublic"`
	Owner     *string `dynamodbav:"owner"`
}

type MovieListRepository interface {
	Repository[MovieListDTO, MovieListInputDTO]
}
