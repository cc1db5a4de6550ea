package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/movies/internal/app"
	"philcali.me/movies/internal/auth"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/dynamodb/apitokens"
	"philcali.me/movies/internal/dynamodb/token"
	"philcali.me/movies/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %s", err))
	}
	logger := logging.NewLogger(cfg.Log)
	awsCfg, err := app.LoadAWSConfig(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to load AWS config: %s", err))
	}
	client := dynamodb.NewFromConfig(awsCfg)
	tokens := apitokens.NewApiTokenService(cfg.TableName, client, token.NewGCM())
	authorizer := auth.NewAuthorizer(cfg.AuthPoolURL, tokens, logger)
	lambda.Start(authorizer.HandleRequest)
}
