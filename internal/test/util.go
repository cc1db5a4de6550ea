package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	LOCAL_DDB_PORT = 8000
	TABLE_NAME     = "MovieData"
	INDEX_NAME     = "GS1"
)

// CreateTable creates a uniquely named copy of the movie table so tests sharing
// one DynamoDB Local process never see each other's data.
func CreateTable(client *dynamodb.Client) (string, error) {
	keySchema := []types.KeySchemaElement{
		{
			AttributeName: aws.String("PK"),
			KeyType:       types.KeyTypeHash,
		},
		{
			AttributeName: aws.String("SK"),
			KeyType:       types.KeyTypeRange,
		},
	}
	atrributes := []types.AttributeDefinition{
		{
			AttributeName: aws.String("PK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String("SK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String("GS1-PK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
	}
	indexes := []types.GlobalSecondaryIndex{
		{
			IndexName: aws.String(INDEX_NAME),
			KeySchema: []types.KeySchemaElement{
				{
					AttributeName: aws.String("GS1-PK"),
					KeyType:       types.KeyTypeHash,
				},
				{
					AttributeName: aws.String("SK"),
					KeyType:       types.KeyTypeRange,
				},
			},
			Projection: &types.Projection{
				ProjectionType: types.ProjectionTypeAll,
			},
		},
	}
	output, err := client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName:              aws.String(fmt.Sprintf("%s-%s", TABLE_NAME, uuid.NewString()[:8])),
		KeySchema:              keySchema,
		BillingMode:            types.BillingModePayPerRequest,
		AttributeDefinitions:   atrributes,
		GlobalSecondaryIndexes: indexes,
	})
	if err != nil {
		return "", err
	}
	waiter := dynamodb.NewTableExistsWaiter(client, func(tewo *dynamodb.TableExistsWaiterOptions) {
		tewo.LogWaitAttempts = true
	})
	_, err = waiter.WaitForOutput(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: output.TableDescription.TableName,
	}, time.Second*5)
	return *output.TableDescription.TableName, err
}

func NewClient(endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRetryMaxAttempts(10),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			})),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     "fake",
				SecretAccessKey: "fake",
				SessionToken:    "fake",
			}}),
	)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func (l *LocalDynamoServer) CreateLocalClient() (*dynamodb.Client, error) {
	return NewClient(l.Endpoint)
}

type LocalDynamoServer struct {
	Process  *os.Process
	Port     int
	Endpoint string
}

// StartLocalServer runs DynamoDB Local from the repository's dynamodb directory.
// When AWS_ENDPOINT points at an already running instance that one is reused, and
// the test is skipped when neither is available.
func StartLocalServer(port int, t *testing.T) *LocalDynamoServer {
	if endpoint := os.Getenv("AWS_ENDPOINT"); endpoint != "" {
		return &LocalDynamoServer{Endpoint: endpoint}
	}
	workingDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to resolve working directory: %s", err)
	}
	ddbDir := filepath.Join(workingDir, "..", "..", "dynamodb")
	jar := filepath.Join(ddbDir, "DynamoDBLocal.jar")
	if _, err := os.Stat(jar); err != nil {
		t.Skipf("DynamoDB Local is not installed at %s", jar)
	}
	if _, err := exec.LookPath("java"); err != nil {
		t.Skip("java is required to run DynamoDB Local")
	}
	cmd := exec.Command(
		"java", fmt.Sprintf("-Djava.library.path=%s", filepath.Join(ddbDir, "DynamoDBLocal_lib")),
		"-jar", jar,
		"-port", strconv.Itoa(port),
		"-inMemory",
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start local DDB server: %s", err)
	}
	t.Cleanup(func() {
		if err := cmd.Process.Kill(); err != nil {
			t.Fatalf("Failed to terminate local DDB server: %s", err)
		}
	})
	return &LocalDynamoServer{
		Port:     port,
		Process:  cmd.Process,
		Endpoint: fmt.Sprintf("http://localhost:%d", port),
	}
}

// NewLocalTable starts (or reuses) DynamoDB Local and creates a fresh table.
func NewLocalTable(t *testing.T, port int) (*dynamodb.Client, string) {
	localServer := StartLocalServer(port, t)
	client, err := localServer.CreateLocalClient()
	if err != nil {
		t.Fatalf("Failed to create DDB client: %s", err)
	}
	tableName, err := CreateTable(client)
	if err != nil {
		t.Fatalf("Failed to create DDB table: %s", err)
	}
	t.Logf("Successfully created local table %s on %s", tableName, localServer.Endpoint)
	return client, tableName
}
