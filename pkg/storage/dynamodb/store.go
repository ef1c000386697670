package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/lorrylink/lorrylink/pkg/notifier"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses. Mocked in
// tests (see mocks/).
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface over the single DynamoDB table.
type Store struct {
	Client    DynamoDBAPI
	Notifier  notifier.Notifier
	TableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, n notifier.Notifier, tableName string) *Store {
	return &Store{
		Client:    client,
		Notifier:  n,
		TableName: tableName,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
