package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store.
// Mocked with mockery for tests.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                  DynamoDBAPI
	VouchersTableName       string
	EventsTableName         string
	FloatsTableName         string
	SwitchRequestsTableName string
	SnapshotsTableName      string
	WalletsTableName        string
	NotificationsTableName  string
}

// Tables groups the table names the store operates on.
type Tables struct {
	Vouchers       string
	Events         string
	Floats         string
	SwitchRequests string
	Snapshots      string
	Wallets        string
	Notifications  string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:                  client,
		VouchersTableName:       tables.Vouchers,
		EventsTableName:         tables.Events,
		FloatsTableName:         tables.Floats,
		SwitchRequestsTableName: tables.SwitchRequests,
		SnapshotsTableName:      tables.Snapshots,
		WalletsTableName:        tables.Wallets,
		NotificationsTableName:  tables.Notifications,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
