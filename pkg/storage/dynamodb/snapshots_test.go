package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/cashstream/voucher-settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPutSnapshot(t *testing.T) {
	snapshot := &models.TrustAccountSnapshot{
		ReconciliationDate: "2026-08-28",
		TrustBalance:       1_000_000,
		LiabilityTotal:     1_000_000,
		Status:             models.SnapshotBalanced,
		GeneratedAt:        time.Now(),
	}

	t.Run("First Revision", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SnapshotsTableName: "snapshots"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: nil}, nil)
		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.PutSnapshot(context.Background(), snapshot)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), snapshot.Revision)
		mockClient.AssertExpectations(t)
	})

	t.Run("Supersedes Prior Revision", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SnapshotsTableName: "snapshots"}

		prior, _ := attributevalue.MarshalMap(&models.TrustAccountSnapshot{ReconciliationDate: "2026-08-28", Revision: 2})
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{prior}}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.PutSnapshot(context.Background(), snapshot)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), snapshot.Revision)
		mockClient.AssertExpectations(t)
	})

	t.Run("Revision Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SnapshotsTableName: "snapshots"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: nil}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.PutSnapshot(context.Background(), snapshot)

		assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)
		mockClient.AssertExpectations(t)
	})
}

func TestGetLatestSnapshot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SnapshotsTableName: "snapshots"}

		stored, _ := attributevalue.MarshalMap(&models.TrustAccountSnapshot{ReconciliationDate: "2026-08-28", Revision: 4, Status: models.SnapshotBalanced})
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{stored}}, nil)

		snapshot, err := store.GetLatestSnapshot(context.Background(), "2026-08-28")

		assert.NoError(t, err)
		assert.Equal(t, int64(4), snapshot.Revision)
		mockClient.AssertExpectations(t)
	})

	t.Run("Never Reconciled", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SnapshotsTableName: "snapshots"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: nil}, nil)

		snapshot, err := store.GetLatestSnapshot(context.Background(), "2026-08-28")

		assert.NoError(t, err)
		assert.Nil(t, snapshot)
		mockClient.AssertExpectations(t)
	})
}
