package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage/dynamodb/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAppendEvent(t *testing.T) {
	event := &models.StatusEvent{Id: uuid.New().String(), EntityType: models.EntityAgentFloat, EntityId: "agent-1"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, EventsTableName: "events"}

		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.AppendEvent(context.Background(), event)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, EventsTableName: "events"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		err := store.AppendEvent(context.Background(), event)

		assert.Error(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestListEventsByEntity(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, EventsTableName: "events"}

	e1, _ := attributevalue.MarshalMap(&models.StatusEvent{Id: "e-1", ToStatus: "ISSUED"})
	e2, _ := attributevalue.MarshalMap(&models.StatusEvent{Id: "e-2", ToStatus: "AVAILABLE"})
	mockClient.On("Query", mock.Anything, mock.AnythingOfType("*dynamodb.QueryInput")).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{e1, e2}}, nil)

	events, err := store.ListEventsByEntity(context.Background(), models.EntityVoucher, "v-1")

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "ISSUED", events[0].ToStatus)
	mockClient.AssertExpectations(t)
}

func TestLatestEventForEntity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, EventsTableName: "events"}

		latest, _ := attributevalue.MarshalMap(&models.StatusEvent{Id: "e-9", ToStatus: "REDEEMED"})
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ScanIndexForward != nil && !*in.ScanIndexForward && in.Limit != nil && *in.Limit == 1
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{latest}}, nil)

		event, err := store.LatestEventForEntity(context.Background(), models.EntityVoucher, "v-1")

		assert.NoError(t, err)
		assert.Equal(t, "REDEEMED", event.ToStatus)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Events", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, EventsTableName: "events"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: nil}, nil)

		event, err := store.LatestEventForEntity(context.Background(), models.EntityVoucher, "v-1")

		assert.NoError(t, err)
		assert.Nil(t, event)
		mockClient.AssertExpectations(t)
	})
}

func TestListEventsSince(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, EventsTableName: "events"}

	e1, _ := attributevalue.MarshalMap(&models.StatusEvent{Id: "e-1"})
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.IndexName == "gsi1pk-timestamp-index"
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{e1}}, nil)

	events, err := store.ListEventsSince(context.Background(), time.Now().Add(-24*time.Hour), 500)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	mockClient.AssertExpectations(t)
}
