package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/cashstream/voucher-settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		item, _ := attributevalue.MarshalMap(&models.Wallet{WalletId: "w-1", Balance: 1500, Version: 2})
		mockClient.On("GetItem", mock.Anything, mock.AnythingOfType("*dynamodb.GetItemInput")).Return(&dynamodb.GetItemOutput{Item: item}, nil)

		wallet, err := store.GetWallet(context.Background(), "w-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1500), wallet.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		wallet, err := store.GetWallet(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		assert.Nil(t, wallet)
		mockClient.AssertExpectations(t)
	})
}

func TestCreateWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil)

		wallet, err := store.CreateWallet(context.Background(), &models.Wallet{WalletId: "w-1", OwnerId: "r-1"})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), wallet.Version)
		assert.False(t, wallet.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		wallet, err := store.CreateWallet(context.Background(), &models.Wallet{WalletId: "w-1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		assert.Nil(t, wallet)
		mockClient.AssertExpectations(t)
	})
}

func TestCreditWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			version, ok := in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN)
			return ok && version.Value == "3"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.CreditWallet(context.Background(), "w-1", 500, 3)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CreditWallet(context.Background(), "w-1", 500, 3)

		assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)
		mockClient.AssertExpectations(t)
	})
}

func TestListWallets(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		w1, _ := attributevalue.MarshalMap(&models.Wallet{WalletId: "w-1", Balance: 100})
		w2, _ := attributevalue.MarshalMap(&models.Wallet{WalletId: "w-2", Balance: 200})
		mockClient.On("Scan", mock.Anything, mock.AnythingOfType("*dynamodb.ScanInput")).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{w1, w2}}, nil)

		wallets, err := store.ListWallets(context.Background())

		assert.NoError(t, err)
		assert.Len(t, wallets, 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Scan Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, WalletsTableName: "wallets"}

		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		wallets, err := store.ListWallets(context.Background())

		assert.Error(t, err)
		assert.Nil(t, wallets)
		mockClient.AssertExpectations(t)
	})
}
