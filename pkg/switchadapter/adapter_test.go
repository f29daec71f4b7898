package switchadapter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/cashstream/voucher-settlement/pkg/storage/mocks"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettlePayment(t *testing.T) {
	req := switchadapter.SettlementRequest{
		IdempotencyKey: "key-1",
		DebtorId:       "provider-a",
		CreditorId:     "provider-b",
		Amount:         500,
	}

	t.Run("Accepted", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound).Once()
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.MatchedBy(func(r *models.PaymentSwitchRequest) bool {
			return r.IdempotencyKey == "key-1" && r.Status == models.SwitchPending
		})).Return(nil)
		mockClient.On("Settle", mock.Anything, mock.AnythingOfType("switchadapter.WireRequest")).Return(&switchadapter.WireResponse{Accepted: true}, nil)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchAccepted, "", "", mock.AnythingOfType("time.Time")).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, result.Accepted())
		assert.False(t, result.Replayed)
		mockStorage.AssertExpectations(t)
		mockClient.AssertExpectations(t)
	})

	t.Run("Same Key Replays Without New Switch Call", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		resolvedAt := time.Now()
		stored := &models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchAccepted,
			CreatedAt:      time.Now().Add(-time.Minute),
			ResolvedAt:     &resolvedAt,
		}
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(stored, nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, result.Accepted())
		assert.True(t, result.Replayed)
		mockClient.AssertNotCalled(t, "Settle")
	})

	t.Run("Rejection Is Not An Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound)
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.Anything).Return(nil)
		mockClient.On("Settle", mock.Anything, mock.Anything).Return(&switchadapter.WireResponse{
			Accepted:   false,
			ReasonCode: switchadapter.CodeInsufficientFunds,
			Reason:     "debtor balance too low",
		}, nil)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeInsufficientFunds, "debtor balance too low", mock.Anything).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.False(t, result.Accepted())
		assert.Equal(t, switchadapter.CodeInsufficientFunds, result.ReasonCode)
		assert.False(t, result.Retryable())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Code Normalized To Internal", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound)
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.Anything).Return(nil)
		mockClient.On("Settle", mock.Anything, mock.Anything).Return(&switchadapter.WireResponse{
			Accepted:   false,
			ReasonCode: "XX99",
		}, nil)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeInternal, mock.Anything, mock.Anything).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, switchadapter.CodeInternal, result.ReasonCode)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Switch Failure Maps To Participant Unavailable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound)
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.Anything).Return(nil)
		mockClient.On("Settle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeParticipantUnavailable, mock.Anything, mock.Anything).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, switchadapter.CodeParticipantUnavailable, result.ReasonCode)
		assert.True(t, result.Retryable())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Deadline Maps To Timeout", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 50*time.Millisecond)

		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound)
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.Anything).Return(nil)
		mockClient.On("Settle", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeTimeout, mock.Anything, mock.Anything).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, switchadapter.CodeTimeout, result.ReasonCode)
		assert.True(t, result.Retryable())
		mockStorage.AssertExpectations(t)
	})

	t.Run("Create Race Replays Winner", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, 10*time.Second)

		resolvedAt := time.Now()
		winner := &models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchAccepted,
			CreatedAt:      time.Now(),
			ResolvedAt:     &resolvedAt,
		}
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(nil, storage.ErrSwitchRequestNotFound).Once()
		mockStorage.On("CreateSwitchRequest", mock.Anything, mock.Anything).Return(storage.ErrDuplicateIdempotencyKey)
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(winner, nil).Once()

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, result.Accepted())
		assert.True(t, result.Replayed)
		mockClient.AssertNotCalled(t, "Settle")
	})

	t.Run("Stale Pending Record Expires To Timeout", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, time.Second)

		stale := &models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchPending,
			CreatedAt:      time.Now().Add(-time.Minute),
		}
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(stale, nil)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeTimeout, mock.Anything, mock.Anything).Return(nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, switchadapter.CodeTimeout, result.ReasonCode)
		assert.True(t, result.Replayed)
		mockClient.AssertNotCalled(t, "Settle")
		mockStorage.AssertExpectations(t)
	})

	t.Run("Fresh Pending Record Stays Pending", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(mockStorage, mockClient, time.Hour)

		pending := &models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchPending,
			CreatedAt:      time.Now(),
		}
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(pending, nil)

		result, err := adapter.SettlePayment(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, models.SwitchPending, result.Status)
		assert.True(t, result.Replayed)
		mockClient.AssertNotCalled(t, "Settle")
	})
}

func TestLookupSettlement(t *testing.T) {
	t.Run("Returns Stored Outcome", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		adapter := switchadapter.NewAdapter(mockStorage, new(switchadapter.MockSwitchClient), 10*time.Second)

		resolvedAt := time.Now()
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(&models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchAccepted,
			CreatedAt:      time.Now().Add(-time.Minute),
			ResolvedAt:     &resolvedAt,
		}, nil)

		result, err := adapter.LookupSettlement(context.Background(), "key-1")

		assert.NoError(t, err)
		assert.True(t, result.Accepted())
		assert.True(t, result.Replayed)
	})

	t.Run("Stale Pending Resolves To Timeout", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		adapter := switchadapter.NewAdapter(mockStorage, new(switchadapter.MockSwitchClient), time.Second)

		stale := &models.PaymentSwitchRequest{
			IdempotencyKey: "key-1",
			Status:         models.SwitchPending,
			CreatedAt:      time.Now().Add(-time.Minute),
		}
		mockStorage.On("GetSwitchRequest", mock.Anything, "key-1").Return(stale, nil)
		mockStorage.On("ResolveSwitchRequest", mock.Anything, "key-1", models.SwitchRejected, switchadapter.CodeTimeout, mock.Anything, mock.Anything).Return(nil)

		result, err := adapter.LookupSettlement(context.Background(), "key-1")

		assert.NoError(t, err)
		assert.Equal(t, models.SwitchRejected, result.Status)
		assert.Equal(t, switchadapter.CodeTimeout, result.ReasonCode)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		adapter := switchadapter.NewAdapter(mockStorage, new(switchadapter.MockSwitchClient), time.Second)

		mockStorage.On("GetSwitchRequest", mock.Anything, "missing").Return(nil, storage.ErrSwitchRequestNotFound)

		result, err := adapter.LookupSettlement(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrSwitchRequestNotFound)
		assert.Nil(t, result)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(new(mocks.Storage), mockClient, time.Second)

		mockClient.On("Ping", mock.Anything).Return(nil)

		status := adapter.HealthCheck(context.Background())

		assert.True(t, status.Healthy)
		assert.GreaterOrEqual(t, status.RoundTrip, time.Duration(0))
	})

	t.Run("Unhealthy", func(t *testing.T) {
		mockClient := new(switchadapter.MockSwitchClient)
		adapter := switchadapter.NewAdapter(new(mocks.Storage), mockClient, time.Second)

		mockClient.On("Ping", mock.Anything).Return(errors.New("unreachable"))

		status := adapter.HealthCheck(context.Background())

		assert.False(t, status.Healthy)
	})
}
