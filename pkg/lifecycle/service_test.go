package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/cashstream/voucher-settlement/pkg/storage/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestService(store *mocks.Storage) *lifecycle.Service {
	return lifecycle.NewService(store, 3, 7*24*time.Hour)
}

func TestIssue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		mockStorage.On("CreateVoucher", mock.Anything, mock.AnythingOfType("*models.Voucher"), mock.AnythingOfType("*models.StatusEvent")).Return(nil)

		voucher, err := svc.Issue(context.Background(), lifecycle.IssueRequest{
			BeneficiaryId: "ben-1",
			Amount:        50_000,
			GrantType:     "disaster-relief",
			ExpiresAt:     time.Now().Add(30 * 24 * time.Hour),
			Actor:         "program-admin",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.ISSUED, voucher.Status)
		assert.Equal(t, int64(50_000), voucher.Amount)
		assert.NotEmpty(t, voucher.Id)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Expiry In The Past", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		_, err := svc.Issue(context.Background(), lifecycle.IssueRequest{
			BeneficiaryId: "ben-1",
			Amount:        50_000,
			ExpiresAt:     time.Now().Add(-time.Hour),
		})

		assert.ErrorIs(t, err, lifecycle.ErrInvalidExpiry)
		mockStorage.AssertNotCalled(t, "CreateVoucher")
	})
}

func TestTransition(t *testing.T) {
	voucherID := uuid.New().String()

	t.Run("Activate", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.ISSUED}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.FromStatus == models.ISSUED && u.ToStatus == models.AVAILABLE
		}), mock.AnythingOfType("*models.StatusEvent")).Return(nil)

		result, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventActivate,
			Actor:     "registration",
		})

		assert.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.Equal(t, models.AVAILABLE, result.Voucher.Status)
		assert.Equal(t, string(models.AVAILABLE), result.Event.ToStatus)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Redeem Sets RedeemedAt", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.AVAILABLE}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.ToStatus == models.REDEEMED && u.RedeemedAt != nil
		}), mock.Anything).Return(nil)

		result, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventRedeem,
			Actor:     "agent-7",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.REDEEMED, result.Voucher.Status)
		assert.NotNil(t, result.Voucher.RedeemedAt)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Invalid Edge Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.ISSUED}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)

		_, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventRedeem,
		})

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockStorage.AssertNotCalled(t, "TransitionVoucher")
	})

	t.Run("Duplicate Trigger Returns Prior Event", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.REDEEMED}
		priorEvent := &models.StatusEvent{Id: uuid.New().String(), ToStatus: string(models.REDEEMED)}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)
		mockStorage.On("LatestEventForEntity", mock.Anything, models.EntityVoucher, voucherID).Return(priorEvent, nil)

		result, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventRedeem,
		})

		assert.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Equal(t, priorEvent, result.Event)
		mockStorage.AssertNotCalled(t, "TransitionVoucher")
	})

	t.Run("Lost Race To Same State Resolves As Duplicate", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		available := &models.Voucher{Id: voucherID, Status: models.AVAILABLE}
		redeemed := &models.Voucher{Id: voucherID, Status: models.REDEEMED}
		priorEvent := &models.StatusEvent{Id: uuid.New().String(), ToStatus: string(models.REDEEMED)}

		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(available, nil).Once()
		mockStorage.On("TransitionVoucher", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrAlreadyInTargetState)
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(redeemed, nil).Once()
		mockStorage.On("LatestEventForEntity", mock.Anything, models.EntityVoucher, voucherID).Return(priorEvent, nil)

		result, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventRedeem,
		})

		assert.NoError(t, err)
		assert.True(t, result.Duplicate)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reissue Bumps Count And Extends Expiry", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.EXPIRED, ReissueCount: 1}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.ToStatus == models.REISSUED && u.ReissueCount != nil && *u.ReissueCount == 2 && u.ExpiresAt != nil
		}), mock.Anything).Return(nil)

		result, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventReissue,
			Actor:     "program-admin",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Voucher.ReissueCount)
		assert.True(t, result.Voucher.ExpiresAt.After(time.Now()))
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reissue Limit Enforced", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		voucher := &models.Voucher{Id: voucherID, Status: models.EXPIRED, ReissueCount: 3}
		mockStorage.On("GetVoucher", mock.Anything, voucherID).Return(voucher, nil)

		_, err := svc.Transition(context.Background(), lifecycle.TransitionRequest{
			VoucherID: voucherID,
			Event:     models.EventReissue,
		})

		assert.ErrorIs(t, err, lifecycle.ErrReissueLimitReached)
		mockStorage.AssertNotCalled(t, "TransitionVoucher")
	})
}

func TestCheckExpiry(t *testing.T) {
	now := time.Now()

	t.Run("Expires Past Due Vouchers", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		// A 500-unit voucher issued with a 7-day validity, now past due.
		candidates := []models.Voucher{
			{Id: "v-1", Amount: 500, Status: models.AVAILABLE, IssuedAt: now.Add(-8 * 24 * time.Hour), ExpiresAt: now.Add(-24 * time.Hour)},
			{Id: "v-2", Amount: 1_000, Status: models.ISSUED, ExpiresAt: now.Add(-time.Hour)},
		}
		mockStorage.On("ListExpiryCandidates", mock.Anything, now).Return(candidates, nil)
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.ToStatus == models.EXPIRED
		}), mock.Anything).Return(nil).Twice()

		result, err := svc.CheckExpiry(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		assert.Equal(t, 2, result.Expired)
		assert.Equal(t, 0, result.Lost)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Concurrent Redeem Wins", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		candidates := []models.Voucher{
			{Id: "v-1", Status: models.AVAILABLE, ExpiresAt: now.Add(-time.Hour)},
			{Id: "v-2", Status: models.AVAILABLE, ExpiresAt: now.Add(-time.Hour)},
		}
		mockStorage.On("ListExpiryCandidates", mock.Anything, now).Return(candidates, nil)
		// v-1 was redeemed between the scan and the conditional write.
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.VoucherID == "v-1"
		}), mock.Anything).Return(storage.ErrConcurrentUpdate)
		mockStorage.On("TransitionVoucher", mock.Anything, mock.MatchedBy(func(u *storage.VoucherTransitionUpdate) bool {
			return u.VoucherID == "v-2"
		}), mock.Anything).Return(nil)

		result, err := svc.CheckExpiry(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Expired)
		assert.Equal(t, 1, result.Lost)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Empty Batch", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		svc := newTestService(mockStorage)

		mockStorage.On("ListExpiryCandidates", mock.Anything, now).Return([]models.Voucher{}, nil)

		result, err := svc.CheckExpiry(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Scanned)
		mockStorage.AssertNotCalled(t, "TransitionVoucher")
	})
}
