package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/handlers"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	"github.com/cashstream/voucher-settlement/pkg/reconciliation"
	"github.com/cashstream/voucher-settlement/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReconciliationHandler(store *mocks.Storage, bank *reconciliation.MockBankClient) *handlers.ReconciliationHandler {
	engine := reconciliation.NewEngine(bank, store, &notifier.NoOpPublisher{}, 100, 10_000)
	return handlers.NewReconciliationHandler(engine)
}

func TestRunReconciliation(t *testing.T) {
	t.Run("Balanced Run", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockBank := new(reconciliation.MockBankClient)

		mockBank.On("GetTrustAccountBalance", mock.Anything, "2026-08-27").Return(int64(10_000), nil)
		mockStorage.On("SumOutstandingLiability", mock.Anything).Return(int64(10_000), nil)
		mockStorage.On("PutSnapshot", mock.Anything, mock.Anything).Return(nil)

		h := newReconciliationHandler(mockStorage, mockBank)

		body, _ := json.Marshal(api.ReconciliationRun{Date: "2026-08-27"})
		req := httptest.NewRequest(http.MethodPost, "/reconciliation/runs", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RunReconciliation(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var got api.Snapshot
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, string(models.SnapshotBalanced), got.Status)
		assert.Equal(t, int64(0), got.Discrepancy)
		mockStorage.AssertExpectations(t)
		mockBank.AssertExpectations(t)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockBank := new(reconciliation.MockBankClient)

		h := newReconciliationHandler(mockStorage, mockBank)

		body, _ := json.Marshal(api.ReconciliationRun{Date: "27-08-2026"})
		req := httptest.NewRequest(http.MethodPost, "/reconciliation/runs", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RunReconciliation(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockBank.AssertNotCalled(t, "GetTrustAccountBalance", mock.Anything, mock.Anything)
	})
}

func TestGetSnapshot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetLatestSnapshot", mock.Anything, "2026-08-27").Return(&models.TrustAccountSnapshot{
			ReconciliationDate: "2026-08-27",
			Revision:           2,
			Status:             models.SnapshotDiscrepancy,
			Discrepancy:        -500,
		}, nil)

		h := newReconciliationHandler(mockStorage, new(reconciliation.MockBankClient))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/reconciliation/runs/2026-08-27", nil), "date", "2026-08-27")
		rr := httptest.NewRecorder()

		h.GetSnapshot(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got api.Snapshot
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, int64(2), got.Revision)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Never Reconciled", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetLatestSnapshot", mock.Anything, "2026-01-01").Return(nil, nil)

		h := newReconciliationHandler(mockStorage, new(reconciliation.MockBankClient))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/reconciliation/runs/2026-01-01", nil), "date", "2026-01-01")
		rr := httptest.NewRecorder()

		h.GetSnapshot(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := newReconciliationHandler(mockStorage, new(reconciliation.MockBankClient))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/reconciliation/runs/yesterday", nil), "date", "yesterday")
		rr := httptest.NewRecorder()

		h.GetSnapshot(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetLatestSnapshot", mock.Anything, mock.Anything)
	})
}
