package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/mapping"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
	"github.com/go-chi/chi/v5"
)

// PaymentsHandler holds the dependencies for settlement handlers.
type PaymentsHandler struct {
	Adapter *switchadapter.Adapter
}

// NewPaymentsHandler creates a new PaymentsHandler.
func NewPaymentsHandler(adapter *switchadapter.Adapter) *PaymentsHandler {
	return &PaymentsHandler{Adapter: adapter}
}

// SettlePayment handles a direct settlement over the payment switch.
func (h *PaymentsHandler) SettlePayment(w http.ResponseWriter, r *http.Request) {
	var body api.NewSettlement
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.IdempotencyKey == "" {
		http.Error(w, "idempotency_key is required", http.StatusBadRequest)
		return
	}

	result, err := h.Adapter.SettlePayment(r.Context(), switchadapter.SettlementRequest{
		IdempotencyKey: body.IdempotencyKey,
		DebtorId:       body.DebtorId,
		CreditorId:     body.CreditorId,
		Amount:         body.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Accepted() && !result.Replayed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, mapping.ToApiSettlementResult(body.IdempotencyKey, result))
}

// GetSettlement handles retrieving the stored outcome for an idempotency
// key. A pending request past its response window reports as a TIME
// rejection, never as pending.
func (h *PaymentsHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "idempotencyKey")
	result, err := h.Adapter.LookupSettlement(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiSettlementResult(key, result))
}
