package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/mapping"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/redemption"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// VouchersHandler holds the dependencies for voucher-related handlers.
type VouchersHandler struct {
	Lifecycle  *lifecycle.Service
	Redemption *redemption.Service
	Store      storage.VoucherReader
	Events     storage.EventReader
}

// NewVouchersHandler creates a new VouchersHandler.
func NewVouchersHandler(lc *lifecycle.Service, rd *redemption.Service, store storage.VoucherReader, events storage.EventReader) *VouchersHandler {
	return &VouchersHandler{Lifecycle: lc, Redemption: rd, Store: store, Events: events}
}

// IssueVoucher handles the logic for issuing a new voucher.
func (h *VouchersHandler) IssueVoucher(w http.ResponseWriter, r *http.Request) {
	var newVoucher api.NewVoucher
	if err := json.NewDecoder(r.Body).Decode(&newVoucher); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	voucher, err := h.Lifecycle.Issue(r.Context(), lifecycle.IssueRequest{
		BeneficiaryId: newVoucher.BeneficiaryId,
		Amount:        newVoucher.Amount,
		GrantType:     newVoucher.GrantType,
		ExpiresAt:     newVoucher.ExpiresAt,
		Actor:         newVoucher.Actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiVoucher(voucher))
}

// GetVoucherById handles the logic for retrieving a voucher by its ID.
func (h *VouchersHandler) GetVoucherById(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.Store.GetVoucher(r.Context(), chi.URLParam(r, "voucherId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiVoucher(voucher))
}

// ListVoucherEvents handles the logic for retrieving a voucher's event history.
func (h *VouchersHandler) ListVoucherEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListEventsByEntity(r.Context(), models.EntityVoucher, chi.URLParam(r, "voucherId"))
	if err != nil {
		writeError(w, err)
		return
	}

	apiEvents := make([]*api.StatusEvent, len(events))
	for i := range events {
		apiEvents[i] = mapping.ToApiStatusEvent(&events[i])
	}

	writeJSON(w, http.StatusOK, apiEvents)
}

// RedeemVoucher handles an agent cash-out against a voucher.
func (h *VouchersHandler) RedeemVoucher(w http.ResponseWriter, r *http.Request) {
	var body api.RedeemVoucher
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Redemption.Redeem(r.Context(), redemption.RedeemRequest{
		VoucherID:      chi.URLParam(r, "voucherId"),
		AgentID:        body.AgentId,
		IdempotencyKey: body.IdempotencyKey,
		DebtorId:       body.DebtorId,
		CreditorId:     body.CreditorId,
		WalletId:       body.WalletId,
		Actor:          body.Actor,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyInTargetState) {
			// Duplicate redeem delivery; report the settled voucher as-is.
			voucher, getErr := h.Store.GetVoucher(r.Context(), chi.URLParam(r, "voucherId"))
			if getErr != nil {
				writeError(w, getErr)
				return
			}
			writeJSON(w, http.StatusOK, api.RedeemOutcome{Voucher: mapping.ToApiVoucher(voucher)})
			return
		}
		writeError(w, err)
		return
	}

	outcome := api.RedeemOutcome{
		Voucher:    mapping.ToApiVoucher(result.Voucher),
		Settlement: mapping.ToApiSettlementResult(body.IdempotencyKey, result.Settlement),
	}
	if !result.Settlement.Accepted() {
		// Settlement rejections are domain outcomes, not errors.
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// ReissueVoucher handles reissuing an expired or expiring voucher.
func (h *VouchersHandler) ReissueVoucher(w http.ResponseWriter, r *http.Request) {
	var body api.ReissueVoucher
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Lifecycle.Transition(r.Context(), lifecycle.TransitionRequest{
		VoucherID: chi.URLParam(r, "voucherId"),
		Event:     models.EventReissue,
		Actor:     body.Actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiVoucher(result.Voucher))
}
