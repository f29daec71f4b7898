package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/liquidity"
	"github.com/cashstream/voucher-settlement/pkg/redemption"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrVoucherNotFound),
		errors.Is(err, storage.ErrAgentNotFound),
		errors.Is(err, storage.ErrWalletNotFound),
		errors.Is(err, storage.ErrSwitchRequestNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrInvalidTransition),
		errors.Is(err, redemption.ErrVoucherNotRedeemable),
		errors.Is(err, lifecycle.ErrReissueLimitReached),
		errors.Is(err, storage.ErrConcurrentUpdate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, storage.ErrInsufficientLiquidity):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, liquidity.ErrApprovalRequired):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, lifecycle.ErrInvalidExpiry):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}
