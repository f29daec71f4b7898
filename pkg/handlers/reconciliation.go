package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/mapping"
	"github.com/cashstream/voucher-settlement/pkg/reconciliation"
	"github.com/go-chi/chi/v5"
)

// ReconciliationHandler holds the dependencies for reconciliation handlers.
type ReconciliationHandler struct {
	Engine *reconciliation.Engine
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(engine *reconciliation.Engine) *ReconciliationHandler {
	return &ReconciliationHandler{Engine: engine}
}

// RunReconciliation triggers an on-demand reconciliation run. Re-running a
// date writes a superseding snapshot; prior revisions remain for audit.
func (h *ReconciliationHandler) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	var body api.ReconciliationRun
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	date := body.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	snapshot, err := h.Engine.Reconcile(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiSnapshot(snapshot))
}

// GetSnapshot returns the canonical snapshot for a date.
func (h *ReconciliationHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	snapshot, err := h.Engine.LatestSnapshot(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshot == nil {
		http.Error(w, fmt.Sprintf("no reconciliation snapshot for %s", date), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiSnapshot(snapshot))
}
