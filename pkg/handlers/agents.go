package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/liquidity"
	"github.com/cashstream/voucher-settlement/pkg/mapping"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// AgentsHandler holds the dependencies for agent-float handlers.
type AgentsHandler struct {
	Guard *liquidity.Guard
	Store storage.FloatStore
}

// NewAgentsHandler creates a new AgentsHandler.
func NewAgentsHandler(guard *liquidity.Guard, store storage.FloatStore) *AgentsHandler {
	return &AgentsHandler{Guard: guard, Store: store}
}

// GetAgentFloat handles the logic for retrieving an agent's float record.
func (h *AgentsHandler) GetAgentFloat(w http.ResponseWriter, r *http.Request) {
	float, err := h.Store.GetAgentFloat(r.Context(), chi.URLParam(r, "agentId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiAgentFloat(float))
}

// TopUpFloat handles an administrative float top-up.
func (h *AgentsHandler) TopUpFloat(w http.ResponseWriter, r *http.Request) {
	var body api.FloatAdjustment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	agentID := chi.URLParam(r, "agentId")
	if err := h.Guard.TopUp(r.Context(), agentID, body.Amount, body.Requester); err != nil {
		writeError(w, err)
		return
	}

	h.respondWithFloat(w, r, agentID)
}

// WithdrawFloat handles an administrative float withdrawal. Withdrawals
// above the dual-control threshold need a distinct approver.
func (h *AgentsHandler) WithdrawFloat(w http.ResponseWriter, r *http.Request) {
	var body api.FloatAdjustment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	agentID := chi.URLParam(r, "agentId")
	if err := h.Guard.Withdraw(r.Context(), agentID, body.Amount, body.Requester, body.Approver); err != nil {
		writeError(w, err)
		return
	}

	h.respondWithFloat(w, r, agentID)
}

func (h *AgentsHandler) respondWithFloat(w http.ResponseWriter, r *http.Request, agentID string) {
	float, err := h.Store.GetAgentFloat(r.Context(), agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiAgentFloat(float))
}
