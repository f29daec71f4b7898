package handlers

import (
	"net/http"

	"github.com/cashstream/voucher-settlement/pkg/api"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
)

// HealthHandler probes the payment switch for the health endpoint.
type HealthHandler struct {
	Adapter *switchadapter.Adapter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(adapter *switchadapter.Adapter) *HealthHandler {
	return &HealthHandler{Adapter: adapter}
}

// GetHealth reports whether the switch answered the probe. An unhealthy
// switch returns 503 so load balancers can shed redemption traffic.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Adapter.HealthCheck(r.Context())

	body := api.Health{
		SwitchHealthy:   status.Healthy,
		SwitchRoundTrip: status.RoundTrip.String(),
	}
	if !status.Healthy {
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}

	writeJSON(w, http.StatusOK, body)
}
