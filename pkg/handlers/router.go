package handlers

import (
	"log/slog"
	"net/http"

	mw "github.com/cashstream/voucher-settlement/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts every handler on a chi router with the shared middleware
// stack.
func NewRouter(logger *slog.Logger, vouchers *VouchersHandler, agents *AgentsHandler, payments *PaymentsHandler, recon *ReconciliationHandler, health *HealthHandler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(mw.NewStructuredLogger(logger))

	router.Route("/vouchers", func(r chi.Router) {
		r.Post("/", vouchers.IssueVoucher)
		r.Get("/{voucherId}", vouchers.GetVoucherById)
		r.Get("/{voucherId}/events", vouchers.ListVoucherEvents)
		r.Post("/{voucherId}/redeem", vouchers.RedeemVoucher)
		r.Post("/{voucherId}/reissue", vouchers.ReissueVoucher)
	})

	router.Route("/agents/{agentId}/float", func(r chi.Router) {
		r.Get("/", agents.GetAgentFloat)
		r.Post("/topup", agents.TopUpFloat)
		r.Post("/withdraw", agents.WithdrawFloat)
	})

	router.Route("/payments", func(r chi.Router) {
		r.Post("/", payments.SettlePayment)
		r.Get("/{idempotencyKey}", payments.GetSettlement)
	})

	router.Route("/reconciliation/runs", func(r chi.Router) {
		r.Post("/", recon.RunReconciliation)
		r.Get("/{date}", recon.GetSnapshot)
	})

	router.Get("/healthz", health.GetHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
