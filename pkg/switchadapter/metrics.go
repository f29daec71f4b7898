package switchadapter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "switch_settlements_total",
		Help: "Total settlement attempts against the payment switch.",
	}, []string{"outcome", "reason_code"})

	settlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "switch_settlement_duration_seconds",
		Help:    "Round-trip duration of settlement calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	switchHealthy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "switch_healthy",
		Help: "Whether the last switch health probe succeeded (1) or failed (0).",
	})
)
