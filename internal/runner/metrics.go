package runner

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by runners.
type Metrics struct {
	BarsTotal        *prometheus.CounterVec // labels: symbol
	RejectedBars     *prometheus.CounterVec // labels: symbol
	SignalsTotal     *prometheus.CounterVec // labels: symbol, action
	ForcedExitsTotal *prometheus.CounterVec // labels: symbol, reason
	FillsTotal       *prometheus.CounterVec // labels: symbol, side
	RealizedPnL      *prometheus.GaugeVec   // labels: symbol
	EvaluateDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BarsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bars_total",
			Help: "Bars evaluated",
		}, []string{"symbol"}),
		RejectedBars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_rejected_bars_total",
			Help: "Bars rejected as invalid or out of order",
		}, []string{"symbol"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_signals_total",
			Help: "Signals emitted by action",
		}, []string{"symbol", "action"}),
		ForcedExitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_forced_exits_total",
			Help: "Positions closed by stop-loss or trailing take-profit",
		}, []string{"symbol", "reason"}),
		FillsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_fills_total",
			Help: "Fills applied to positions",
		}, []string{"symbol", "side"}),
		RealizedPnL: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signal_realized_pnl",
			Help: "Realized PnL of closing fills",
		}, []string{"symbol"}),
		EvaluateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signal_evaluate_duration_seconds",
			Help:    "Time to evaluate one bar",
			Buckets: []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.BarsTotal,
			m.RejectedBars,
			m.SignalsTotal,
			m.ForcedExitsTotal,
			m.FillsTotal,
			m.RealizedPnL,
			m.EvaluateDuration,
		)
	}

	return m
}
