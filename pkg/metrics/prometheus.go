package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder publishes scoring-engine metrics to Prometheus.
type Recorder struct {
	analysisRuns   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastRiskScore  *prometheus.GaugeVec
	vigilDecisions *prometheus.CounterVec
	whaleAlerts    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysisRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "borsa_analysis_runs_total",
				Help: "Total number of per-instrument analysis runs",
			},
			[]string{"exchange"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "borsa_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastRiskScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "borsa_last_risk_score",
				Help: "Last computed risk score for a symbol",
			},
			[]string{"symbol"},
		),
		vigilDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "borsa_vigil_decisions_total",
				Help: "Global market decisions by outcome",
			},
			[]string{"decision"},
		),
		whaleAlerts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "borsa_whale_alerts_total",
				Help: "Simulated whale alerts by type",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "borsa_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysisRun counts a completed analysis for an exchange.
func (r *Recorder) RecordAnalysisRun(exchange string) {
	r.analysisRuns.WithLabelValues(exchange).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRiskScore records the last risk score for a symbol.
func (r *Recorder) RecordRiskScore(symbol string, score int) {
	r.lastRiskScore.WithLabelValues(symbol).Set(float64(score))
}

// RecordVigilDecision counts a global market decision.
func (r *Recorder) RecordVigilDecision(decision string) {
	r.vigilDecisions.WithLabelValues(decision).Inc()
}

// RecordWhaleAlert counts a whale alert by type.
func (r *Recorder) RecordWhaleAlert(alertType string) {
	r.whaleAlerts.WithLabelValues(alertType).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
