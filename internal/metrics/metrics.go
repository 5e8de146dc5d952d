package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Conversions
	Conversions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegen_conversions_total",
			Help: "Conversion requests by source and result",
		},
		[]string{"source", "result"}, // source: text|screenshot|figma, result: ok|error
	)

	// Resolver
	StrategyAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegen_strategy_attempts_total",
			Help: "Resolution strategy attempts by outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: success|failure|skipped
	)

	// Upstreams
	UpstreamDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegen_upstream_duration_seconds",
			Help:    "Duration of calls to remote inference, local model and Figma",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms..~100s
		},
		[]string{"upstream"},
	)
	LocalModelReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "codegen_local_model_ready",
			Help: "1 when the local generation pipeline was initialized",
		},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegen_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Conversions,
		StrategyAttempts,
		UpstreamDurationSeconds,
		LocalModelReady,
		Errors,
	)
}

func IncConversion(source, result string) {
	Conversions.WithLabelValues(source, result).Inc()
}

func IncStrategyAttempt(strategy, outcome string) {
	StrategyAttempts.WithLabelValues(strategy, outcome).Inc()
}

func ObserveUpstreamDuration(upstream string, d time.Duration) {
	UpstreamDurationSeconds.WithLabelValues(upstream).Observe(d.Seconds())
}

func SetLocalModelReady(ready bool) {
	if ready {
		LocalModelReady.Set(1)
		return
	}
	LocalModelReady.Set(0)
}

func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
