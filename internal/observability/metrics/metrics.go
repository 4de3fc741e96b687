package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "movequote_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	quoteCalculateTotal   *prometheus.CounterVec
	quoteCalculateLatency *prometheus.HistogramVec

	quoteSubmitTotal   *prometheus.CounterVec
	quoteSubmitLatency *prometheus.HistogramVec

	quoteExportTotal   *prometheus.CounterVec
	quoteExportLatency *prometheus.HistogramVec

	routeLookupTotal   *prometheus.CounterVec
	routeLookupLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		quoteCalculateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "quote_calculate_total",
				Help: "Total instant estimate calculations by result",
			},
			[]string{"result"},
		)
		quoteCalculateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "quote_calculate_latency_seconds",
				Help:    "Instant estimate latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		quoteSubmitTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "quote_submit_total",
				Help: "Total quote submissions by result",
			},
			[]string{"result"},
		)
		quoteSubmitLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "quote_submit_latency_seconds",
				Help:    "Quote submission latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		quoteExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "quote_export_total",
				Help: "Total quote export operations by format and result",
			},
			[]string{"format", "result"},
		)
		quoteExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "quote_export_latency_seconds",
				Help:    "Quote export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		routeLookupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "route_lookup_total",
				Help: "Total routing provider lookups by result",
			},
			[]string{"result"},
		)
		routeLookupLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "route_lookup_latency_seconds",
				Help:    "Routing provider lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			quoteCalculateTotal,
			quoteCalculateLatency,
			quoteSubmitTotal,
			quoteSubmitLatency,
			quoteExportTotal,
			quoteExportLatency,
			routeLookupTotal,
			routeLookupLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveQuoteCalculate records instant estimate latency and result.
func ObserveQuoteCalculate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if quoteCalculateTotal != nil {
		quoteCalculateTotal.WithLabelValues(result).Inc()
	}
	if quoteCalculateLatency != nil {
		quoteCalculateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveQuoteSubmit records submission latency and result.
func ObserveQuoteSubmit(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if quoteSubmitTotal != nil {
		quoteSubmitTotal.WithLabelValues(result).Inc()
	}
	if quoteSubmitLatency != nil {
		quoteSubmitLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveQuoteExport records export latency and result.
func ObserveQuoteExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if quoteExportTotal != nil {
		quoteExportTotal.WithLabelValues(format, result).Inc()
	}
	if quoteExportLatency != nil {
		quoteExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveRouteLookup records routing provider latency and result.
func ObserveRouteLookup(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if routeLookupTotal != nil {
		routeLookupTotal.WithLabelValues(result).Inc()
	}
	if routeLookupLatency != nil {
		routeLookupLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
