// Package metrics provides Prometheus metrics for parsing and annotation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"

	CacheHit  = "hit"
	CacheMiss = "miss"

	OutcomeExtracted = "extracted"
	OutcomeMissing   = "missing"
)

var (
	// ParseRequests counts parse calls.
	// Labels: intent (pay, send, transfer, none)
	ParseRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paynlp",
			Subsystem: "parse",
			Name:      "requests_total",
			Help:      "Total number of parse requests by extracted intent",
		},
		[]string{"intent"},
	)

	// ParseFields counts field extraction outcomes.
	// Labels: field (intent, amount_text, amount_value, currency, recipient), outcome (extracted, missing)
	ParseFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paynlp",
			Subsystem: "parse",
			Name:      "fields_total",
			Help:      "Total number of field extraction outcomes",
		},
		[]string{"field", "outcome"},
	)

	// ParseDuration tracks end-to-end parse latency, annotation included.
	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "paynlp",
			Subsystem: "parse",
			Name:      "duration_seconds",
			Help:      "Duration of parse requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// AnnotatorRequests counts calls into annotation backends.
	// Labels: annotator, result (success, error, skipped)
	AnnotatorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paynlp",
			Subsystem: "annotator",
			Name:      "requests_total",
			Help:      "Total number of annotator calls by backend and result",
		},
		[]string{"annotator", "result"},
	)

	// AnnotationCache counts annotation cache lookups.
	// Labels: result (hit, miss)
	AnnotationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paynlp",
			Subsystem: "annotator",
			Name:      "cache_lookups_total",
			Help:      "Total number of annotation cache lookups",
		},
		[]string{"result"},
	)

	// ParseLogWriteErrors counts parse log entries that could not be stored.
	ParseLogWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "paynlp",
			Subsystem: "parse_log",
			Name:      "write_errors_total",
			Help:      "Total number of failed parse log writes",
		},
	)
)

// ObserveField records whether a field was extracted.
func ObserveField(field string, extracted bool) {
	outcome := OutcomeMissing
	if extracted {
		outcome = OutcomeExtracted
	}
	ParseFields.WithLabelValues(field, outcome).Inc()
}
