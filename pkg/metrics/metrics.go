package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog API metrics
var (
	// CatalogRequestsTotal tracks upstream review API calls by endpoint and outcome
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total review API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// CatalogRequestDuration tracks upstream latency in seconds
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Review API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState tracks current breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Typeahead metrics
var (
	// SearchDispatchedTotal counts queries that survived the debounce and hit the API
	SearchDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_search_dispatched_total",
			Help: "Total typeahead queries dispatched after debounce",
		},
	)

	// SearchSupersededTotal counts responses dropped because a newer query was issued
	SearchSupersededTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_search_superseded_total",
			Help: "Total typeahead responses discarded as stale",
		},
	)

	// SearchFailedTotal counts failed typeahead lookups
	SearchFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_search_failed_total",
			Help: "Total typeahead lookups that returned an error",
		},
	)

	// SearchSessionsActive tracks open websocket typeahead sessions
	SearchSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "typeahead_sessions_active",
			Help: "Number of open typeahead websocket sessions",
		},
	)
)

// Page metrics
var (
	// ModuleViewsTotal counts module detail renders by render mode
	ModuleViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "module_views_total",
			Help: "Total module detail views by render mode",
		},
		[]string{"mode"},
	)
)
