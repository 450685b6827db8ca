package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Projections counts projection requests by outcome
	Projections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finboard_projections_total",
			Help: "Projection computations by outcome",
		},
		[]string{"source", "status"},
	)

	// ProjectionDuration observes engine run time
	ProjectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finboard_projection_duration_seconds",
			Help:    "Time spent computing one projection",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	// ListingSearches counts listing table queries
	ListingSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finboard_listing_searches_total",
			Help: "Listing queries by kind and whether a search term was given",
		},
		[]string{"kind", "filtered"},
	)

	// ListingRecords holds the number of loaded records per kind
	ListingRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "finboard_listing_records",
			Help: "Records currently loaded per listing kind",
		},
		[]string{"kind"},
	)

	// ListingLoadErrors counts failed listing file reads
	ListingLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finboard_listing_load_errors_total",
			Help: "Failed listing file loads",
		},
		[]string{"kind"},
	)

	// HTTPRequests counts served requests
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finboard_http_requests_total",
			Help: "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration observes request latency
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
