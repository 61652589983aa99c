// Package metrics defines prometheus collectors for the fetch loop, the board client and user interactions
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// results of a board search call
const (
	SearchOK          = "ok"
	SearchEmpty       = "empty"
	SearchRateLimited = "rate_limited"
	SearchError       = "error"
	SearchRejected    = "rejected"
)

// reasons a fetched post is dropped by the fetch loop
const (
	DropSeen        = "seen"
	DropDelivered   = "delivered"
	DropBlacklisted = "blacklisted"
	DropMedia       = "media"
	DropScore       = "score"
	DropLikelihood  = "likelihood"
)

var (
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booruscope_search_requests_total",
			Help: "Total number of board search calls by result",
		},
		[]string{"result"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booruscope_search_duration_seconds",
			Help:    "Duration of board search calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PagesWalked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booruscope_pages_walked_total",
			Help: "Total number of pages requested by the fetch loop",
		},
	)

	PostsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booruscope_posts_dropped_total",
			Help: "Total number of fetched posts dropped by the fetch loop",
		},
		[]string{"reason"},
	)

	PostsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booruscope_posts_served_total",
			Help: "Total number of posts delivered to users",
		},
	)

	FetchExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booruscope_fetch_exhausted_total",
			Help: "Total number of fetches that ran out of page budget without fresh content",
		},
	)

	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booruscope_interactions_total",
			Help: "Total number of recorded user reactions by status",
		},
		[]string{"status"},
	)

	ProfileRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booruscope_profile_rebuilds_total",
			Help: "Total number of profile rebuilds from the ledger",
		},
	)

	CursorResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booruscope_cursor_resets_total",
			Help: "Total number of idle resets of all pagination cursors",
		},
	)

	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booruscope_search_breaker_state",
			Help: "State of the board search circuit breaker (0=closed, 1=half-open, 2=open)",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booruscope_active_sessions",
			Help: "Current number of browsing sessions",
		},
	)
)
