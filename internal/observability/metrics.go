package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiwimarket_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kiwimarket_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// VerificationCodesSent counts SMS codes by dispatch result (sent, failed).
	VerificationCodesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiwimarket_verification_codes_sent_total",
		Help: "Total number of verification codes issued",
	}, []string{"result"})

	// VerificationOutcomes counts code checks by outcome (SIGNIN, SIGNUP, DENY).
	VerificationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiwimarket_verification_outcomes_total",
		Help: "Total number of verification code checks by outcome",
	}, []string{"outcome"})

	// ExpiredCodesPurged counts codes removed by the purge job.
	ExpiredCodesPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kiwimarket_expired_codes_purged_total",
		Help: "Total number of expired verification codes purged",
	})

	// CacheLookups counts near-address cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiwimarket_cache_lookups_total",
		Help: "Total number of cache lookups by result",
	}, []string{"cache", "result"})
)
