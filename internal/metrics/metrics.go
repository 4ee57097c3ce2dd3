package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wog_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wog_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Chat metrics
	ChatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wog_chat_messages_total",
			Help: "Total chat messages handled",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wog_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)

	// Model metrics
	ModelLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wog_model_latency_seconds",
			Help:    "Generative model call latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	ModelErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wog_model_errors_total",
			Help: "Total failed model calls",
		},
		[]string{"reason"}, // "timeout" or "error"
	)

	// Lead metrics
	LeadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wog_leads_created_total",
			Help: "Total leads captured",
		},
	)
)
