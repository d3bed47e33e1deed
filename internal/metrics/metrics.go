// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qaboard_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Scoring
	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qaboard_ranking_duration_seconds",
			Help:    "Time spent computing rankings",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // similar, recommend, search, trending
	)

	// Notifications
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_notifications_created_total",
			Help: "Total number of notifications persisted",
		},
		[]string{"type"},
	)

	PushFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qaboard_push_failures_total",
			Help: "Total number of notification pushes that were dropped",
		},
	)

	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_badges_awarded_total",
			Help: "Total number of badges awarded",
		},
		[]string{"badge"},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qaboard_websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qaboard_online_users",
			Help: "Current number of distinct connected users",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qaboard_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qaboard_websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Import
	FeedItemsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_feed_items_imported_total",
			Help: "Total number of feed entries stored as questions",
		},
		[]string{"feed"},
	)
)

func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveRanking records the time since start under operation.
func ObserveRanking(operation string, start time.Time) {
	RankingDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
