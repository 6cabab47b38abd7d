package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "motorhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorhub_transitions_total",
		Help: "Committed state machine transitions",
	}, []string{"machine", "from", "to"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorhub_notifications_total",
		Help: "Notification writes by audience and result",
	}, []string{"audience", "result"})

	feedEmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorhub_feed_emissions_total",
		Help: "Snapshots emitted to live subscribers",
	}, []string{"collection"})

	activeSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "motorhub_active_subscriptions",
		Help: "Open live subscriptions",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveTransition counts a persisted transition
func ObserveTransition(machine, from, to string) {
	transitionsTotal.WithLabelValues(machine, from, to).Inc()
}

// ObserveNotification counts one notification write attempt
func ObserveNotification(audience, result string) {
	notificationsTotal.WithLabelValues(audience, result).Inc()
}

// ObserveFeedEmission counts a snapshot pushed to a subscriber
func ObserveFeedEmission(collection string) {
	feedEmissions.WithLabelValues(collection).Inc()
}

// SubscriptionOpened increments the open subscription gauge
func SubscriptionOpened() {
	activeSubscriptions.Inc()
}

// SubscriptionClosed decrements the open subscription gauge
func SubscriptionClosed() {
	activeSubscriptions.Dec()
}
