// Package metrics registers the Prometheus collectors for the station
// backend: mutation throughput, publish failures, remote refreshes and
// insight generation outcomes.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "stationpro_"

var (
	registerOnce sync.Once

	mutationsTotal       *prometheus.CounterVec
	publishFailuresTotal prometheus.Counter
	remoteRefreshTotal   prometheus.Counter
	insightRequestsTotal *prometheus.CounterVec
)

// Register installs the collectors on the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		mutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "mutations_total",
			Help: "State mutations applied, by operation.",
		}, []string{"operation"})

		publishFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "publish_failures_total",
			Help: "Snapshot publishes that failed against the document store.",
		})

		remoteRefreshTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "remote_refresh_total",
			Help: "Times the local snapshot was replaced by a remote change.",
		})

		insightRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "insight_requests_total",
			Help: "Insight generation requests, by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			mutationsTotal,
			publishFailuresTotal,
			remoteRefreshTotal,
			insightRequestsTotal,
		)
	})
}

// MutationApplied counts one applied mutation for the named operation.
func MutationApplied(operation string) {
	if mutationsTotal != nil {
		mutationsTotal.WithLabelValues(operation).Inc()
	}
}

// PublishFailed counts one failed snapshot publish.
func PublishFailed() {
	if publishFailuresTotal != nil {
		publishFailuresTotal.Inc()
	}
}

// RemoteRefresh counts one wholesale replacement of the local snapshot.
func RemoteRefresh() {
	if remoteRefreshTotal != nil {
		remoteRefreshTotal.Inc()
	}
}

// InsightRequest counts one insight generation with the given result label
// ("success" or "error").
func InsightRequest(result string) {
	if insightRequestsTotal != nil {
		insightRequestsTotal.WithLabelValues(result).Inc()
	}
}
