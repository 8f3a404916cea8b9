// Package metrics defines and registers the custom Prometheus metrics of the
// storefront gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init via promauto.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartLinesTotal counts cart line mutations.
// Labels:
//   - kind: "purchases" or "loans"
//   - op: "add" or "remove"
var CartLinesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_lines_total",
		Help:      "Total number of cart lines added or removed.",
	},
	[]string{"kind", "op"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "completed", "failed" or "rejected" (never reached the backend)
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// CheckoutAmount records the cart total of every completed checkout.
var CheckoutAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_amount",
		Help:      "Cart total of completed checkouts.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500},
	},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures round trips to the library backend.
// Labels:
//   - method: HTTP method
//   - route: path template (e.g. "/library/books/{id}")
//   - status: response status, or "error" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the library backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// ObserveBackend records one backend round trip. Its signature matches
// backend.Observer.
func ObserveBackend(method, route string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestDuration.WithLabelValues(method, route, label).Observe(elapsed.Seconds())
}
