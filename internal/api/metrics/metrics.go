// Package metrics defines and registers all custom Prometheus metrics of the
// NotaSpace client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and served by the agent at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notaspace"

// ── Backend pipeline ──────────────────────────────────────────────────────────

// APIRequestsTotal counts backend requests by outcome.
// Labels:
//   - method: HTTP method (GET, POST, ...)
//   - outcome: "ok" or the error kind (e.g. "server_error", "network_error")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend requests issued, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// APIRequestDuration measures backend round-trip time including body decode.
// Label:
//   - method: HTTP method
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend requests from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Authentication ────────────────────────────────────────────────────────────

// AuthOperationsTotal counts authentication operations.
// Labels:
//   - operation: login, send_code, check_code, sign_up, logout, restore
//   - result: "success" or "failure"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Autosave ──────────────────────────────────────────────────────────────────

// AutosaveScheduledTotal counts block edits that armed or re-armed the debounce timer.
var AutosaveScheduledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autosave_scheduled_total",
		Help:      "Total number of edits scheduled for autosave.",
	},
)

// AutosaveFlushedTotal counts autosaves that reached the backend.
// Label:
//   - result: "success", "failure" or "dropped" (enqueued after shutdown)
var AutosaveFlushedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autosave_flushed_total",
		Help:      "Total number of debounced block saves sent to the backend.",
	},
	[]string{"result"},
)

// SaveQueueDepth tracks pending saves in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var SaveQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "save_queue_depth",
		Help:      "Current number of saves pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Agent HTTP surface ────────────────────────────────────────────────────────

// AgentRequestsTotal counts requests served by the local agent.
// Labels:
//   - route: registered echo route path (e.g. "/v1/pages/:id")
//   - code: response status code
var AgentRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_requests_total",
		Help:      "Total number of requests served by the local agent.",
	},
	[]string{"route", "code"},
)

// Result converts an error into the "success"/"failure" label value.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
