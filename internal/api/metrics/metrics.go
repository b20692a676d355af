// Package metrics defines all custom Prometheus metrics for the CPA practice
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cpa"

// ClientsCreatedTotal counts client cases created through intake.
// Label:
//   - entity_type: the tax entity type (e.g. "INDIVIDUAL", "LLC")
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of client cases created, by entity type.",
	},
	[]string{"entity_type"},
)

// StatusTransitionsTotal counts workflow stage transitions applied to client
// cases.
// Label:
//   - status: the stage transitioned into (e.g. "PREPARATION")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of client case stage transitions, by target status.",
	},
	[]string{"status"},
)

// DocumentsClassifiedTotal counts uploaded documents by the type the
// classifier assigned.
// Label:
//   - document_type: the assigned category (e.g. "W2", "RECEIPT", "OTHER")
var DocumentsClassifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_classified_total",
		Help:      "Total number of documents uploaded and classified, by assigned type.",
	},
	[]string{"document_type"},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
var RateLimitRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)
