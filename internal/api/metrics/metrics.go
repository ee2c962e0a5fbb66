// Package metrics defines and registers all custom Prometheus metrics for
// the school API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "school"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "bad_credentials", "locked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDenialsTotal counts authorization denials by internal reason. The HTTP
// response never distinguishes these; the label exists for operators only.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_identity", "insufficient_role"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of denied requests, by internal reason.",
	},
	[]string{"reason"},
)

// EntityMutationsTotal counts successful create/update/delete operations.
// Labels:
//   - entity: "user", "classroom", "subject"
//   - action: "create", "update", "delete"
var EntityMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_mutations_total",
		Help:      "Total number of successful entity mutations.",
	},
	[]string{"entity", "action"},
)

// AuditQueueDepth tracks pending audit entries per recorder worker.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)
