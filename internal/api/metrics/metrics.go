// Package metrics defines the custom Prometheus metrics of the storefront.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed on GET /metrics together with the echo request metrics.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/saborshop/storefront/internal/core/domain"
)

const namespace = "storefront"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogLoadsTotal counts category loads.
// Labels:
//   - category: see CategoryLabel
//   - result: "ok", "error" or "stale"
var CatalogLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "Total number of category loads, by category and result.",
	},
	[]string{"category", "result"},
)

// OtherCategory is the label shared by every category outside the featured set.
const OtherCategory = "other"

// CategoryLabel maps a requested category onto the bounded label set: "all",
// one of domain.FeaturedCategories, or OtherCategory.
func CategoryLabel(category string) string {
	if strings.EqualFold(category, domain.AllCategories) {
		return domain.AllCategories
	}
	for _, c := range domain.FeaturedCategories {
		if strings.EqualFold(category, c) {
			return c
		}
	}
	return OtherCategory
}

// RevealTriggersTotal counts reveal triggers.
// Labels:
//   - trigger: "scroll" or "button"
//   - outcome: "revealed", "exhausted" or the refusal reason
var RevealTriggersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reveal_triggers_total",
		Help:      "Total number of reveal triggers, by trigger and outcome.",
	},
	[]string{"trigger", "outcome"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart mutations.
// Label:
//   - op: "add", "remove", "adjust" or "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CartPersistFailuresTotal counts mutations whose snapshot could not be saved.
var CartPersistFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persist_failures_total",
		Help:      "Total number of cart mutations kept in memory but not saved.",
	},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutsTotal counts accepted orders.
// Label:
//   - email: "queued" or "skipped"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of accepted orders, by email status.",
	},
	[]string{"email"},
)

// MailQueueDepth tracks the number of confirmation emails waiting per worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of confirmation emails pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// MailSendDuration measures one call to the email provider.
// Label:
//   - result: "sent" or "failed"
var MailSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_send_duration_seconds",
		Help:      "Duration of confirmation email delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// MailDroppedTotal counts emails dropped because the worker queue was full.
var MailDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dropped_total",
		Help:      "Total number of confirmation emails dropped on a full queue.",
	},
)
