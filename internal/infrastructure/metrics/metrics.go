package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GatewayMetrics holds every metric of the invoice pipeline
type GatewayMetrics struct {
	InvoicesCreatedTotal     prometheus.CounterVec
	InvoiceTransitionsTotal  prometheus.CounterVec
	WebhookDeliveriesTotal   prometheus.CounterVec
	RateLookupsTotal         prometheus.CounterVec
	RateLookupDuration       prometheus.HistogramVec
	MaintenanceSweepsTotal   prometheus.Counter
	PendingInvoicesGauge     prometheus.Gauge
}

func NewGatewayMetrics() *GatewayMetrics {
	return &GatewayMetrics{
		InvoicesCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoices_created_total",
				Help: "Total invoices created",
			},
			[]string{"store_id", "currency"},
		),

		InvoiceTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_transitions_total",
				Help: "Invoice lifecycle transitions by resulting status",
			},
			[]string{"store_id", "status"},
		),

		WebhookDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Webhook delivery attempts by event type and result",
			},
			[]string{"event_type", "result"},
		),

		RateLookupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_lookups_total",
				Help: "Exchange rate lookups by provider and result",
			},
			[]string{"provider", "result"},
		),

		RateLookupDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_lookup_duration_seconds",
				Help:    "Time spent fetching a BTC price from a provider",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
			},
			[]string{"provider"},
		),

		MaintenanceSweepsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "maintenance_sweeps_total",
				Help: "Full reconciliation sweeps executed",
			},
		),

		PendingInvoicesGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pending_invoices",
				Help: "Invoices currently in NEW or PROCESSING",
			},
		),
	}
}
