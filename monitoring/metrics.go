package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Payment webhook deliveries by response status",
		},
		[]string{"status"},
	)

	webhookDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webhook_processing_seconds",
			Help:    "Time spent reconciling one payment webhook",
			Buckets: prometheus.DefBuckets,
		},
	)

	materializations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_materializations_total",
			Help: "Ticket materialization attempts by result",
		},
		[]string{"result"},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets created from completed orders",
		},
	)

	ticketCheckins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_checkins_total",
			Help: "Ticket verification attempts at the gate by result",
		},
		[]string{"result"},
	)

	activeOrderStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_streams_active",
			Help: "Open websocket connections following an order",
		},
	)
)

func RecordWebhook(status string, started time.Time) {
	webhookDeliveries.WithLabelValues(status).Inc()
	webhookDuration.Observe(time.Since(started).Seconds())
}

func RecordMaterialization(result string) {
	materializations.WithLabelValues(result).Inc()
}

func RecordTicketsIssued(n int) {
	ticketsIssued.Add(float64(n))
}

func RecordCheckin(result string) {
	ticketCheckins.WithLabelValues(result).Inc()
}

func OrderStreamOpened() { activeOrderStreams.Inc() }

func OrderStreamClosed() { activeOrderStreams.Dec() }
