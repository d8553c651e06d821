// Package metrics holds the telemetry pipeline's Prometheus
// instrumentation and the HTTP endpoint that serves it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsGeneratedTotal counts packets produced by the collector, per kind.
	PacketsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obc_telemetry_packets_generated_total",
			Help: "Total number of telemetry packets generated",
		},
		[]string{"kind"},
	)

	// PacketsDroppedTotal counts packets discarded because the queue was full.
	PacketsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "obc_telemetry_packets_dropped_total",
			Help: "Total number of telemetry packets dropped on a full queue",
		},
	)

	// PacketsProcessedTotal counts packets consumed by the local processor, per kind.
	PacketsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obc_telemetry_packets_processed_total",
			Help: "Total number of telemetry packets rendered by the processor",
		},
		[]string{"kind"},
	)

	// PacketsTransmittedTotal counts packets drained through the downlink.
	PacketsTransmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "obc_telemetry_packets_transmitted_total",
			Help: "Total number of telemetry packets transmitted to ground",
		},
	)

	// ContactWindowsTotal counts opened ground-contact windows.
	ContactWindowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "obc_telemetry_contact_windows_total",
			Help: "Total number of ground-contact windows opened",
		},
	)

	// QueueDepth tracks current packet queue occupancy.
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "obc_telemetry_queue_depth",
			Help: "Current number of packets held in the telemetry queue",
		},
	)
)
