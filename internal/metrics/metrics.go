// Package metrics holds the trainer's Prometheus collectors.
//
// Grounded on prometheus.go's NewPrometheusMetrics constructor pattern: one
// struct of collectors built with promauto at construction time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for one trainer instance.
type Metrics struct {
	DecodedMessages prometheus.Counter
	DecodedChars    prometheus.Counter
	EstimatedWPM    prometheus.Gauge
	ActiveCallers   prometheus.Gauge
	CompletedQSOs   prometheus.Counter
	RejectedExchanges prometheus.Counter
	NoiseFloor      prometheus.Gauge
}

// New creates and registers the trainer's metrics.
func New() *Metrics {
	return &Metrics{
		DecodedMessages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwtrainer_decoded_messages_total",
			Help: "Total number of complete decoded RX messages.",
		}),
		DecodedChars: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwtrainer_decoded_chars_total",
			Help: "Total number of decoded Morse characters.",
		}),
		EstimatedWPM: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cwtrainer_estimated_wpm",
			Help: "Current adaptive speed estimate, in words per minute.",
		}),
		ActiveCallers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cwtrainer_active_callers",
			Help: "Number of callers currently pending or active in the QSO state machine.",
		}),
		CompletedQSOs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwtrainer_completed_qsos_total",
			Help: "Total number of completed contacts.",
		}),
		RejectedExchanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cwtrainer_rejected_exchanges_total",
			Help: "Total number of inbound messages rejected by the QSO state machine.",
		}),
		NoiseFloor: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cwtrainer_noise_floor",
			Help: "Current keying-detector noise floor estimate.",
		}),
	}
}

// ObserveWPM converts dot-seconds to WPM (1 dot = 1.2/WPM seconds) and
// records it.
func (m *Metrics) ObserveWPM(dotSeconds float64) {
	if dotSeconds <= 0 {
		return
	}
	m.EstimatedWPM.Set(1.2 / dotSeconds)
}
