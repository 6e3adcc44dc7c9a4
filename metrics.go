package mqtt

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the counters/gauges a Client or StreamClient updates as it
// runs. The zero value is not usable (its fields are nil); build one with
// NewMetrics, which initializes every field. Metrics are only exported to a
// scrape target once the caller explicitly calls Register; embedding this
// library never reaches into a global registry on its own.
type Metrics struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	BytesSent       prometheus.Counter
	BytesReceived   prometheus.Counter
	InFlight        prometheus.Gauge
	EnqueueReplaced prometheus.Counter
}

// NewMetrics constructs an unregistered Metrics instance. Callers that
// want to serve /metrics should build one of these with NewMetrics, pass
// it to New/NewStream via WithMetrics, and call Register once a
// *prometheus.Registry is available.
func NewMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PacketsSent:     prometheus.NewCounter(prometheus.CounterOpts{Name: "rawmqtt_packets_sent_total", Help: "Total MQTT control packets sent."}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{Name: "rawmqtt_packets_received_total", Help: "Total MQTT control packets received."}),
		BytesSent:       prometheus.NewCounter(prometheus.CounterOpts{Name: "rawmqtt_bytes_sent_total", Help: "Total bytes written to the transport."}),
		BytesReceived:   prometheus.NewCounter(prometheus.CounterOpts{Name: "rawmqtt_bytes_received_total", Help: "Total bytes read from the transport."}),
		InFlight:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "rawmqtt_inflight_publishes", Help: "QoS 1 publishes submitted but not yet acknowledged."}),
		EnqueueReplaced: prometheus.NewCounter(prometheus.CounterOpts{Name: "rawmqtt_enqueue_replaced_total", Help: "Stream publishes dropped by LIFO overwrite."}),
	}
}

// Register adds every metric to reg. Call once per process; a CLI
// collaborator typically does this right before serving /metrics.
func (m *Metrics) Register(reg *prometheus.Registry) error {
	for _, c := range []prometheus.Collector{
		m.PacketsSent, m.PacketsReceived, m.BytesSent, m.BytesReceived, m.InFlight, m.EnqueueReplaced,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
