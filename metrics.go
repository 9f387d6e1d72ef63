package mqtt

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a set of Prometheus collectors any number of Endpoints can
// share, registered against a caller-supplied Registry. Serving /metrics
// over HTTP is the embedding application's job, not this package's.
type Metrics struct {
	ActiveEndpoints prometheus.Gauge
	Reconnects      prometheus.Counter
	PacketsSent     prometheus.Counter
	BytesSent       prometheus.Counter
	PacketsReceived prometheus.Counter
	BytesReceived   prometheus.Counter
}

// NewMetrics constructs and registers a Metrics against reg. Passing nil
// returns a Metrics whose collectors are created but never registered
// anywhere, safe to use as a no-op default.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		ActiveEndpoints: prometheus.NewGauge(prometheus.GaugeOpts{Name: "mqtt_endpoint_active", Help: "Number of currently connected Endpoints"}),
		Reconnects:      prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_endpoint_reconnects_total", Help: "Total reconnect attempts across Endpoints"}),
		PacketsSent:     prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_packets_sent_total", Help: "Total MQTT control packets sent"}),
		BytesSent:       prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_bytes_sent_total", Help: "Total MQTT bytes sent"}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_packets_received_total", Help: "Total MQTT control packets received"}),
		BytesReceived:   prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_bytes_received_total", Help: "Total MQTT bytes received"}),
	}
	if reg != nil {
		reg.MustRegister(m.ActiveEndpoints, m.Reconnects, m.PacketsSent, m.BytesSent, m.PacketsReceived, m.BytesReceived)
	}
	return m
}
