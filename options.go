package mqtt

import (
	"time"

	"github.com/golang-io/mqttendpoint/packet"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Option configures a new Endpoint.
type Option func(*endpointOptions)

type endpointOptions struct {
	version  byte
	logger   *logrus.Logger
	metrics  *Metrics
	handlers *Handlers
}

func newEndpointOptions(opts ...Option) endpointOptions {
	o := endpointOptions{
		version: packet.Version311,
		logger:  logrus.StandardLogger(),
		handlers: &Handlers{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithVersion selects the MQTT protocol version (packet.Version311 or
// packet.Version5) the Endpoint speaks. Defaults to packet.Version311.
func WithVersion(version byte) Option {
	return func(o *endpointOptions) { o.version = version }
}

// WithLogger injects a *logrus.Logger for structured connection-lifecycle
// logging. Defaults to logrus.StandardLogger().
func WithLogger(log *logrus.Logger) Option {
	return func(o *endpointOptions) { o.logger = log }
}

// WithMetrics attaches a Metrics collector set. Endpoints created without
// this option do not record metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *endpointOptions) { o.metrics = m }
}

// WithHandlers registers the packet-kind callbacks up front, as an
// alternative to setting Endpoint.Handlers fields individually before
// Connect.
func WithHandlers(h *Handlers) Option {
	return func(o *endpointOptions) { o.handlers = h }
}

// ConnectOptions parameterises Connect. Expressed as a plain struct
// literal rather than setter methods: a one-shot per-call options value
// has no state to hide behind methods, so Go's zero-value struct
// literals already give the same ergonomics.
type ConnectOptions struct {
	CleanStart bool
	KeepAlive  time.Duration
	Will       *packet.Will
	Username   string
	Password   string
	Properties *packet.Properties
}

// defaultClientID generates a client identifier, applied only when the
// caller leaves ClientID empty.
func defaultClientID() string {
	return "mqtt-" + uuid.NewString()
}
