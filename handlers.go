package mqtt

import "github.com/golang-io/mqttendpoint/packet"

// Handlers holds the per-packet-kind callbacks an application registers
// before calling Connect. v3.1.1 and v5.0 variants of the same packet
// kind get separate slots rather than a single handler fed a version
// tag: a v3 callback never has to check a version argument it can't
// otherwise use, and a v5 callback always gets a ReasonCode/Properties
// pair instead of a caller-side cast.
//
// Every packet handler returns a bool: true keeps the Endpoint running,
// false requests a clean disconnect. OnPublishV3/OnPublishV5's return
// value has only that meaning: for a QoS 2 PUBLISH the receiver-side
// duplicate record is taken before the handler runs, whatever it returns.
type Handlers struct {
	OnConnackV3 func(sessionPresent bool, code packet.ReasonCode) bool
	OnConnackV5 func(sessionPresent bool, code packet.ReasonCode, props *packet.Properties) bool

	OnPubackV3  func(id uint16) bool
	OnPubackV5  func(id uint16, code packet.ReasonCode, props *packet.Properties) bool
	OnPubrecV3  func(id uint16) bool
	OnPubrecV5  func(id uint16, code packet.ReasonCode, props *packet.Properties) bool
	OnPubcompV3 func(id uint16) bool
	OnPubcompV5 func(id uint16, code packet.ReasonCode, props *packet.Properties) bool

	OnSubackV3 func(id uint16, codes []packet.ReasonCode) bool
	OnSubackV5 func(id uint16, codes []packet.ReasonCode, props *packet.Properties) bool

	OnUnsubackV3 func(id uint16) bool
	OnUnsubackV5 func(id uint16, codes []packet.ReasonCode, props *packet.Properties) bool

	// OnPublishV3/OnPublishV5 receive every inbound PUBLISH regardless of
	// QoS; isDup is always false regardless of the wire DUP bit, since an
	// application handler should only ever see "here is message N",
	// never "here is message N again, in case you missed it" — that
	// bookkeeping belongs to the QoS1/2 ack protocol, not the handler.
	// id is 0 for QoS0 publishes.
	OnPublishV3 func(id uint16, msg *packet.Message, qos uint8, retain bool, isDup bool) bool
	OnPublishV5 func(id uint16, msg *packet.Message, qos uint8, retain bool, isDup bool, props *packet.Properties) bool

	// PubResSentHandler fires once the QoS1/2 response packet (PUBACK or
	// PUBREC) for an inbound PUBLISH has left the outbound path.
	PubResSentHandler func(id uint16)

	// CloseHandler fires once, when the Endpoint transitions to
	// Disconnected, whatever the cause.
	CloseHandler func(cause error)

	// ErrorHandler fires for errors arising asynchronously (decode
	// failure, transport failure) rather than from a specific outbound
	// call's own return value.
	ErrorHandler func(err error)
}

func (h *Handlers) fireError(err error) {
	if h != nil && h.ErrorHandler != nil {
		h.ErrorHandler(err)
	}
}

func (h *Handlers) fireClose(cause error) {
	if h != nil && h.CloseHandler != nil {
		h.CloseHandler(cause)
	}
}

func (h *Handlers) firePubResSent(id uint16) {
	if h != nil && h.PubResSentHandler != nil {
		h.PubResSentHandler(id)
	}
}
