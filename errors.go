package mqtt

import "github.com/golang-io/mqttendpoint/packet"

// Kind and Error are the same taxonomy packet.Kind/packet.Error already
// define: the codec raises them on malformed wire data, the Endpoint
// raises them on protocol and lifecycle violations. Aliasing rather than
// duplicating keeps errors.Is/errors.As working uniformly whether the
// error originated in the codec or the state machine.
type Kind = packet.Kind

type Error = packet.Error

const (
	KindMalformedPacket  = packet.KindMalformedPacket
	KindProtocolError    = packet.KindProtocolError
	KindTransportError   = packet.KindTransportError
	KindKeepAliveTimeout = packet.KindKeepAliveTimeout
	KindNoPacketID       = packet.KindNoPacketID
	KindPacketIDConflict = packet.KindPacketIDConflict
	KindInvalidTopic     = packet.KindInvalidTopic
	KindBadResponse      = packet.KindBadResponse
	KindOperationAborted = packet.KindOperationAborted
)
