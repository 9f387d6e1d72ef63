package transport

import "github.com/golang-io/mqttendpoint/packet"

// newBadMessageError reports a WebSocket text frame arriving where MQTT
// requires binary framing.
func newBadMessageError() error {
	return &packet.Error{Kind: packet.KindTransportError, Detail: "websocket: expected binary frame, got text frame"}
}
