package mqtt

import (
	"github.com/golang-io/mqttendpoint/pid"
	"github.com/golang-io/mqttendpoint/store"
)

// Session is the piece of Endpoint state a reconnect either resumes
// (session_present=true) or discards (clean_start): the packet-id
// registry, the retained outbound QoS1/2 transactions, and the set of
// inbound QoS2 packet ids already delivered to the application but not
// yet released by PUBREL. It is owned exclusively by the Endpoint's
// strand loop.
type Session struct {
	ClientID   string
	CleanStart bool

	registry *pid.Registry
	store    *store.Store

	// recvQoS2 tracks inbound QoS2 PUBLISH ids already handed to
	// publish_handler, so a duplicate PUBLISH before the matching PUBREL
	// arrives is acked again without a second handler invocation.
	recvQoS2 map[uint16]bool
}

func newSession(clientID string, cleanStart bool) *Session {
	return &Session{
		ClientID:   clientID,
		CleanStart: cleanStart,
		registry:   pid.NewRegistry(),
		store:      store.New(),
		recvQoS2:   make(map[uint16]bool),
	}
}

// reset discards in-flight state for a clean_start session; a resumed
// session keeps its Store and registry across the reconnect.
func (s *Session) reset() {
	s.registry = pid.NewRegistry()
	s.store = store.New()
	s.recvQoS2 = make(map[uint16]bool)
}

func (s *Session) markReceiving(id uint16) bool {
	if s.recvQoS2[id] {
		return false
	}
	s.recvQoS2[id] = true
	return true
}

func (s *Session) releaseReceiving(id uint16) {
	delete(s.recvQoS2, id)
}

func (s *Session) isReceiving(id uint16) bool {
	return s.recvQoS2[id]
}
