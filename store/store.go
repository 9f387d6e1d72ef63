// Package store retains outbound QoS 1/2 packets until they are
// acknowledged. It is the piece that makes reconnect replay possible: an
// Endpoint reconnecting with session_present=true walks a Store in
// original insertion order and re-sends whatever is still pending, DUP
// flag set.
package store

import (
	"time"

	"github.com/golang-io/mqttendpoint/packet"
)

// State is the transaction-state discriminant a stored entry can be in.
type State int

const (
	// AwaitingPuback: outbound QoS1 PUBLISH sent, waiting for PUBACK.
	AwaitingPuback State = iota + 1
	// AwaitingPubrec: outbound QoS2 PUBLISH sent, waiting for PUBREC.
	AwaitingPubrec
	// AwaitingPubcomp: PUBREC received, PUBREL sent, waiting for PUBCOMP.
	AwaitingPubcomp
)

func (s State) String() string {
	switch s {
	case AwaitingPuback:
		return "awaiting-puback"
	case AwaitingPubrec:
		return "awaiting-pubrec"
	case AwaitingPubcomp:
		return "awaiting-pubcomp"
	default:
		return "unknown"
	}
}

// Entry is one retained outbound transaction: the packet id it is keyed
// on, which response it is waiting for, the packet to (re)send, and when
// it was first sent.
type Entry struct {
	PacketID uint16
	State    State
	Packet   packet.Packet
	SentAt   time.Time
}

// Store is an insertion-ordered collection of Entry, at most one per
// packet id. It is not safe for concurrent use on its own; the Endpoint's
// strand loop is the only goroutine that touches it.
type Store struct {
	order   []uint16
	entries map[uint16]*Entry
}

func New() *Store {
	return &Store{entries: make(map[uint16]*Entry)}
}

// InsertPublish records an outbound PUBLISH. QoS1 publishes wait for
// PUBACK; QoS2 publishes wait for PUBREC. It reports a ProtocolError if id
// already has an entry, preserving the at-most-one-entry-per-id invariant.
func (s *Store) InsertPublish(pkt *packet.PUBLISH, sentAt time.Time) error {
	id := pkt.PacketID
	if _, exists := s.entries[id]; exists {
		return &packet.Error{Kind: packet.KindProtocolError, Detail: "store already holds an entry for this packet id"}
	}

	var state State
	switch pkt.QoS {
	case 1:
		state = AwaitingPuback
	case 2:
		state = AwaitingPubrec
	default:
		return &packet.Error{Kind: packet.KindProtocolError, Detail: "store only retains QoS1/QoS2 publishes"}
	}

	s.entries[id] = &Entry{PacketID: id, State: state, Packet: pkt, SentAt: sentAt}
	s.order = append(s.order, id)
	return nil
}

// OnPubrec transitions a QoS2 entry from AwaitingPubrec to AwaitingPubcomp,
// swapping the stored PUBLISH for the PUBREL that must now be (re)sent on
// replay. It reports a ProtocolError if id has no entry or is not
// currently awaiting a PUBREC — an unexpected PUBREC for example.
func (s *Store) OnPubrec(id uint16, rel *packet.PUBREL) error {
	e, ok := s.entries[id]
	if !ok {
		return &packet.Error{Kind: packet.KindProtocolError, Detail: "PUBREC for unknown packet id"}
	}
	if e.State != AwaitingPubrec {
		return &packet.Error{Kind: packet.KindProtocolError, Detail: "unexpected PUBREC for packet id"}
	}
	e.State = AwaitingPubcomp
	e.Packet = rel
	return nil
}

// Erase removes id's entry on a matching PUBACK (QoS1) or PUBCOMP (QoS2).
// Erasing an id with no entry is a no-op; a duplicate ack for an id
// already released should not be treated as fatal.
func (s *Store) Erase(id uint16) {
	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns the entry for id, if any.
func (s *Store) Get(id uint16) (*Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Len reports how many entries are retained.
func (s *Store) Len() int { return len(s.order) }

// Replay returns, in original insertion order, the packets that must be
// re-sent after a reconnect with session_present=true. PUBLISH entries are
// returned with DUP set; PUBREL entries carry no DUP bit and are returned
// unchanged, matching real MQTT wire semantics (PUBREL's fixed header has
// no DUP flag position).
func (s *Store) Replay() []packet.Packet {
	out := make([]packet.Packet, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		if pub, ok := e.Packet.(*packet.PUBLISH); ok {
			pub.Dup = 1
		}
		out = append(out, e.Packet)
	}
	return out
}
