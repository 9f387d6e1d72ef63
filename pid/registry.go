// Package pid tracks which MQTT packet identifiers are currently in use by
// an Endpoint. Packet ids are 16-bit and never zero; the registry hands
// out unused ids, lets the caller register an id of its own choosing
// (an explicit-id DUP replay, for example), and releases ids once their
// transaction completes.
package pid

import (
	"sync"

	"github.com/golang-io/mqttendpoint/packet"
)

// Registry is safe for concurrent use; an Endpoint's public API
// (AcquireUniquePacketID, RegisterPacketID, ReleasePacketID) calls straight
// through to it from arbitrary caller goroutines, ahead of handing work to
// the strand loop.
type Registry struct {
	mu    sync.Mutex
	inUse map[uint16]bool
}

func NewRegistry() *Registry {
	return &Registry{inUse: make(map[uint16]bool)}
}

// AcquireUnique reserves and returns the smallest id not currently in
// use. It reports KindNoPacketID if all 65535 ids are in use.
func (r *Registry) AcquireUnique() (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.inUse) >= 65535 {
		return 0, &packet.Error{Kind: packet.KindNoPacketID, Detail: "packet id space exhausted"}
	}

	for id := uint32(1); id <= 65535; id++ {
		if !r.inUse[uint16(id)] {
			r.inUse[uint16(id)] = true
			return uint16(id), nil
		}
	}
	return 0, &packet.Error{Kind: packet.KindNoPacketID, Detail: "packet id space exhausted"}
}

// Register marks id as in use, for ids the caller did not obtain via
// AcquireUnique (an explicit-id publish such as a DUP replay). It reports
// KindPacketIDConflict if id is already registered.
func (r *Registry) Register(id uint16) error {
	if id == 0 {
		return &packet.Error{Kind: packet.KindProtocolError, Detail: "packet id must not be zero"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inUse[id] {
		return &packet.Error{Kind: packet.KindPacketIDConflict, Detail: "packet id already in use"}
	}
	r.inUse[id] = true
	return nil
}

// Release frees id for reuse. Releasing an id that is not registered is a
// no-op, matching the idempotent teardown a transaction abort needs.
func (r *Registry) Release(id uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inUse, id)
}

// InUse reports whether id is currently registered, for tests and for the
// Endpoint's diagnostic surface.
func (r *Registry) InUse(id uint16) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inUse[id]
}

// Len reports how many ids are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inUse)
}
