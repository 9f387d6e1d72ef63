package pid

import (
	"errors"
	"testing"

	"github.com/golang-io/mqttendpoint/packet"
)

func TestRegistry_AcquireUniqueNeverRepeatsWhileHeld(t *testing.T) {
	r := NewRegistry()
	seen := map[uint16]bool{}
	for i := 0; i < 1000; i++ {
		id, err := r.AcquireUnique()
		if err != nil {
			t.Fatalf("AcquireUnique() failed at %d: %v", i, err)
		}
		if id == 0 {
			t.Fatal("AcquireUnique() must never return 0")
		}
		if seen[id] {
			t.Fatalf("AcquireUnique() returned duplicate id %d while still held", id)
		}
		seen[id] = true
	}
}

func TestRegistry_ReleaseAllowsReuse(t *testing.T) {
	r := NewRegistry()
	id, err := r.AcquireUnique()
	if err != nil {
		t.Fatalf("AcquireUnique() failed: %v", err)
	}
	r.Release(id)
	if r.InUse(id) {
		t.Error("id should not be in use after Release")
	}
}

func TestRegistry_RegisterConflict(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(5); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	err := r.Register(5)
	var perr *packet.Error
	if !errors.As(err, &perr) || perr.Kind != packet.KindPacketIDConflict {
		t.Errorf("Register() second call = %v, want KindPacketIDConflict", err)
	}
}

func TestRegistry_RegisterRejectsZero(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(0); err == nil {
		t.Error("Register(0) should fail")
	}
}

func TestRegistry_ExhaustedSpace(t *testing.T) {
	r := NewRegistry()
	for i := 1; i <= 65535; i++ {
		if err := r.Register(uint16(i)); err != nil {
			t.Fatalf("Register(%d) failed: %v", i, err)
		}
	}
	_, err := r.AcquireUnique()
	var perr *packet.Error
	if !errors.As(err, &perr) || perr.Kind != packet.KindNoPacketID {
		t.Errorf("AcquireUnique() on exhausted registry = %v, want KindNoPacketID", err)
	}
}
