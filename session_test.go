package mqtt

import "testing"

func TestSession_MarkReceivingDedup(t *testing.T) {
	s := newSession("c1", true)
	if !s.markReceiving(1) {
		t.Error("first markReceiving should succeed")
	}
	if s.markReceiving(1) {
		t.Error("second markReceiving for the same id should report a duplicate")
	}
	s.releaseReceiving(1)
	if s.isReceiving(1) {
		t.Error("isReceiving should be false after release")
	}
	if !s.markReceiving(1) {
		t.Error("markReceiving should succeed again after release")
	}
}

func TestSession_ResetClearsState(t *testing.T) {
	s := newSession("c1", true)
	s.markReceiving(7)
	if _, err := s.registry.AcquireUnique(); err != nil {
		t.Fatalf("AcquireUnique() failed: %v", err)
	}
	s.reset()
	if s.isReceiving(7) {
		t.Error("reset should clear recvQoS2")
	}
	if s.registry.Len() != 0 {
		t.Error("reset should clear the packet-id registry")
	}
}
