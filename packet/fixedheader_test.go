package packet

import (
	"bytes"
	"testing"
)

func TestFixedHeader_PackUnpackRoundTrip(t *testing.T) {
	h := &FixedHeader{Version: Version311, Kind: KindPublish, Dup: 1, QoS: 2, Retain: 1, RemainingLength: 300}
	var buf bytes.Buffer
	if err := h.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got := &FixedHeader{Version: Version311}
	if err := got.Unpack(&buf); err != nil {
		t.Fatalf("Unpack() failed: %v", err)
	}
	if *got != (FixedHeader{Version: Version311, Kind: KindPublish, Dup: 1, QoS: 2, Retain: 1, RemainingLength: 300}) {
		t.Errorf("got %+v", got)
	}
}

func TestFixedHeader_RejectsInvalidPublishQoS(t *testing.T) {
	buf := bytes.NewBuffer([]byte{byte(KindPublish)<<4 | 0x06, 0x00})
	h := &FixedHeader{Version: Version311}
	if err := h.Unpack(buf); err == nil {
		t.Error("expected error for PUBLISH qos value 3")
	}
}

func TestFixedHeader_RejectsDupWithQoS0(t *testing.T) {
	buf := bytes.NewBuffer([]byte{byte(KindPublish)<<4 | 0x08, 0x00})
	h := &FixedHeader{Version: Version311}
	if err := h.Unpack(buf); err == nil {
		t.Error("expected error for PUBLISH dup=1 with qos=0")
	}
}

func TestFixedHeader_RejectsReservedFlagsOnFixedFlagKinds(t *testing.T) {
	// SUBSCRIBE requires flags 0b0010; setting them to 0 is invalid.
	buf := bytes.NewBuffer([]byte{byte(KindSubscribe) << 4, 0x00})
	h := &FixedHeader{Version: Version311}
	if err := h.Unpack(buf); err == nil {
		t.Error("expected error for SUBSCRIBE with wrong reserved flags")
	}
}
