package packet

import (
	"bytes"
	"testing"
)

func TestSUBACK_PackUnpackRoundTrip(t *testing.T) {
	pkt := &SUBACK{
		FixedHeader: &FixedHeader{},
		PacketID:    10,
		ReasonCodes: []ReasonCode{CodeGrantedQoS0, CodeGrantedQoS1, CodeUnspecifiedError},
	}
	pkt.Version = Version5

	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got, err := Decode(Version5, &buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	suback := got.(*SUBACK)
	if len(suback.ReasonCodes) != 3 {
		t.Fatalf("ReasonCodes len = %d, want 3", len(suback.ReasonCodes))
	}
	for i, want := range pkt.ReasonCodes {
		if suback.ReasonCodes[i].Code != want.Code {
			t.Errorf("ReasonCodes[%d] = %#02x, want %#02x", i, suback.ReasonCodes[i].Code, want.Code)
		}
	}
}

// A v5 SUBACK is malformed only when it carries no reason codes, not when
// an individual reason code is 0x80+ (per-filter failure), unlike the
// stricter validation an earlier version of this decoder applied.
func TestSUBACK_AcceptsFullV5ReasonCodeRange(t *testing.T) {
	for _, code := range []byte{0x00, 0x01, 0x02, 0x80, 0x91, 0xA2} {
		buf := bytes.NewBuffer([]byte{0x00, 0x01, 0x00, code})
		pkt := &SUBACK{FixedHeader: &FixedHeader{Version: Version5}}
		if err := pkt.Unpack(buf); err != nil {
			t.Errorf("reason code %#02x: unexpected error %v", code, err)
		}
	}
}

func TestSUBACK_RejectsEmptyReasonCodeList(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x01})
	pkt := &SUBACK{FixedHeader: &FixedHeader{Version: Version311}}
	if err := pkt.Unpack(buf); err == nil {
		t.Error("expected error for suback with no reason codes")
	}
}
