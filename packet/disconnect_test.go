package packet

import (
	"bytes"
	"testing"
)

func TestDISCONNECT_V311_NoBody(t *testing.T) {
	pkt := &DISCONNECT{FixedHeader: &FixedHeader{Version: Version311}}
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}
	if pkt.RemainingLength != 0 {
		t.Errorf("RemainingLength = %d, want 0 for v3.1.1", pkt.RemainingLength)
	}
}

func TestDISCONNECT_V5_OmitsSuccessBody(t *testing.T) {
	pkt := &DISCONNECT{FixedHeader: &FixedHeader{Version: Version5}, ReasonCode: CodeSuccess}
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}
	if pkt.RemainingLength != 0 {
		t.Errorf("RemainingLength = %d, want 0 when reason is success with no properties", pkt.RemainingLength)
	}
}

func TestDISCONNECT_V5_CarriesReasonAndProps(t *testing.T) {
	pkt := &DISCONNECT{
		FixedHeader: &FixedHeader{Version: Version5},
		ReasonCode:  CodeServerShuttingDown,
		Props:       NewProperties(),
	}
	pkt.Props.SetString(PropReasonString, "maintenance")

	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got, err := Decode(Version5, &buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	d := got.(*DISCONNECT)
	if d.ReasonCode.Code != CodeServerShuttingDown.Code {
		t.Errorf("ReasonCode = %#02x, want %#02x", d.ReasonCode.Code, CodeServerShuttingDown.Code)
	}
	if s, ok := d.Props.String(PropReasonString); !ok || s != "maintenance" {
		t.Errorf("ReasonString = %q, ok=%v, want maintenance", s, ok)
	}
}
