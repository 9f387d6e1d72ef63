package packet

import (
	"bytes"
	"testing"
)

func TestUNSUBSCRIBE_PackUnpackRoundTrip(t *testing.T) {
	pkt := &UNSUBSCRIBE{
		FixedHeader:  &FixedHeader{},
		PacketID:     20,
		TopicFilters: []string{"a/b", "c/+/d"},
	}
	pkt.Version = Version311

	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got, err := Decode(Version311, &buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	unsub := got.(*UNSUBSCRIBE)
	if unsub.PacketID != pkt.PacketID {
		t.Errorf("PacketID = %d, want %d", unsub.PacketID, pkt.PacketID)
	}
	if len(unsub.TopicFilters) != 2 || unsub.TopicFilters[0] != "a/b" || unsub.TopicFilters[1] != "c/+/d" {
		t.Errorf("TopicFilters = %v, want [a/b c/+/d]", unsub.TopicFilters)
	}
}

func TestUNSUBSCRIBE_RequiresAtLeastOneFilter(t *testing.T) {
	pkt := &UNSUBSCRIBE{FixedHeader: &FixedHeader{}, PacketID: 1}
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err == nil {
		t.Error("expected error when TopicFilters is empty")
	}
}
