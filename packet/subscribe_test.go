package packet

import (
	"bytes"
	"testing"
)

func TestSUBSCRIBE_PackUnpackRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		version byte
		pkt     *SUBSCRIBE
	}{
		{
			name:    "V311_SingleFilter",
			version: Version311,
			pkt: &SUBSCRIBE{
				FixedHeader:   &FixedHeader{},
				PacketID:      10,
				Subscriptions: []Subscription{{TopicFilter: "a/b", MaximumQoS: 1}},
			},
		},
		{
			name:    "V5_MultipleFiltersWithOptions",
			version: Version5,
			pkt: &SUBSCRIBE{
				FixedHeader: &FixedHeader{},
				PacketID:    11,
				Subscriptions: []Subscription{
					{TopicFilter: "a/+", MaximumQoS: 2, NoLocal: true, RetainAsPublished: true, RetainHandling: 1},
					{TopicFilter: "a/#", MaximumQoS: 0},
				},
				Props: NewProperties(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.pkt.Version = tc.version
			if tc.pkt.Props != nil {
				tc.pkt.Props.AddSubscriptionIdentifier(5)
			}

			var buf bytes.Buffer
			if err := tc.pkt.Pack(&buf); err != nil {
				t.Fatalf("Pack() failed: %v", err)
			}

			pkt, err := Decode(tc.version, &buf)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			got := pkt.(*SUBSCRIBE)

			if got.PacketID != tc.pkt.PacketID {
				t.Errorf("PacketID = %d, want %d", got.PacketID, tc.pkt.PacketID)
			}
			if len(got.Subscriptions) != len(tc.pkt.Subscriptions) {
				t.Fatalf("Subscriptions len = %d, want %d", len(got.Subscriptions), len(tc.pkt.Subscriptions))
			}
			for i, sub := range got.Subscriptions {
				want := tc.pkt.Subscriptions[i]
				if sub != want {
					t.Errorf("Subscriptions[%d] = %+v, want %+v", i, sub, want)
				}
			}
		})
	}
}

func TestSUBSCRIBE_RequiresAtLeastOneFilter(t *testing.T) {
	pkt := &SUBSCRIBE{FixedHeader: &FixedHeader{}, PacketID: 1}
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err == nil {
		t.Error("expected error when Subscriptions is empty")
	}
}

func TestSUBSCRIBE_RejectsReservedOptionBits(t *testing.T) {
	data := []byte{
		0x00, 0x01, // packet id
		0x00, 0x01, 'a', // topic filter "a"
		0xC0, // reserved bits set
	}
	pkt := &SUBSCRIBE{FixedHeader: &FixedHeader{Version: Version311}}
	if err := pkt.Unpack(bytes.NewBuffer(data)); err == nil {
		t.Error("expected error for reserved subscription option bits")
	}
}
