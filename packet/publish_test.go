package packet

import (
	"bytes"
	"testing"
)

func TestPUBLISH_PackUnpackRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		version byte
		pkt     *PUBLISH
	}{
		{
			name:    "V311_QoS0",
			version: Version311,
			pkt: &PUBLISH{
				FixedHeader: &FixedHeader{QoS: 0},
				Message:     &Message{Topic: "sensors/temp", Payload: []byte("21.5")},
			},
		},
		{
			name:    "V311_QoS1WithPacketID",
			version: Version311,
			pkt: &PUBLISH{
				FixedHeader: &FixedHeader{QoS: 1},
				PacketID:    42,
				Message:     &Message{Topic: "sensors/humidity", Payload: []byte("55")},
			},
		},
		{
			name:    "V5_QoS2WithProps",
			version: Version5,
			pkt: &PUBLISH{
				FixedHeader: &FixedHeader{QoS: 2},
				PacketID:    7,
				Message:     &Message{Topic: "a/b", Payload: []byte("payload")},
				Props:       NewProperties(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.pkt.Version = tc.version
			if tc.pkt.Props != nil {
				tc.pkt.Props.SetByte(PropPayloadFormatIndicator, 1)
			}

			var buf bytes.Buffer
			if err := tc.pkt.Pack(&buf); err != nil {
				t.Fatalf("Pack() failed: %v", err)
			}

			pkt, err := Decode(tc.version, &buf)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			got := pkt.(*PUBLISH)

			if got.Message.Topic != tc.pkt.Message.Topic {
				t.Errorf("Topic = %q, want %q", got.Message.Topic, tc.pkt.Message.Topic)
			}
			if !bytes.Equal(got.Message.Payload, tc.pkt.Message.Payload) {
				t.Errorf("Payload = %q, want %q", got.Message.Payload, tc.pkt.Message.Payload)
			}
			if tc.pkt.QoS != 0 && got.PacketID != tc.pkt.PacketID {
				t.Errorf("PacketID = %d, want %d", got.PacketID, tc.pkt.PacketID)
			}
		})
	}
}

func TestPUBLISH_RejectsWildcardTopic(t *testing.T) {
	for _, topic := range []string{"a/+/c", "a/#", "+", "#"} {
		pkt := &PUBLISH{
			FixedHeader: &FixedHeader{},
			Message:     &Message{Topic: topic, Payload: []byte("x")},
		}
		var buf bytes.Buffer
		err := pkt.Pack(&buf)
		if err == nil {
			t.Errorf("expected InvalidTopic error for topic %q", topic)
			continue
		}
		if !isKind(err, KindInvalidTopic) {
			t.Errorf("topic %q: got error %v, want KindInvalidTopic", topic, err)
		}
	}
}

func TestPUBLISH_RejectsEmptyTopic(t *testing.T) {
	pkt := &PUBLISH{FixedHeader: &FixedHeader{}, Message: &Message{Topic: "", Payload: nil}}
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); !isKind(err, KindInvalidTopic) {
		t.Errorf("got %v, want KindInvalidTopic", err)
	}
}

func isKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
