package packet

import (
	"bytes"
	"testing"
)

func TestCONNACK_PackUnpackRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		version byte
		pkt     *CONNACK
	}{
		{
			name:    "V311_Accepted",
			version: Version311,
			pkt:     &CONNACK{FixedHeader: &FixedHeader{}, SessionPresent: false, ReasonCode: CodeSuccess},
		},
		{
			name:    "V311_SessionPresent",
			version: Version311,
			pkt:     &CONNACK{FixedHeader: &FixedHeader{}, SessionPresent: true, ReasonCode: CodeSuccess},
		},
		{
			name:    "V5_WithReasonCodeAndProps",
			version: Version5,
			pkt: &CONNACK{
				FixedHeader: &FixedHeader{},
				ReasonCode:  CodeNotAuthorized,
				Props:       NewProperties(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.pkt.Version = tc.version
			if tc.pkt.Props != nil {
				tc.pkt.Props.SetUint16(PropReceiveMaximum, 100)
			}

			var buf bytes.Buffer
			if err := tc.pkt.Pack(&buf); err != nil {
				t.Fatalf("Pack() failed: %v", err)
			}

			fh := &FixedHeader{Version: tc.version}
			if err := fh.Unpack(&buf); err != nil {
				t.Fatalf("FixedHeader.Unpack() failed: %v", err)
			}
			body := bytes.NewBuffer(buf.Next(int(fh.RemainingLength)))

			got := &CONNACK{FixedHeader: fh}
			if err := got.Unpack(body); err != nil {
				t.Fatalf("Unpack() failed: %v", err)
			}

			if got.SessionPresent != tc.pkt.SessionPresent {
				t.Errorf("SessionPresent = %v, want %v", got.SessionPresent, tc.pkt.SessionPresent)
			}
			if got.ReasonCode.Code != tc.pkt.ReasonCode.Code {
				t.Errorf("ReasonCode = %#02x, want %#02x", got.ReasonCode.Code, tc.pkt.ReasonCode.Code)
			}
			if tc.version == Version5 {
				if v, ok := got.Props.Uint16(PropReceiveMaximum); !ok || v != 100 {
					t.Errorf("ReceiveMaximum = %d, ok=%v, want 100", v, ok)
				}
			}
		})
	}
}

func TestCONNACK_ReservedBitsRejected(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x02, 0x00})
	pkt := &CONNACK{FixedHeader: &FixedHeader{Version: Version311}}
	if err := pkt.Unpack(buf); err == nil {
		t.Error("expected error for reserved session-present bits set")
	}
}
