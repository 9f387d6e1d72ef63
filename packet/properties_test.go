package packet

import (
	"bytes"
	"testing"
)

func TestProperties_PackUnpackRoundTrip(t *testing.T) {
	props := NewProperties()
	props.SetByte(PropPayloadFormatIndicator, 1)
	props.SetUint32(PropMessageExpiryInterval, 3600)
	props.SetString(PropContentType, "application/json")
	props.SetBinary(PropCorrelationData, []byte{0xDE, 0xAD})
	props.AddUserProperty("k1", "v1")
	props.AddUserProperty("k1", "v2")
	props.AddSubscriptionIdentifier(1)
	props.AddSubscriptionIdentifier(2)

	var buf bytes.Buffer
	if err := props.Pack(&buf); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got, err := UnpackProperties(&buf)
	if err != nil {
		t.Fatalf("UnpackProperties() failed: %v", err)
	}

	if v, ok := got.Byte(PropPayloadFormatIndicator); !ok || v != 1 {
		t.Errorf("PayloadFormatIndicator = %d, ok=%v, want 1", v, ok)
	}
	if v, ok := got.Uint32(PropMessageExpiryInterval); !ok || v != 3600 {
		t.Errorf("MessageExpiryInterval = %d, ok=%v, want 3600", v, ok)
	}
	if v, ok := got.String(PropContentType); !ok || v != "application/json" {
		t.Errorf("ContentType = %q, ok=%v, want application/json", v, ok)
	}
	if v, ok := got.Binary(PropCorrelationData); !ok || !bytes.Equal(v, []byte{0xDE, 0xAD}) {
		t.Errorf("CorrelationData = %v, ok=%v, want [DE AD]", v, ok)
	}
	if vals := got.UserProperties()["k1"]; len(vals) != 2 || vals[0] != "v1" || vals[1] != "v2" {
		t.Errorf("UserProperties[k1] = %v, want [v1 v2]", vals)
	}
}

func TestProperties_RejectsRepeatedNonRepeatable(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(PropContentType)
	body.Write(encodeString("text/plain"))
	body.WriteByte(PropContentType)
	body.Write(encodeString("application/json"))

	var section bytes.Buffer
	lenBytes, _ := encodeVBI(body.Len())
	section.Write(lenBytes)
	section.Write(body.Bytes())

	if _, err := UnpackProperties(&section); err == nil {
		t.Error("expected error for repeated ContentType property")
	}
}

func TestProperties_RejectsUnknownIdentifier(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x7F) // not a defined property identifier
	body.WriteByte(0x01)

	var section bytes.Buffer
	lenBytes, _ := encodeVBI(body.Len())
	section.Write(lenBytes)
	section.Write(body.Bytes())

	if _, err := UnpackProperties(&section); err == nil {
		t.Error("expected error for unknown property identifier")
	}
}

func TestProperties_IsEmpty(t *testing.T) {
	var p *Properties
	if !p.IsEmpty() {
		t.Error("nil Properties should be IsEmpty")
	}
	if !NewProperties().IsEmpty() {
		t.Error("freshly constructed Properties should be IsEmpty")
	}
	full := NewProperties()
	full.SetByte(PropPayloadFormatIndicator, 1)
	if full.IsEmpty() {
		t.Error("Properties with an entry should not be IsEmpty")
	}
}
