package packet

import (
	"bytes"
	"encoding/binary"
	"io"
)

// packAck serialises the common PacketID+ReasonCode+Properties shape shared
// by PUBACK, PUBREC, PUBREL and PUBCOMP. MQTT v5.0 lets the reason code and
// properties be omitted entirely when the reason is Success and there are
// no properties, section 3.4.2.1 (and its PUBREC/PUBREL/PUBCOMP mirrors).
func packAck(w io.Writer, header *FixedHeader, kind byte, packetID uint16, code ReasonCode, props *Properties) error {
	body := getScratch()
	defer putScratch(body)

	body.Write(putUint16(packetID))
	if header.Version == Version5 && (code.Code != CodeSuccess.Code || !props.IsEmpty()) {
		body.WriteByte(code.Code)
		if props == nil {
			props = NewProperties()
		}
		if err := props.Pack(body); err != nil {
			return err
		}
	}

	header.Kind = kind
	header.RemainingLength = uint32(body.Len())
	if err := header.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// unpackAck is the mirror of packAck. When the v5 body ends right after the
// packet id, the reason code defaults to Success and properties are nil,
// per the same omission rule packAck applies on encode.
func unpackAck(buf *bytes.Buffer, version byte) (packetID uint16, code ReasonCode, props *Properties, err error) {
	if buf.Len() < 2 {
		return 0, ReasonCode{}, nil, newErr(KindMalformedPacket, "truncated packet id")
	}
	packetID = binary.BigEndian.Uint16(buf.Next(2))
	code = CodeSuccess

	if version != Version5 || buf.Len() == 0 {
		return packetID, code, nil, nil
	}

	code = ReasonCode{Code: buf.Next(1)[0]}
	if buf.Len() == 0 {
		return packetID, code, nil, nil
	}
	props, err = UnpackProperties(buf)
	if err != nil {
		return 0, ReasonCode{}, nil, err
	}
	return packetID, code, props, nil
}
