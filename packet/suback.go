package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// SUBACK acknowledges a SUBSCRIBE, one reason code per requested filter in
// the same order. v5.0 defines a full reason-code space (0x00-0x02 granted
// QoS, 0x80+ per-filter failure reasons); v3.1.1 only has 0x00-0x02 and
// 0x80 (failure).
type SUBACK struct {
	*FixedHeader

	PacketID    uint16
	ReasonCodes []ReasonCode
	Props       *Properties // v5 only
}

func (p *SUBACK) Kind() byte { return KindSuback }

func (p *SUBACK) String() string {
	return fmt.Sprintf("SUBACK(id=%d n=%d)", p.PacketID, len(p.ReasonCodes))
}

func (p *SUBACK) Pack(w io.Writer) error {
	if len(p.ReasonCodes) == 0 {
		return newErr(KindProtocolError, "suback requires at least one reason code")
	}

	body := getScratch()
	defer putScratch(body)

	body.Write(putUint16(p.PacketID))
	if p.Version == Version5 {
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}
	for _, code := range p.ReasonCodes {
		body.WriteByte(code.Code)
	}

	p.FixedHeader.Kind = KindSuback
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// Unpack accepts the full v5.0 reason-code range, including 0x80 and
// above; a SUBACK is malformed only when its payload carries no reason
// codes at all, not when an individual code signals per-filter failure.
func (p *SUBACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return newErr(KindMalformedPacket, "truncated suback packet id")
	}
	p.PacketID = binary.BigEndian.Uint16(buf.Next(2))

	if p.Version == Version5 {
		props, err := UnpackProperties(buf)
		if err != nil {
			return err
		}
		p.Props = props
	}

	for buf.Len() > 0 {
		p.ReasonCodes = append(p.ReasonCodes, ReasonCode{Code: buf.Next(1)[0]})
	}
	if len(p.ReasonCodes) == 0 {
		return newErr(KindProtocolError, "suback carries no reason codes")
	}
	return nil
}
