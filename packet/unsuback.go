package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// UNSUBACK acknowledges an UNSUBSCRIBE. v3.1.1 carries only the packet id;
// v5.0 additionally carries one reason code per unsubscribed filter, in
// the same order as the UNSUBSCRIBE payload.
type UNSUBACK struct {
	*FixedHeader

	PacketID    uint16
	ReasonCodes []ReasonCode // v5 only
	Props       *Properties  // v5 only
}

func (p *UNSUBACK) Kind() byte { return KindUnsuback }

func (p *UNSUBACK) String() string {
	return fmt.Sprintf("UNSUBACK(id=%d)", p.PacketID)
}

func (p *UNSUBACK) Pack(w io.Writer) error {
	body := getScratch()
	defer putScratch(body)

	body.Write(putUint16(p.PacketID))
	if p.Version == Version5 {
		if len(p.ReasonCodes) == 0 {
			return newErr(KindProtocolError, "unsuback requires at least one reason code")
		}
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
		for _, code := range p.ReasonCodes {
			body.WriteByte(code.Code)
		}
	}

	p.FixedHeader.Kind = KindUnsuback
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *UNSUBACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return newErr(KindMalformedPacket, "truncated unsuback packet id")
	}
	p.PacketID = binary.BigEndian.Uint16(buf.Next(2))

	if p.Version != Version5 {
		return nil
	}

	props, err := UnpackProperties(buf)
	if err != nil {
		return err
	}
	p.Props = props

	for buf.Len() > 0 {
		p.ReasonCodes = append(p.ReasonCodes, ReasonCode{Code: buf.Next(1)[0]})
	}
	if len(p.ReasonCodes) == 0 {
		return newErr(KindProtocolError, "unsuback carries no reason codes")
	}
	return nil
}
