package packet

import (
	"bytes"
	"fmt"
	"io"
)

// CONNACK is the broker's reply to CONNECT. In v3.1.1 the second byte is a
// small return-code enum (the Code3* values); in v5.0 it is the general ReasonCode
// space plus a Properties section.
type CONNACK struct {
	*FixedHeader

	SessionPresent bool
	ReasonCode     ReasonCode
	Props          *Properties // v5 only
}

func (p *CONNACK) Kind() byte { return KindConnack }

func (p *CONNACK) String() string {
	return fmt.Sprintf("CONNACK(present=%v code=0x%02x)", p.SessionPresent, p.ReasonCode.Code)
}

func (p *CONNACK) Pack(w io.Writer) error {
	body := getScratch()
	defer putScratch(body)

	var flags byte
	if p.SessionPresent {
		flags = 0x01
	}
	body.WriteByte(flags)
	body.WriteByte(p.ReasonCode.Code)

	if p.Version == Version5 {
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}

	p.FixedHeader.Kind = KindConnack
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *CONNACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return newErr(KindMalformedPacket, "truncated connack")
	}
	flags := buf.Next(1)[0]
	if flags&0xFE != 0 {
		return newErr(KindMalformedPacket, "connack reserved bits set")
	}
	p.SessionPresent = flags&0x01 != 0
	p.ReasonCode = ReasonCode{Code: buf.Next(1)[0]}

	if p.Version == Version5 {
		props, err := UnpackProperties(buf)
		if err != nil {
			return err
		}
		p.Props = props
	}
	return nil
}
