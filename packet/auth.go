package packet

import (
	"bytes"
	"fmt"
	"io"
)

// AUTH carries extended (SASL-style) authentication exchange steps. It is
// v5.0-only; Decode rejects it outright under v3.1.1.
type AUTH struct {
	*FixedHeader

	ReasonCode ReasonCode
	Props      *Properties
}

func (p *AUTH) Kind() byte { return KindAuth }

func (p *AUTH) String() string {
	return fmt.Sprintf("AUTH(code=0x%02x)", p.ReasonCode.Code)
}

func (p *AUTH) Pack(w io.Writer) error {
	body := getScratch()
	defer putScratch(body)

	if p.ReasonCode.Code != CodeSuccess.Code || !p.Props.IsEmpty() {
		body.WriteByte(p.ReasonCode.Code)
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}

	p.FixedHeader.Kind = KindAuth
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *AUTH) Unpack(buf *bytes.Buffer) error {
	p.ReasonCode = CodeSuccess
	if buf.Len() == 0 {
		return nil
	}
	p.ReasonCode = ReasonCode{Code: buf.Next(1)[0]}
	if buf.Len() == 0 {
		return nil
	}
	props, err := UnpackProperties(buf)
	if err != nil {
		return err
	}
	p.Props = props
	return nil
}
