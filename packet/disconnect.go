package packet

import (
	"bytes"
	"fmt"
	"io"
)

// DISCONNECT signals normal or abnormal connection termination. v3.1.1
// carries no body at all; v5.0 lets either side omit the reason
// code+properties when the reason is Success, mirroring the ack packets.
type DISCONNECT struct {
	*FixedHeader

	ReasonCode ReasonCode
	Props      *Properties // v5 only
}

func (p *DISCONNECT) Kind() byte { return KindDisconnect }

func (p *DISCONNECT) String() string {
	return fmt.Sprintf("DISCONNECT(code=0x%02x)", p.ReasonCode.Code)
}

func (p *DISCONNECT) Pack(w io.Writer) error {
	body := getScratch()
	defer putScratch(body)

	if p.Version == Version5 && (p.ReasonCode.Code != CodeSuccess.Code || !p.Props.IsEmpty()) {
		body.WriteByte(p.ReasonCode.Code)
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}

	p.FixedHeader.Kind = KindDisconnect
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *DISCONNECT) Unpack(buf *bytes.Buffer) error {
	p.ReasonCode = CodeSuccess
	if p.Version != Version5 || buf.Len() == 0 {
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
