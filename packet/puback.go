package packet

import (
	"bytes"
	"fmt"
	"io"
)

// PUBACK acknowledges a QoS 1 PUBLISH.
type PUBACK struct {
	*FixedHeader

	PacketID   uint16
	ReasonCode ReasonCode
	Props      *Properties // v5 only
}

func (p *PUBACK) Kind() byte { return KindPuback }

func (p *PUBACK) String() string {
	return fmt.Sprintf("PUBACK(id=%d code=0x%02x)", p.PacketID, p.ReasonCode.Code)
}

func (p *PUBACK) Pack(w io.Writer) error {
	return packAck(w, p.FixedHeader, KindPuback, p.PacketID, p.ReasonCode, p.Props)
}

func (p *PUBACK) Unpack(buf *bytes.Buffer) error {
	id, code, props, err := unpackAck(buf, p.Version)
	if err != nil {
		return err
	}
	p.PacketID, p.ReasonCode, p.Props = id, code, props
	return nil
}
