package packet

import (
	"bytes"
	"fmt"
	"io"
)

// PUBREC is step one of the QoS 2 handshake: acknowledges receipt of a
// PUBLISH and promises the receiver has stored it for the PUBREL/PUBCOMP
// exchange to follow.
type PUBREC struct {
	*FixedHeader

	PacketID   uint16
	ReasonCode ReasonCode
	Props      *Properties // v5 only
}

func (p *PUBREC) Kind() byte { return KindPubrec }

func (p *PUBREC) String() string {
	return fmt.Sprintf("PUBREC(id=%d code=0x%02x)", p.PacketID, p.ReasonCode.Code)
}

func (p *PUBREC) Pack(w io.Writer) error {
	return packAck(w, p.FixedHeader, KindPubrec, p.PacketID, p.ReasonCode, p.Props)
}

func (p *PUBREC) Unpack(buf *bytes.Buffer) error {
	id, code, props, err := unpackAck(buf, p.Version)
	if err != nil {
		return err
	}
	p.PacketID, p.ReasonCode, p.Props = id, code, props
	return nil
}
