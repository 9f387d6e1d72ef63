package packet

import (
	"bytes"
	"fmt"
	"io"
)

// PUBCOMP is step three of the QoS 2 handshake, the final response to
// PUBREL that completes exactly-once delivery.
type PUBCOMP struct {
	*FixedHeader

	PacketID   uint16
	ReasonCode ReasonCode
	Props      *Properties // v5 only
}

func (p *PUBCOMP) Kind() byte { return KindPubcomp }

func (p *PUBCOMP) String() string {
	return fmt.Sprintf("PUBCOMP(id=%d code=0x%02x)", p.PacketID, p.ReasonCode.Code)
}

func (p *PUBCOMP) Pack(w io.Writer) error {
	return packAck(w, p.FixedHeader, KindPubcomp, p.PacketID, p.ReasonCode, p.Props)
}

func (p *PUBCOMP) Unpack(buf *bytes.Buffer) error {
	id, code, props, err := unpackAck(buf, p.Version)
	if err != nil {
		return err
	}
	p.PacketID, p.ReasonCode, p.Props = id, code, props
	return nil
}
