package packet

import (
	"bytes"
	"fmt"
	"io"
)

// PUBREL is step two of the QoS 2 handshake, sent in response to PUBREC.
// Its fixed header flags are pinned at DUP=0, QoS=1, RETAIN=0.
type PUBREL struct {
	*FixedHeader

	PacketID   uint16
	ReasonCode ReasonCode
	Props      *Properties // v5 only
}

func (p *PUBREL) Kind() byte { return KindPubrel }

func (p *PUBREL) String() string {
	return fmt.Sprintf("PUBREL(id=%d code=0x%02x)", p.PacketID, p.ReasonCode.Code)
}

func (p *PUBREL) Pack(w io.Writer) error {
	p.FixedHeader.QoS = 1
	return packAck(w, p.FixedHeader, KindPubrel, p.PacketID, p.ReasonCode, p.Props)
}

func (p *PUBREL) Unpack(buf *bytes.Buffer) error {
	id, code, props, err := unpackAck(buf, p.Version)
	if err != nil {
		return err
	}
	p.PacketID, p.ReasonCode, p.Props = id, code, props
	return nil
}
