package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// UNSUBSCRIBE removes one or more of the caller's subscriptions. Its fixed
// header flags are pinned at DUP=0, QoS=1, RETAIN=0.
type UNSUBSCRIBE struct {
	*FixedHeader

	PacketID     uint16
	TopicFilters []string
	Props        *Properties // v5 only
}

func (p *UNSUBSCRIBE) Kind() byte { return KindUnsubscribe }

func (p *UNSUBSCRIBE) String() string {
	return fmt.Sprintf("UNSUBSCRIBE(id=%d n=%d)", p.PacketID, len(p.TopicFilters))
}

func (p *UNSUBSCRIBE) Pack(w io.Writer) error {
	if len(p.TopicFilters) == 0 {
		return newErr(KindProtocolError, "unsubscribe requires at least one topic filter")
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
	for _, filter := range p.TopicFilters {
		body.Write(encodeString(filter))
	}

	p.FixedHeader.Kind = KindUnsubscribe
	p.FixedHeader.QoS = 1
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *UNSUBSCRIBE) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return newErr(KindMalformedPacket, "truncated unsubscribe packet id")
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
		filter, err := decodeString[string](buf)
		if err != nil {
			return err
		}
		p.TopicFilters = append(p.TopicFilters, filter)
	}
	if len(p.TopicFilters) == 0 {
		return newErr(KindProtocolError, "unsubscribe requires at least one topic filter")
	}
	return nil
}
