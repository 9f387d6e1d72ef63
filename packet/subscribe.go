package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Subscription is one topic filter + options pair in a SUBSCRIBE payload.
type Subscription struct {
	TopicFilter string

	MaximumQoS        uint8
	NoLocal           bool
	RetainAsPublished bool
	RetainHandling    uint8 // 0: always send retained, 1: only for new subscriptions, 2: never
}

func (s *Subscription) String() string {
	return fmt.Sprintf("%s@%d", s.TopicFilter, s.MaximumQoS)
}

func (s *Subscription) optionsByte() byte {
	b := s.MaximumQoS & 0x03
	if s.NoLocal {
		b |= 0x04
	}
	if s.RetainAsPublished {
		b |= 0x08
	}
	b |= (s.RetainHandling & 0x03) << 4
	return b
}

// SUBSCRIBE requests delivery of messages matching one or more topic
// filters. Its fixed header flags are pinned at DUP=0, QoS=1, RETAIN=0.
type SUBSCRIBE struct {
	*FixedHeader

	PacketID      uint16
	Subscriptions []Subscription
	Props         *Properties // v5 only
}

func (p *SUBSCRIBE) Kind() byte { return KindSubscribe }

func (p *SUBSCRIBE) String() string {
	return fmt.Sprintf("SUBSCRIBE(id=%d n=%d)", p.PacketID, len(p.Subscriptions))
}

func (p *SUBSCRIBE) Pack(w io.Writer) error {
	if len(p.Subscriptions) == 0 {
		return newErr(KindProtocolError, "subscribe requires at least one topic filter")
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
	for _, sub := range p.Subscriptions {
		if sub.TopicFilter == "" {
			return newErr(KindInvalidTopic, "empty topic filter")
		}
		body.Write(encodeString(sub.TopicFilter))
		body.WriteByte(sub.optionsByte())
	}

	p.FixedHeader.Kind = KindSubscribe
	p.FixedHeader.QoS = 1
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *SUBSCRIBE) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return newErr(KindMalformedPacket, "truncated subscribe packet id")
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
		if buf.Len() < 1 {
			return newErr(KindMalformedPacket, "truncated subscription options")
		}
		options := buf.Next(1)[0]
		if options&0xC0 != 0 {
			return newErr(KindMalformedPacket, "reserved subscription option bits set")
		}
		sub := Subscription{
			TopicFilter:       filter,
			MaximumQoS:        options & 0x03,
			NoLocal:           options&0x04 != 0,
			RetainAsPublished: options&0x08 != 0,
			RetainHandling:    (options & 0x30) >> 4,
		}
		if sub.MaximumQoS > 2 {
			return newErr(KindMalformedPacket, "subscription qos out of range")
		}
		if sub.RetainHandling > 2 {
			return newErr(KindMalformedPacket, "subscription retain handling out of range")
		}
		p.Subscriptions = append(p.Subscriptions, sub)
	}
	if len(p.Subscriptions) == 0 {
		return newErr(KindProtocolError, "subscribe requires at least one topic filter")
	}
	return nil
}
