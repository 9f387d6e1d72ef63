package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Message is the application-visible content of a PUBLISH: a topic name
// and a payload.
type Message struct {
	Topic   string
	Payload []byte
}

func (m *Message) String() string {
	return fmt.Sprintf("%s # %s", m.Topic, m.Payload)
}

// PUBLISH carries application data. QoS, Dup and Retain live in the fixed
// header; PacketID is present only when QoS > 0.
type PUBLISH struct {
	*FixedHeader

	PacketID uint16
	Message  *Message
	Props    *Properties // v5 only
}

func (p *PUBLISH) Kind() byte { return KindPublish }

func (p *PUBLISH) String() string {
	return fmt.Sprintf("PUBLISH(topic=%q qos=%d dup=%v retain=%v)", p.Message.Topic, p.QoS, p.Dup != 0, p.Retain != 0)
}

// validateTopicName rejects topic names PUBLISH must never carry: empty,
// or containing the subscription wildcards '+'/'#' [MQTT-3.3.2-2].
func validateTopicName(topic string) error {
	if topic == "" {
		return newErr(KindInvalidTopic, "empty topic name")
	}
	if strings.ContainsAny(topic, "+#") {
		return newErr(KindInvalidTopic, "topic name must not contain wildcards")
	}
	return nil
}

func (p *PUBLISH) Pack(w io.Writer) error {
	if err := validateTopicName(p.Message.Topic); err != nil {
		return err
	}

	body := getScratch()
	defer putScratch(body)

	body.Write(encodeString(p.Message.Topic))
	if p.QoS != 0 {
		body.Write(putUint16(p.PacketID))
	}
	if p.Version == Version5 {
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}
	body.Write(p.Message.Payload)

	p.FixedHeader.Kind = KindPublish
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *PUBLISH) Unpack(buf *bytes.Buffer) error {
	topic, err := decodeString[string](buf)
	if err != nil {
		return err
	}
	if err := validateTopicName(topic); err != nil {
		return err
	}
	p.Message = &Message{Topic: topic}

	if p.QoS != 0 {
		if buf.Len() < 2 {
			return newErr(KindMalformedPacket, "truncated publish packet id")
		}
		p.PacketID = binary.BigEndian.Uint16(buf.Next(2))
	}

	if p.Version == Version5 {
		props, err := UnpackProperties(buf)
		if err != nil {
			return err
		}
		p.Props = props
	}

	p.Message.Payload = buf.Bytes()
	return nil
}
