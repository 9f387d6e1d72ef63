package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// protocolName is the fixed "MQTT" UTF-8 string carried at the start of
// every CONNECT variable header.
var protocolName = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T'}

// ConnectFlags is the CONNECT variable header's single flag byte, MQTT
// v5.0 section 3.1.2.3.
type ConnectFlags uint8

func (f ConnectFlags) Reserved() uint8     { return uint8(f) & 0x01 }
func (f ConnectFlags) CleanStart() bool    { return uint8(f)&0x02 != 0 }
func (f ConnectFlags) WillFlag() bool      { return uint8(f)&0x04 != 0 }
func (f ConnectFlags) WillQoS() uint8      { return (uint8(f) & 0x18) >> 3 }
func (f ConnectFlags) WillRetain() bool    { return uint8(f)&0x20 != 0 }
func (f ConnectFlags) PasswordFlag() bool  { return uint8(f)&0x40 != 0 }
func (f ConnectFlags) UsernameFlag() bool  { return uint8(f)&0x80 != 0 }

func newConnectFlags(cleanStart, willFlag bool, willQoS uint8, willRetain, hasPassword, hasUsername bool) ConnectFlags {
	var f uint8
	if cleanStart {
		f |= 0x02
	}
	if willFlag {
		f |= 0x04
		f |= willQoS << 3
		if willRetain {
			f |= 0x20
		}
	}
	if hasPassword {
		f |= 0x40
	}
	if hasUsername {
		f |= 0x80
	}
	return ConnectFlags(f)
}

// Will carries the message the broker publishes on the caller's behalf if
// the network connection drops without a prior DISCONNECT.
type Will struct {
	Topic   string
	Payload []byte
	QoS     uint8
	Retain  bool
	Props   *Properties // v5 only: PropWillDelayInterval, PropPayloadFormatIndicator, ...
}

// CONNECT is the first packet a client sends after opening the transport.
type CONNECT struct {
	*FixedHeader

	CleanStart bool
	KeepAlive  uint16
	ClientID   string
	Username   string
	Password   string
	Will       *Will
	Props      *Properties // v5 only

	hasUsername bool
	hasPassword bool
}

func (p *CONNECT) Kind() byte { return KindConnect }

func (p *CONNECT) String() string {
	return fmt.Sprintf("CONNECT(client=%q keepalive=%d clean=%v)", p.ClientID, p.KeepAlive, p.CleanStart)
}

func (p *CONNECT) Pack(w io.Writer) error {
	body := getScratch()
	defer putScratch(body)

	body.Write(protocolName)
	if p.Version == Version5 {
		body.WriteByte(Version5)
	} else {
		body.WriteByte(Version311)
	}

	willFlag := p.Will != nil
	var willQoS uint8
	var willRetain bool
	if willFlag {
		willQoS = p.Will.QoS
		willRetain = p.Will.Retain
	}
	flags := newConnectFlags(p.CleanStart, willFlag, willQoS, willRetain, p.hasPassword || p.Password != "", p.hasUsername || p.Username != "")
	body.WriteByte(byte(flags))
	body.Write(putUint16(p.KeepAlive))

	if p.Version == Version5 {
		if p.Props == nil {
			p.Props = NewProperties()
		}
		if err := p.Props.Pack(body); err != nil {
			return err
		}
	}

	body.Write(encodeString(p.ClientID))

	if willFlag {
		if p.Version == Version5 {
			if p.Will.Props == nil {
				p.Will.Props = NewProperties()
			}
			if err := p.Will.Props.Pack(body); err != nil {
				return err
			}
		}
		body.Write(encodeString(p.Will.Topic))
		body.Write(encodeString(p.Will.Payload))
	}
	if flags.UsernameFlag() {
		body.Write(encodeString(p.Username))
	}
	if flags.PasswordFlag() {
		body.Write(encodeString(p.Password))
	}

	p.FixedHeader.Kind = KindConnect
	p.FixedHeader.RemainingLength = uint32(body.Len())
	if err := p.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (p *CONNECT) Unpack(buf *bytes.Buffer) error {
	name, err := decodeString[[]byte](buf)
	if err != nil {
		return err
	}
	if !bytes.Equal(name, protocolName[2:]) {
		return newErr(KindMalformedPacket, "malformed protocol name")
	}

	if buf.Len() < 1 {
		return newErr(KindMalformedPacket, "truncated connect")
	}
	version := buf.Next(1)[0]
	if version != Version311 && version != Version5 {
		return newErr(KindMalformedPacket, "unsupported protocol version")
	}
	p.Version = version

	if buf.Len() < 3 {
		return newErr(KindMalformedPacket, "truncated connect")
	}
	flags := ConnectFlags(buf.Next(1)[0])
	if flags.Reserved() != 0 {
		return newErr(KindMalformedPacket, "connect flags reserved bit set")
	}
	if flags.WillQoS() > 2 {
		return newErr(KindMalformedPacket, "will qos out of range")
	}
	if !flags.WillFlag() && (flags.WillQoS() != 0 || flags.WillRetain()) {
		return newErr(KindProtocolError, "will qos/retain set without will flag")
	}
	p.CleanStart = flags.CleanStart()
	p.hasUsername = flags.UsernameFlag()
	p.hasPassword = flags.PasswordFlag()

	p.KeepAlive = binary.BigEndian.Uint16(buf.Next(2))

	if version == Version5 {
		props, err := UnpackProperties(buf)
		if err != nil {
			return err
		}
		p.Props = props
	}

	clientID, err := decodeString[string](buf)
	if err != nil {
		return err
	}
	p.ClientID = clientID

	if flags.WillFlag() {
		will := &Will{QoS: flags.WillQoS(), Retain: flags.WillRetain()}
		if version == Version5 {
			props, err := UnpackProperties(buf)
			if err != nil {
				return err
			}
			will.Props = props
		}
		topic, err := decodeString[string](buf)
		if err != nil {
			return err
		}
		payload, err := decodeString[[]byte](buf)
		if err != nil {
			return err
		}
		will.Topic = topic
		will.Payload = payload
		p.Will = will
	}

	if flags.UsernameFlag() {
		username, err := decodeString[string](buf)
		if err != nil {
			return err
		}
		p.Username = username
	}
	if flags.PasswordFlag() {
		password, err := decodeString[string](buf)
		if err != nil {
			return err
		}
		p.Password = password
	}
	return nil
}
