package packet

import (
	"bytes"
	"encoding/binary"
)

// Property identifiers, MQTT v5.0 section 2.2.2.2.
const (
	PropPayloadFormatIndicator        byte = 0x01
	PropMessageExpiryInterval         byte = 0x02
	PropContentType                   byte = 0x03
	PropResponseTopic                 byte = 0x08
	PropCorrelationData               byte = 0x09
	PropSubscriptionIdentifier        byte = 0x0B
	PropSessionExpiryInterval         byte = 0x11
	PropAssignedClientIdentifier      byte = 0x12
	PropServerKeepAlive               byte = 0x13
	PropAuthenticationMethod          byte = 0x15
	PropAuthenticationData            byte = 0x16
	PropRequestProblemInformation     byte = 0x17
	PropWillDelayInterval             byte = 0x18
	PropRequestResponseInformation    byte = 0x19
	PropResponseInformation           byte = 0x1A
	PropServerReference               byte = 0x1C
	PropReasonString                  byte = 0x1F
	PropReceiveMaximum                byte = 0x21
	PropTopicAliasMaximum             byte = 0x22
	PropTopicAlias                    byte = 0x23
	PropMaximumQoS                    byte = 0x24
	PropRetainAvailable                byte = 0x25
	PropUserProperty                  byte = 0x26
	PropMaximumPacketSize             byte = 0x27
	PropWildcardSubscriptionAvailable byte = 0x28
	PropSubscriptionIdentifierAvailable byte = 0x29
	PropSharedSubscriptionAvailable   byte = 0x2A
)

type propType int

const (
	propByte propType = iota
	propUint16
	propUint32
	propVarInt
	propUTF8
	propBinary
	propUTF8Pair
)

type propDef struct {
	typ        propType
	repeatable bool
}

// propertyTable is the single source of truth for how each identifier is
// encoded and whether MQTT allows it to repeat within one Properties
// section (only UserProperty and SubscriptionIdentifier may).
var propertyTable = map[byte]propDef{
	PropPayloadFormatIndicator:          {propByte, false},
	PropMessageExpiryInterval:           {propUint32, false},
	PropContentType:                     {propUTF8, false},
	PropResponseTopic:                   {propUTF8, false},
	PropCorrelationData:                 {propBinary, false},
	PropSubscriptionIdentifier:          {propVarInt, true},
	PropSessionExpiryInterval:           {propUint32, false},
	PropAssignedClientIdentifier:        {propUTF8, false},
	PropServerKeepAlive:                 {propUint16, false},
	PropAuthenticationMethod:            {propUTF8, false},
	PropAuthenticationData:              {propBinary, false},
	PropRequestProblemInformation:       {propByte, false},
	PropWillDelayInterval:               {propUint32, false},
	PropRequestResponseInformation:      {propByte, false},
	PropResponseInformation:             {propUTF8, false},
	PropServerReference:                 {propUTF8, false},
	PropReasonString:                    {propUTF8, false},
	PropReceiveMaximum:                  {propUint16, false},
	PropTopicAliasMaximum:               {propUint16, false},
	PropTopicAlias:                      {propUint16, false},
	PropMaximumQoS:                      {propByte, false},
	PropRetainAvailable:                 {propByte, false},
	PropUserProperty:                    {propUTF8Pair, true},
	PropMaximumPacketSize:               {propUint32, false},
	PropWildcardSubscriptionAvailable:   {propByte, false},
	PropSubscriptionIdentifierAvailable: {propByte, false},
	PropSharedSubscriptionAvailable:     {propByte, false},
}

// Property is one identifier+value pair within a Properties section.
// Only the field matching the identifier's propType is meaningful.
type Property struct {
	ID    byte
	Num   uint32
	Str   string
	Bin   []byte
	Name  string // UserProperty key; Str holds the value
}

// Properties is an ordered sequence of Property, matching insertion order
// for repeatable identifiers (UserProperty, SubscriptionIdentifier) as
// required by MQTT v5.0 section 3.1.2.11.
type Properties struct {
	list []Property
}

func NewProperties() *Properties { return &Properties{} }

func (p *Properties) add(prop Property) {
	p.list = append(p.list, prop)
}

func (p *Properties) SetByte(id byte, v uint8)   { p.add(Property{ID: id, Num: uint32(v)}) }
func (p *Properties) SetUint16(id byte, v uint16) { p.add(Property{ID: id, Num: uint32(v)}) }
func (p *Properties) SetUint32(id byte, v uint32) { p.add(Property{ID: id, Num: v}) }
func (p *Properties) SetVarInt(id byte, v uint32) { p.add(Property{ID: id, Num: v}) }
func (p *Properties) SetString(id byte, v string) { p.add(Property{ID: id, Str: v}) }
func (p *Properties) SetBinary(id byte, v []byte) { p.add(Property{ID: id, Bin: v}) }
func (p *Properties) AddUserProperty(name, value string) {
	p.add(Property{ID: PropUserProperty, Name: name, Str: value})
}
func (p *Properties) AddSubscriptionIdentifier(v uint32) {
	p.add(Property{ID: PropSubscriptionIdentifier, Num: v})
}

func (p *Properties) find(id byte) (Property, bool) {
	if p == nil {
		return Property{}, false
	}
	for _, e := range p.list {
		if e.ID == id {
			return e, true
		}
	}
	return Property{}, false
}

func (p *Properties) Byte(id byte) (uint8, bool) {
	e, ok := p.find(id)
	return uint8(e.Num), ok
}
func (p *Properties) Uint16(id byte) (uint16, bool) {
	e, ok := p.find(id)
	return uint16(e.Num), ok
}
func (p *Properties) Uint32(id byte) (uint32, bool) {
	e, ok := p.find(id)
	return e.Num, ok
}
func (p *Properties) String(id byte) (string, bool) {
	e, ok := p.find(id)
	return e.Str, ok
}
func (p *Properties) Binary(id byte) ([]byte, bool) {
	e, ok := p.find(id)
	return e.Bin, ok
}

// UserProperties returns every UserProperty pair, grouped by name; the
// values under one name keep their insertion order.
func (p *Properties) UserProperties() map[string][]string {
	if p == nil {
		return nil
	}
	out := map[string][]string{}
	for _, e := range p.list {
		if e.ID == PropUserProperty {
			out[e.Name] = append(out[e.Name], e.Str)
		}
	}
	return out
}

// IsEmpty reports whether the properties section carries no entries at
// all, in which case callers may omit it or write a zero-length section.
func (p *Properties) IsEmpty() bool { return p == nil || len(p.list) == 0 }

// encode packs the property list body (no leading length) into buf.
func (p *Properties) encode(buf *bytes.Buffer) error {
	if p == nil {
		return nil
	}
	for _, e := range p.list {
		def, ok := propertyTable[e.ID]
		if !ok {
			return newErr(KindProtocolError, "unknown property identifier on encode")
		}
		buf.WriteByte(e.ID)
		switch def.typ {
		case propByte:
			buf.WriteByte(byte(e.Num))
		case propUint16:
			buf.Write(putUint16(uint16(e.Num)))
		case propUint32:
			buf.Write(putUint32(e.Num))
		case propVarInt:
			vbi, err := encodeVBI(e.Num)
			if err != nil {
				return err
			}
			buf.Write(vbi)
		case propUTF8:
			buf.Write(encodeString(e.Str))
		case propBinary:
			buf.Write(encodeString(e.Bin))
		case propUTF8Pair:
			buf.Write(encodeString(e.Name))
			buf.Write(encodeString(e.Str))
		}
	}
	return nil
}

// Pack writes the VBI-prefixed property section (length + body) to w.
func (p *Properties) Pack(w *bytes.Buffer) error {
	body := getScratch()
	defer putScratch(body)
	if err := p.encode(body); err != nil {
		return err
	}
	lenBytes, err := encodeVBI(body.Len())
	if err != nil {
		return err
	}
	w.Write(lenBytes)
	w.Write(body.Bytes())
	return nil
}

// UnpackProperties reads a VBI-prefixed property section from buf,
// enforcing that non-repeatable identifiers appear at most once.
func UnpackProperties(buf *bytes.Buffer) (*Properties, error) {
	length, err := decodeVBI(buf)
	if err != nil {
		return nil, err
	}
	section := bytes.NewBuffer(buf.Next(int(length)))
	if section.Len() != int(length) {
		return nil, newErr(KindMalformedPacket, "truncated properties section")
	}

	props := NewProperties()
	seen := map[byte]bool{}
	for section.Len() > 0 {
		id, err := decodeVBI(section)
		if err != nil {
			return nil, err
		}
		pid := byte(id)
		def, ok := propertyTable[pid]
		if !ok {
			return nil, newErr(KindMalformedPacket, "unknown property identifier")
		}
		if seen[pid] && !def.repeatable {
			return nil, newErr(KindProtocolError, "repeated non-repeatable property")
		}
		seen[pid] = true

		switch def.typ {
		case propByte:
			if section.Len() < 1 {
				return nil, newErr(KindMalformedPacket, "truncated property value")
			}
			props.add(Property{ID: pid, Num: uint32(section.Next(1)[0])})
		case propUint16:
			if section.Len() < 2 {
				return nil, newErr(KindMalformedPacket, "truncated property value")
			}
			props.add(Property{ID: pid, Num: uint32(binary.BigEndian.Uint16(section.Next(2)))})
		case propUint32:
			if section.Len() < 4 {
				return nil, newErr(KindMalformedPacket, "truncated property value")
			}
			props.add(Property{ID: pid, Num: binary.BigEndian.Uint32(section.Next(4))})
		case propVarInt:
			v, err := decodeVBI(section)
			if err != nil {
				return nil, err
			}
			props.add(Property{ID: pid, Num: v})
		case propUTF8:
			s, err := decodeString[string](section)
			if err != nil {
				return nil, err
			}
			props.add(Property{ID: pid, Str: s})
		case propBinary:
			b, err := decodeString[[]byte](section)
			if err != nil {
				return nil, err
			}
			props.add(Property{ID: pid, Bin: b})
		case propUTF8Pair:
			name, err := decodeString[string](section)
			if err != nil {
				return nil, err
			}
			value, err := decodeString[string](section)
			if err != nil {
				return nil, err
			}
			props.add(Property{ID: pid, Name: name, Str: value})
		}
	}
	return props, nil
}
