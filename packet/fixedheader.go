package packet

import (
	"fmt"
	"io"
)

// FixedHeader is the first one-to-five bytes of every MQTT control packet:
// a control byte (packet type in the high nibble, per-type flags in the
// low nibble) followed by a Variable Byte Integer remaining-length.
type FixedHeader struct {
	Version byte // not on the wire; carried alongside to drive version-specific decode

	Kind   byte
	Dup    uint8
	QoS    uint8
	Retain uint8

	RemainingLength uint32
}

func (h *FixedHeader) String() string {
	return fmt.Sprintf("%s len=%d", KindName[h.Kind], h.RemainingLength)
}

func (h *FixedHeader) Pack(w io.Writer) error {
	b := make([]byte, 1)
	b[0] |= h.Kind << 4
	b[0] |= h.Dup << 3
	b[0] |= h.QoS << 1
	b[0] |= h.Retain
	enc, err := encodeVBI(h.RemainingLength)
	if err != nil {
		return err
	}
	b = append(b, enc...)
	_, err = w.Write(b)
	return err
}

// Unpack reads the fixed header from r and validates the per-type flag
// constraints laid out in the OASIS spec: PUBLISH's QoS must not be 3;
// PUBREL/SUBSCRIBE/UNSUBSCRIBE require flags fixed at Dup=0,QoS=1,Retain=0;
// every other packet type requires all-zero flags.
func (h *FixedHeader) Unpack(r io.Reader) error {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return wrapErr(KindMalformedPacket, "truncated fixed header", err)
	}

	h.Kind = b[0] >> 4
	h.Dup = (b[0] & 0b00001000) >> 3
	h.QoS = (b[0] & 0b00000110) >> 1
	h.Retain = b[0] & 0b00000001

	switch h.Kind {
	case 0x3: // PUBLISH
		if h.QoS > 2 {
			return newErr(KindMalformedPacket, "publish qos out of range")
		}
		if h.QoS == 0 && h.Dup != 0 {
			return newErr(KindMalformedPacket, "publish dup set with qos 0")
		}
	case 0x6, 0x8, 0xA: // PUBREL, SUBSCRIBE, UNSUBSCRIBE
		if h.Dup != 0 || h.QoS != 1 || h.Retain != 0 {
			return newErr(KindMalformedPacket, "reserved flags for "+KindName[h.Kind])
		}
	default:
		if h.Dup != 0 || h.QoS != 0 || h.Retain != 0 {
			return newErr(KindMalformedPacket, "reserved flags for "+KindName[h.Kind])
		}
	}

	rl, err := decodeVBI(r)
	if err != nil {
		return err
	}
	h.RemainingLength = rl
	return nil
}
