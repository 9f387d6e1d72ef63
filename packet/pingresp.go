package packet

import (
	"bytes"
	"io"
)

// PINGRESP is the broker's reply to PINGREQ, also with no variable header
// or payload.
type PINGRESP struct {
	*FixedHeader
}

func (p *PINGRESP) Kind() byte { return KindPingresp }

func (p *PINGRESP) Pack(w io.Writer) error {
	p.FixedHeader.Kind = KindPingresp
	p.FixedHeader.RemainingLength = 0
	return p.FixedHeader.Pack(w)
}

func (p *PINGRESP) Unpack(_ *bytes.Buffer) error { return nil }
