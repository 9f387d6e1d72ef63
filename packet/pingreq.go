package packet

import (
	"bytes"
	"io"
)

// PINGREQ has no variable header or payload; it exists only to keep the
// network connection alive and elicit a PINGRESP within the keep-alive
// window.
type PINGREQ struct {
	*FixedHeader
}

func (p *PINGREQ) Kind() byte { return KindPingreq }

func (p *PINGREQ) Pack(w io.Writer) error {
	p.FixedHeader.Kind = KindPingreq
	p.FixedHeader.RemainingLength = 0
	return p.FixedHeader.Pack(w)
}

func (p *PINGREQ) Unpack(_ *bytes.Buffer) error { return nil }
