package transport

import (
	"context"
	"crypto/tls"
	"net"
)

// TLS is a stream Adapter over a TLS-wrapped net.Conn.
type TLS struct {
	conn *tls.Conn
}

// DialTLS connects to addr and performs a TLS handshake using cfg (nil for
// the platform default root pool).
func DialTLS(ctx context.Context, addr string, cfg *tls.Config) (*TLS, error) {
	raw, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	conn := tls.Client(raw, cfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		_ = raw.Close()
		return nil, err
	}
	return &TLS{conn: conn}, nil
}

func (t *TLS) Read(ctx context.Context, into []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(dl)
	}
	return t.conn.Read(into)
}

func (t *TLS) Write(ctx context.Context, from []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(dl)
	}
	return t.conn.Write(from)
}

func (t *TLS) Close(ctx context.Context) error {
	return t.conn.Close()
}
