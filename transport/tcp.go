package transport

import (
	"context"
	"net"
)

// TCP is a plain, unencrypted stream Adapter over a net.Conn.
type TCP struct {
	conn net.Conn
}

// DialTCP connects to addr ("host:port") and returns a ready Adapter.
func DialTCP(ctx context.Context, addr string) (*TCP, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &TCP{conn: conn}, nil
}

// NewTCP wraps an already-established net.Conn, for callers that dial
// themselves (custom resolvers, connection pools, tests using net.Pipe).
func NewTCP(conn net.Conn) *TCP {
	return &TCP{conn: conn}
}

func (t *TCP) Read(ctx context.Context, into []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(dl)
	}
	return t.conn.Read(into)
}

func (t *TCP) Write(ctx context.Context, from []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(dl)
	}
	return t.conn.Write(from)
}

func (t *TCP) Close(ctx context.Context) error {
	return t.conn.Close()
}
