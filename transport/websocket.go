package transport

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket is a stream Adapter over a *websocket.Conn, presenting MQTT's
// framed binary payloads as a plain byte stream: reads coalesce as many
// buffered WebSocket messages as needed to satisfy the caller's buffer,
// and every frame is verified binary (a text frame is a protocol
// violation, not a message to hand to the codec).
//
// WebSocketTLS has no separate type: dial with a non-nil tls.Config to get
// wss:// instead of ws://.
type WebSocket struct {
	conn *websocket.Conn

	// leftover holds bytes read off the wire from a prior frame that the
	// caller's buffer wasn't large enough to consume in one Read call.
	leftover []byte
}

// DialWebSocket connects to urlStr (ws:// or wss://) advertising the
// "mqtt" subprotocol. tlsConfig is used only for wss:// URLs; pass nil for
// ws://.
func DialWebSocket(ctx context.Context, urlStr string, tlsConfig *tls.Config) (*WebSocket, error) {
	dialer := &websocket.Dialer{
		TLSClientConfig:  tlsConfig,
		HandshakeTimeout: 10 * time.Second,
		Subprotocols:     []string{"mqtt"},
	}
	conn, _, err := dialer.DialContext(ctx, urlStr, http.Header{})
	if err != nil {
		return nil, err
	}
	return &WebSocket{conn: conn}, nil
}

func (w *WebSocket) Read(ctx context.Context, into []byte) (int, error) {
	total := 0
	for total < len(into) {
		if len(w.leftover) > 0 {
			n := copy(into[total:], w.leftover)
			w.leftover = w.leftover[n:]
			total += n
			continue
		}
		if dl, ok := ctx.Deadline(); ok {
			_ = w.conn.SetReadDeadline(dl)
		}
		kind, data, err := w.conn.ReadMessage()
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if kind != websocket.BinaryMessage {
			return total, newBadMessageError()
		}
		w.leftover = data
	}
	return total, nil
}

func (w *WebSocket) Write(ctx context.Context, from []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = w.conn.SetWriteDeadline(dl)
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, from); err != nil {
		return 0, err
	}
	return len(from), nil
}

func (w *WebSocket) Close(ctx context.Context) error {
	deadline := time.Now().Add(5 * time.Second)
	if dl, ok := ctx.Deadline(); ok {
		deadline = dl
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, deadline)

	// Drain until the peer's close frame arrives or the deadline passes.
	_ = w.conn.SetReadDeadline(deadline)
	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			break
		}
	}
	return w.conn.Close()
}
