package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func newWebSocketEchoServer() *httptest.Server {
	upgrader := websocket.Upgrader{Subprotocols: []string{"mqtt"}}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(kind, data); err != nil {
				return
			}
		}
	}))
}

func TestWebSocket_ReadWriteRoundTrip(t *testing.T) {
	srv := newWebSocketEchoServer()
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	adapter, err := DialWebSocket(context.Background(), wsURL, nil)
	if err != nil {
		t.Fatalf("DialWebSocket() failed: %v", err)
	}
	defer adapter.Close(context.Background())

	if _, err := adapter.Write(context.Background(), []byte("hello world")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	buf := make([]byte, len("hello world"))
	n, err := adapter.Read(context.Background(), buf)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(buf[:n]) != "hello world" {
		t.Errorf("Read() = %q, want %q", buf[:n], "hello world")
	}
}

func TestWebSocket_ReadSpansMultipleShortCalls(t *testing.T) {
	srv := newWebSocketEchoServer()
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	adapter, err := DialWebSocket(context.Background(), wsURL, nil)
	if err != nil {
		t.Fatalf("DialWebSocket() failed: %v", err)
	}
	defer adapter.Close(context.Background())

	if _, err := adapter.Write(context.Background(), []byte("abcdef")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	first := make([]byte, 3)
	n, err := adapter.Read(context.Background(), first)
	if err != nil || n != 3 || string(first) != "abc" {
		t.Fatalf("first Read() = (%q, %v), want (\"abc\", nil)", first[:n], err)
	}

	second := make([]byte, 3)
	n, err = adapter.Read(context.Background(), second)
	if err != nil || n != 3 || string(second) != "def" {
		t.Fatalf("second Read() = (%q, %v), want (\"def\", nil)", second[:n], err)
	}
}

func TestNewBadMessageError(t *testing.T) {
	err := newBadMessageError()
	if err == nil {
		t.Fatal("newBadMessageError() returned nil")
	}
}
