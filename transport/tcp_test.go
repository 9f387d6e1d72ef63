package transport

import (
	"context"
	"net"
	"testing"
)

func TestTCP_ReadWriteRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	a := NewTCP(client)
	b := NewTCP(server)

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 5)
		n, err := b.Read(ctx, buf)
		if err != nil {
			t.Errorf("Read() failed: %v", err)
			return
		}
		if string(buf[:n]) != "hello" {
			t.Errorf("Read() = %q, want %q", buf[:n], "hello")
		}
	}()

	if _, err := a.Write(ctx, []byte("hello")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	<-done
}

func TestTCP_CloseUnblocksRead(t *testing.T) {
	client, server := net.Pipe()
	a := NewTCP(client)
	b := NewTCP(server)

	errCh := make(chan error, 1)
	go func() {
		_, err := b.Read(context.Background(), make([]byte, 1))
		errCh <- err
	}()

	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := <-errCh; err == nil {
		t.Error("expected Read() to fail after peer Close()")
	}
	b.Close(context.Background())
}
