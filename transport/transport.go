// Package transport supplies the byte-stream adapters an Endpoint speaks
// MQTT over. All adapters are plain, context-aware Read/Write/Close
// methods; the Endpoint's own goroutines do the scheduling, so there is
// no separate executor abstraction here.
package transport

import "context"

// Adapter is the uniform byte-stream interface an Endpoint drives. Every
// method must be safe to call from the Endpoint's dedicated read-pump and
// write-pump goroutines without external synchronisation beyond what the
// concrete adapter documents.
type Adapter interface {
	// Read fills into with the next available bytes, returning the count
	// actually read. It blocks until data is available, ctx is cancelled,
	// or the adapter is closed.
	Read(ctx context.Context, into []byte) (int, error)

	// Write sends from in full or returns an error. Callers must not call
	// Write concurrently with itself; the Endpoint serialises outbound
	// writes through a single writer goroutine.
	Write(ctx context.Context, from []byte) (int, error)

	// Close releases the underlying connection. WebSocket adapters send a
	// close frame and drain for the peer's close frame before returning.
	Close(ctx context.Context) error
}
