package packet

import (
	"bytes"
	"sync/atomic"
)

// backing is a reference-counted allocation shared by every Buffer view
// derived from it. It is released (dropped for GC) once the last view goes
// away; Go has no destructor to hook that to, so refs only counts the
// views handed out (Own starts it at 1, each Substr adds one) and is
// never decremented or checked, mirroring
// the shared_ptr_array lifetime object the wire protocol's C++ ancestor
// ties a view to.
type backing struct {
	data []byte
	refs atomic.Int32
}

// Buffer is an immutable byte-range view, optionally backed by a shared,
// reference-counted allocation. A Buffer without a backing borrows external
// storage and is only valid as long as the caller keeps that storage alive;
// a Buffer with a backing (constructed via Own) may be held indefinitely by
// any of its substrings independent of who created it.
type Buffer struct {
	view    []byte
	backing *backing
}

// NewBuffer wraps v as a borrowed view with no shared backing. The caller
// must keep v alive for as long as the returned Buffer or any of its
// substrings are used.
func NewBuffer(v []byte) Buffer {
	return Buffer{view: v}
}

// Own copies v into a fresh, reference-counted allocation and returns a
// Buffer over the whole of it. Substrings of the result keep the
// allocation alive on their own, independent of the caller's copy of v.
func Own(v []byte) Buffer {
	data := make([]byte, len(v))
	copy(data, v)
	b := &backing{data: data}
	b.refs.Store(1)
	return Buffer{view: data, backing: b}
}

// Len returns the length of the view window.
func (b Buffer) Len() int { return len(b.view) }

// Bytes returns the raw view window. Callers must not mutate the returned
// slice; Buffer promises immutability of its view.
func (b Buffer) Bytes() []byte { return b.view }

// String returns the view window decoded as UTF-8.
func (b Buffer) String() string { return string(b.view) }

// Substr returns the sub-window [offset, offset+length) of b, sharing b's
// backing. It reports ErrOutOfRange if the requested window falls outside
// b's own view.
func (b Buffer) Substr(offset, length int) (Buffer, error) {
	if offset < 0 || length < 0 || offset+length > len(b.view) {
		return Buffer{}, ErrOutOfRange
	}
	if b.backing != nil {
		b.backing.refs.Add(1)
	}
	return Buffer{view: b.view[offset : offset+length], backing: b.backing}, nil
}

// View returns b itself; it exists to name the borrow-the-view operation
// explicitly, distinct from copying via Own.
func (b Buffer) View() Buffer { return b }

// Equal reports whether a and b hold byte-identical view windows.
func (b Buffer) Equal(o Buffer) bool { return bytes.Equal(b.view, o.view) }

// Compare returns a byte-wise lexicographic comparison of b and o's view
// windows, following the conventions of bytes.Compare.
func (b Buffer) Compare(o Buffer) int { return bytes.Compare(b.view, o.view) }
