package packet

import (
	"bytes"
	"sync"
)

// scratchPool recycles bytes.Buffer instances used as encoding scratch
// space while packing a packet's variable header and payload before the
// fixed header (which needs the final remaining-length) is written.
var scratchPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getScratch() *bytes.Buffer {
	return scratchPool.Get().(*bytes.Buffer)
}

func putScratch(buf *bytes.Buffer) {
	buf.Reset()
	scratchPool.Put(buf)
}
