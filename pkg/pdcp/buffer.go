package pdcp

import "github.com/marmos91/ltepdcp/pkg/bufpool"

// DefaultHeadroom is the number of bytes reserved before the payload of a
// freshly allocated Buffer, enough for the largest header this package packs
// (2 bytes) plus margin. Buffers obtained any other way must still carry at
// least 2 bytes of headroom and 4 bytes of tailroom before being handed to
// WriteSDU.
const DefaultHeadroom = 8

// DefaultTailroom is the number of bytes reserved after the payload of a
// freshly allocated Buffer for the SRB MAC-I trailer.
const DefaultTailroom = 4

// Buffer is a uniquely owned byte buffer with a moveable start pointer,
// modeling the "growing left" header-prepend semantics PDCP framing depends
// on: a header is written in place by sliding the start pointer left into
// pre-negotiated headroom rather than by copying the payload.
//
// A Buffer is not safe for concurrent use; ownership transfers between
// layers the way a pointer does, never the contents.
type Buffer struct {
	backing []byte
	start   int
	end     int
}

// NewBuffer wraps an existing backing slice with msg initially spanning the
// whole slice, no headroom.
func NewBuffer(backing []byte) *Buffer {
	return &Buffer{backing: backing, start: 0, end: len(backing)}
}

// NewBufferWithHeadroom allocates a Buffer from the package buffer pool
// sized to hold payloadLen bytes plus the given headroom and tailroom, with
// msg initially positioned after the headroom.
func NewBufferWithHeadroom(payloadLen, headroom, tailroom int) *Buffer {
	backing := bufpool.Get(headroom + payloadLen + tailroom)
	return &Buffer{backing: backing, start: headroom, end: headroom + payloadLen}
}

// Msg returns the current logical contents: backing[start:end].
func (b *Buffer) Msg() []byte {
	return b.backing[b.start:b.end]
}

// Len returns the number of bytes currently in msg.
func (b *Buffer) Len() int {
	return b.end - b.start
}

// Headroom returns the number of unused bytes before msg in the backing
// array, available for zero-copy header prepend.
func (b *Buffer) Headroom() int {
	return b.start
}

// Tailroom returns the number of unused bytes after msg in the backing
// array.
func (b *Buffer) Tailroom() int {
	return len(b.backing) - b.end
}

// Prepend slides the start pointer left by len(header) and copies header
// into the freed region. Panics if there is insufficient headroom; callers
// guarantee headroom at allocation time, and no runtime error path exists
// for this condition.
func (b *Buffer) Prepend(header []byte) {
	n := len(header)
	if b.start < n {
		panic("pdcp: buffer prepend exceeds headroom")
	}
	b.start -= n
	copy(b.backing[b.start:b.start+n], header)
}

// Consume slides the start pointer right by n, discarding the first n bytes
// of msg (header strip on receive).
func (b *Buffer) Consume(n int) {
	if n > b.Len() {
		panic("pdcp: buffer consume exceeds length")
	}
	b.start += n
}

// Append copies data into the tailroom and extends end by len(data).
// Panics if there is insufficient tailroom.
func (b *Buffer) Append(data []byte) {
	n := len(data)
	if b.Tailroom() < n {
		panic("pdcp: buffer append exceeds tailroom")
	}
	copy(b.backing[b.end:b.end+n], data)
	b.end += n
}

// Shrink reduces msg's length by n bytes from the tail (used to split off
// the trailing MAC before header processing).
func (b *Buffer) Shrink(n int) {
	if n > b.Len() {
		panic("pdcp: buffer shrink exceeds length")
	}
	b.end -= n
}

// Release returns the backing array to the global buffer pool. The Buffer
// must not be used after Release.
func (b *Buffer) Release() {
	if b.backing != nil {
		bufpool.Put(b.backing)
		b.backing = nil
	}
}
