// Package readstage implements the fixed-capacity byte accumulator that sits
// in front of an LZ4 frame's input source. Variable-length decoding (varint
// literal/match length extension, 2-byte offsets that may straddle a refill)
// needs a contiguous view of not-yet-consumed input; Stage provides one
// without re-reading bytes that have already been staged.
package readstage

import "io"

// Stage accumulates bytes read from an io.Reader into a fixed buffer. Bytes
// in [0, head) have been consumed; bytes in [head, tail) are staged and
// unread. Compact slides the unread tail down to index 0 so the next Refill
// has room to grow.
type Stage struct {
	storage []byte
	head    int
	tail    int
}

// New allocates a Stage whose capacity is the next power of two at or above
// capacity. A power-of-two capacity keeps Stage the same shape as the ring
// buffer in package window, even though Stage itself never wraps.
func New(capacity int) *Stage {
	return &Stage{storage: make([]byte, roundUpPow2(capacity))}
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Capacity returns the size of the underlying buffer.
func (s *Stage) Capacity() int {
	return len(s.storage)
}

// Len returns the number of staged, unread bytes.
func (s *Stage) Len() int {
	return s.tail - s.head
}

// Refill reads exactly n bytes from r into the buffer just past the staged
// region and advances tail. The caller must ensure tail+n does not exceed
// Capacity, which in practice means calling Compact first.
func (s *Stage) Refill(r io.Reader, n int) error {
	if n == 0 {
		return nil
	}
	if _, err := io.ReadFull(r, s.storage[s.tail:s.tail+n]); err != nil {
		return err
	}
	s.tail += n
	return nil
}

// PeekUint32LE reads 4 bytes at the given offset from head as a
// little-endian uint32, without consuming them.
func (s *Stage) PeekUint32LE(offset int) uint32 {
	b := s.storage[s.head+offset : s.head+offset+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// ByteAt returns the byte at the given offset from head, without consuming it.
func (s *Stage) ByteAt(offset int) byte {
	return s.storage[s.head+offset]
}

// Slice returns an immutable view of the staged bytes in [start, end),
// relative to head. The returned slice is only valid until the next Compact
// or Refill call.
func (s *Stage) Slice(start, end int) []byte {
	return s.storage[s.head+start : s.head+end]
}

// Consume marks the first n staged bytes as read.
func (s *Stage) Consume(n int) {
	s.head += n
}

// PopByte consumes and returns the first staged byte, or reports false if
// nothing is staged.
func (s *Stage) PopByte() (byte, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	b := s.storage[s.head]
	s.head++
	return b, true
}

// Compact slides any unread tail down to index 0. It is a no-op when head is
// already 0, so calling it between every block is always safe.
func (s *Stage) Compact() {
	if s.head == 0 {
		return
	}
	if s.head < s.tail {
		copy(s.storage, s.storage[s.head:s.tail])
	}
	s.tail -= s.head
	s.head = 0
}
