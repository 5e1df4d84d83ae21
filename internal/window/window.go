// Package window implements the circular sliding-window writer that backs
// LZ4 back-references. It forwards every decoded byte to a downstream sink
// exactly once, in order, while keeping the last Capacity bytes addressable
// so a later sequence can copy from them — including the LZ4 "run" case
// where the copy length exceeds the copy offset and the source of the copy
// is itself being produced by the copy.
package window

import "io"

// Capacity is the LZ4 frame window size: the maximum distance a match offset
// can reach back.
const Capacity = 1 << 16

const mask = Capacity - 1

// Window is a ring buffer of size Capacity in front of an io.Writer.
type Window struct {
	sink   io.Writer
	ring   [Capacity]byte
	cursor int
}

// New creates a Window that forwards to sink.
func New(sink io.Writer) *Window {
	return &Window{sink: sink}
}

// Write forwards p to the sink and mirrors it into the ring for later
// back-references. The ring is updated before the sink write: any bytes
// visible to a later offset copy have already landed in the ring by the
// time the sink write returns.
func (w *Window) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	w.mirror(p)
	return writeAll(w.sink, p)
}

func (w *Window) mirror(p []byte) {
	n := len(p)
	if n >= Capacity {
		copy(w.ring[:], p[n-Capacity:])
		w.cursor = 0
		return
	}
	first := Capacity - w.cursor
	if first > n {
		first = n
	}
	copy(w.ring[w.cursor:], p[:first])
	copy(w.ring[:n-first], p[first:])
	w.cursor = (w.cursor + n) & mask
}

// CopyFromOffset emits length bytes read from offset bytes behind the
// current write cursor, 1 <= offset <= Capacity. When length > offset this
// produces run-length output: each period of offset bytes is read from the
// same ring region the previous period just wrote, so the pattern
// propagates without a dedicated overlap case.
func (w *Window) CopyFromOffset(offset, length int) error {
	remaining := length
	idx := (w.cursor - offset) & mask
	for remaining > offset {
		if err := w.emit(idx, offset); err != nil {
			return err
		}
		idx = (idx + offset) & mask
		remaining -= offset
	}
	return w.emit(idx, remaining)
}

// emit writes n already-written bytes starting at ring index idx to the
// sink and re-mirrors them at the cursor, splitting at ring-wrap boundaries
// so each chunk is a single contiguous slice on both ends.
func (w *Window) emit(idx, n int) error {
	for n > 0 {
		chunk := Capacity - w.cursor
		if c := Capacity - idx; c < chunk {
			chunk = c
		}
		if chunk > n {
			chunk = n
		}
		src := w.ring[idx : idx+chunk]
		if err := writeAll(w.sink, src); err != nil {
			return err
		}
		copy(w.ring[w.cursor:w.cursor+chunk], src)
		w.cursor = (w.cursor + chunk) & mask
		idx = (idx + chunk) & mask
		n -= chunk
	}
	return nil
}

func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
