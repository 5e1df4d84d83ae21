// Package lz4frame decodes the LZ4 Frame format. It is a streaming,
// single-pass decompressor: input is read sequentially from an io.Reader and
// output is written sequentially to an io.Writer, with two fixed-size
// buffers doing all the work — a staging buffer in front of the reader
// (package readstage) and a circular back-reference window in front of the
// writer (package window).
package lz4frame

import (
	"io"

	"github.com/deploymenttheory/go-lz4-frame/internal/readstage"
	"github.com/deploymenttheory/go-lz4-frame/internal/window"
)

// InputBufferSize is the staging buffer capacity. Block headers and
// checksums are read directly from the source and never staged here, so the
// full capacity is available for a block's payload; legal block sizes are
// strictly less than this value.
const InputBufferSize = 1 << 22

// Summary reports what a Decode call did, beyond the decoded bytes
// themselves. It is not part of the wire format; it exists so callers (the
// CLI's --report flag, tests) can observe the shape of the frame without
// re-parsing it.
type Summary struct {
	Header           Header
	InputBytes       int64
	OutputBytes      int64
	RawBlocks        int
	CompressedBlocks int
}

// countingWriter tracks total bytes written so Decode can report
// OutputBytes without the window package needing to know about Summary.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Decoder owns the read-side staging buffer across calls to Decode. A
// Decoder is not safe for concurrent use; each instance decodes one frame
// at a time.
type Decoder struct {
	stage *readstage.Stage
}

// NewDecoder allocates a Decoder with a freshly sized staging buffer.
func NewDecoder() *Decoder {
	return &Decoder{stage: readstage.New(InputBufferSize)}
}

// Decode reads one LZ4 frame from src and writes the decompressed bytes to
// dst. It returns as soon as the frame is fully decoded or an error occurs;
// bytes already written to dst before an error are not rolled back.
func (d *Decoder) Decode(src io.Reader, dst io.Writer) (Summary, error) {
	// Drop whatever a previous call left staged so every frame starts from
	// an empty staging buffer.
	d.stage.Consume(d.stage.Len())
	d.stage.Compact()

	hdr, err := parseHeader(d.stage, src)
	if err != nil {
		return Summary{}, err
	}

	cw := &countingWriter{w: dst}
	win := window.New(cw)

	sum := Summary{Header: hdr}
	if err := decodeBlocks(d.stage, src, win, hdr, &sum); err != nil {
		sum.OutputBytes = cw.n
		return sum, err
	}
	sum.OutputBytes = cw.n

	return sum, nil
}

// Decode is a convenience wrapper for one-shot use: it allocates a Decoder,
// decodes exactly one frame from src into dst, and discards the Decoder.
// Most callers outside a hot loop want this instead of managing a Decoder
// themselves.
func Decode(src io.Reader, dst io.Writer) (Summary, error) {
	return NewDecoder().Decode(src, dst)
}
