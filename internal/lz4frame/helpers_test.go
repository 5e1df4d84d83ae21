package lz4frame

import "encoding/binary"

// Test-only frame builders. There is no encoder in this module (encoding is
// out of scope), so tests hand-assemble frames byte by byte.

var magicBytes = []byte{0x04, 0x22, 0x4D, 0x18}

// buildFrame concatenates a header and a sequence of blocks followed by the
// zero terminator.
func buildFrame(flg, bd byte, contentSize []byte, blocks ...[]byte) []byte {
	buf := append([]byte{}, magicBytes...)
	buf = append(buf, flg, bd)
	buf = append(buf, contentSize...)
	buf = append(buf, 0x00) // header checksum, unvalidated

	for _, b := range blocks {
		buf = append(buf, b...)
	}
	buf = append(buf, 0, 0, 0, 0) // terminator

	return buf
}

const (
	flgVersion             = 0b01 << 6
	flgBlockIndependence   = 1 << 5
	flgBlockChecksum       = 1 << 4
	flgContentSize         = 1 << 3
	flgContentChecksum     = 1 << 2
	flgDictID              = 1 << 0
)

func rawBlock(payload []byte) []byte {
	hdr := make([]byte, 4)
	binary.LittleEndian.PutUint32(hdr, uint32(len(payload))|0x80000000)
	return append(hdr, payload...)
}

func compressedBlock(sequences ...[]byte) []byte {
	var body []byte
	for _, s := range sequences {
		body = append(body, s...)
	}
	hdr := make([]byte, 4)
	binary.LittleEndian.PutUint32(hdr, uint32(len(body)))
	return append(hdr, body...)
}

// encodeLenNibble splits n into a 4-bit token nibble and, if n >= 15, the
// 0xFF-chain extension bytes that follow the token.
func encodeLenNibble(n int) (nibble byte, ext []byte) {
	if n < 15 {
		return byte(n), nil
	}
	rem := n - 15
	for rem >= 255 {
		ext = append(ext, 255)
		rem -= 255
	}
	ext = append(ext, byte(rem))
	return 15, ext
}

// seqLiteralOnly builds the block-terminating sequence form: a literal run
// with no following offset/match.
func seqLiteralOnly(lit []byte) []byte {
	nib, ext := encodeLenNibble(len(lit))
	buf := []byte{nib << 4}
	buf = append(buf, ext...)
	buf = append(buf, lit...)
	return buf
}

// seqMatch builds a full sequence: literal run, offset, and match of
// matchLen bytes (matchLen already includes the +4 minimum-match bias).
func seqMatch(lit []byte, offset, matchLen int) []byte {
	litNib, litExt := encodeLenNibble(len(lit))
	mNib, mExt := encodeLenNibble(matchLen - minMatchLength)
	buf := []byte{(litNib << 4) | mNib}
	buf = append(buf, litExt...)
	buf = append(buf, lit...)
	buf = append(buf, byte(offset), byte(offset>>8))
	buf = append(buf, mExt...)
	return buf
}
