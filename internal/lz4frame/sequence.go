package lz4frame

import (
	"github.com/deploymenttheory/go-lz4-frame/internal/readstage"
	"github.com/deploymenttheory/go-lz4-frame/internal/window"
)

const minMatchLength = 4

// decodeSequence decodes one LZ4 sequence (token, literal run, optional
// offset+match) from rs and drives win accordingly. It reports whether this
// was the block's final sequence (no match section follows the literals).
func decodeSequence(rs *readstage.Stage, win *window.Window) (blockComplete bool, err error) {
	tok, ok := rs.PopByte()
	if !ok {
		return false, errCorruptedData()
	}

	litLen, err := varintExtend(rs, (tok&0xF0)>>4)
	if err != nil {
		return false, err
	}
	if litLen > rs.Len() {
		return false, errCorruptedData()
	}

	if err := win.Write(rs.Slice(0, litLen)); err != nil {
		return false, errWriteIO(err)
	}
	rs.Consume(litLen)

	if rs.Len() == 0 {
		return true, nil
	}

	if rs.Len() < 2 {
		return false, errCorruptedData()
	}
	offset := int(rs.ByteAt(0)) | int(rs.ByteAt(1))<<8
	if offset == 0 {
		return false, errCorruptedData()
	}
	rs.Consume(2)

	matchExt, err := varintExtend(rs, tok&0x0F)
	if err != nil {
		return false, err
	}
	matchLen := matchExt + minMatchLength

	if err := win.CopyFromOffset(offset, matchLen); err != nil {
		return false, errWriteIO(err)
	}

	return false, nil
}

// varintExtend applies the LZ4 0xFF-chain extension to a 4-bit nibble base:
// a base of 15 means "keep reading bytes, adding each, until one is not 255."
func varintExtend(rs *readstage.Stage, base byte) (int, error) {
	n := int(base)
	if base != 15 {
		return n, nil
	}
	for {
		b, ok := rs.PopByte()
		if !ok {
			return 0, errCorruptedData()
		}
		n += int(b)
		if b != 255 {
			break
		}
	}
	return n, nil
}
