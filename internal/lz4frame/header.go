package lz4frame

import (
	"io"

	"github.com/deploymenttheory/go-lz4-frame/internal/readstage"
)

const frameMagic = 0x184D2204

// Header describes the frame prefix once parsed: which optional per-block
// and per-frame trailers the rest of the stream carries.
type Header struct {
	BlockIndependence  bool
	BlockChecksum      bool
	ContentSizePresent bool
	ContentChecksum    bool
	DictIDPresent      bool
	BlockMaxSizeCode   byte // 3-bit code from BD bits 6-4, informational only
	HeaderSize         int  // bytes consumed by magic..HC, for diagnostics
}

// parseHeader consumes the frame prefix from src through stage: magic, FLG,
// BD, the optional content-size field, and the header checksum byte. A set
// dictionary-id flag is rejected with UnsupportedFeature as soon as FLG is
// read, so the dictionary-id field itself is never read.
func parseHeader(rs *readstage.Stage, src io.Reader) (Header, error) {
	const prefix = 6 // magic(4) + FLG(1) + BD(1)
	if err := rs.Refill(src, prefix); err != nil {
		return Header{}, errReadIO(err)
	}

	if rs.PeekUint32LE(0) != frameMagic {
		return Header{}, errWrongMagic()
	}

	flg := rs.ByteAt(4)
	bd := rs.ByteAt(5)

	if flg>>6 != 0b01 {
		return Header{}, errWrongVersion()
	}

	if flg&0x01 != 0 {
		return Header{}, errUnsupportedFeature("DictID")
	}

	headerSize := prefix
	contentSizePresent := flg&0x08 != 0
	if contentSizePresent {
		if err := rs.Refill(src, 8); err != nil {
			return Header{}, errReadIO(err)
		}
		headerSize += 8
	}

	// Header checksum: consumed, never validated.
	if err := rs.Refill(src, 1); err != nil {
		return Header{}, errReadIO(err)
	}
	headerSize++

	rs.Consume(headerSize)
	rs.Compact()

	return Header{
		BlockIndependence:  flg&0x20 != 0,
		BlockChecksum:      flg&0x10 != 0,
		ContentSizePresent: contentSizePresent,
		ContentChecksum:    flg&0x04 != 0,
		DictIDPresent:      false,
		BlockMaxSizeCode:   (bd >> 4) & 0x07,
		HeaderSize:         headerSize,
	}, nil
}
