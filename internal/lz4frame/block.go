package lz4frame

import (
	"io"

	"github.com/deploymenttheory/go-lz4-frame/internal/readstage"
	"github.com/deploymenttheory/go-lz4-frame/internal/window"
)

const blockSizeMask = 0x7FFFFFFF
const rawBlockFlag = 0x80000000

// readUint32LE reads a little-endian uint32 directly from src into a local
// stack buffer, bypassing the ReadStage entirely. Block headers and
// checksums must never be staged: staging them would eat into the capacity
// a conformant block's payload is allowed to fill up to.
func readUint32LE(src io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// discardChecksum reads and drops a 4-byte checksum directly from src.
func discardChecksum(src io.Reader) error {
	var buf [4]byte
	_, err := io.ReadFull(src, buf[:])
	return err
}

// decodeBlocks runs the block loop: read a 4-byte block header, stop at the
// zero terminator, otherwise copy a raw block verbatim or drive
// decodeSequence until the compressed block is exhausted. After the
// terminator it consumes the optional content checksum and checks for
// trailing garbage.
func decodeBlocks(rs *readstage.Stage, src io.Reader, win *window.Window, hdr Header, sum *Summary) error {
	for {
		bh, err := readUint32LE(src)
		if err != nil {
			return errReadIO(err)
		}

		if bh == 0 {
			break
		}

		rawFlag := bh&rawBlockFlag != 0
		blockSize := int(bh & blockSizeMask)

		if blockSize >= rs.Capacity() {
			return errInvalidBlockSize(blockSize)
		}

		rs.Compact()
		if err := rs.Refill(src, blockSize); err != nil {
			return errReadIO(err)
		}
		sum.InputBytes += int64(blockSize)

		if rawFlag {
			if err := win.Write(rs.Slice(0, blockSize)); err != nil {
				return errWriteIO(err)
			}
			rs.Consume(blockSize)
			sum.RawBlocks++
		} else {
			for {
				done, err := decodeSequence(rs, win)
				if err != nil {
					return err
				}
				if done {
					break
				}
			}
			sum.CompressedBlocks++
		}

		if hdr.BlockChecksum {
			// Consumed, not validated.
			if err := discardChecksum(src); err != nil {
				return errReadIO(err)
			}
		}
	}

	if hdr.ContentChecksum {
		if err := discardChecksum(src); err != nil {
			return errReadIO(err)
		}
	}

	var tail [4]byte
	n, err := src.Read(tail[:])
	if err != nil && err != io.EOF {
		return errReadIO(err)
	}
	if n != 0 {
		return errUnknownDataAtEnd()
	}

	return nil
}
