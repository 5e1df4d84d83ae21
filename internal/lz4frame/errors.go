package lz4frame

import "fmt"

// ErrorKind tags the closed set of ways a decode can fail. There is no
// hierarchy: every DecodeError carries exactly one kind and whatever payload
// that kind needs.
type ErrorKind int

const (
	// WrongMagic means the frame's first 4 bytes were not 0x184D2204.
	WrongMagic ErrorKind = iota
	// WrongVersion means the FLG byte's top two bits were not 0b01.
	WrongVersion
	// UnsupportedFeature means the frame uses something this decoder
	// intentionally does not implement (currently only dictionary IDs).
	UnsupportedFeature
	// InvalidBlockSize means a block header declared a size at or beyond
	// the read-side staging buffer's capacity.
	InvalidBlockSize
	// CorruptedData covers every structural inconsistency in a block's
	// sequence stream: literal-length overrun, zero offset, truncated
	// sequence, or a 0xFF-chain that runs off the end of staged input.
	CorruptedData
	// ReadIO means the underlying source failed or ended unexpectedly.
	ReadIO
	// WriteIO means the underlying sink failed or wrote short.
	WriteIO
	// UnknownDataAtEnd means bytes remained readable after the frame
	// terminator and any trailing content checksum.
	UnknownDataAtEnd
)

func (k ErrorKind) String() string {
	switch k {
	case WrongMagic:
		return "wrong magic"
	case WrongVersion:
		return "wrong version"
	case UnsupportedFeature:
		return "unsupported feature"
	case InvalidBlockSize:
		return "invalid block size"
	case CorruptedData:
		return "corrupted data"
	case ReadIO:
		return "read error"
	case WriteIO:
		return "write error"
	case UnknownDataAtEnd:
		return "unknown data at end"
	default:
		return "unknown error"
	}
}

// DecodeError is the single error type returned by Decode. Already-written
// output is never rolled back when a DecodeError is returned partway
// through a stream.
type DecodeError struct {
	Kind    ErrorKind
	Feature string // set for UnsupportedFeature
	Size    int    // set for InvalidBlockSize
	Err     error  // wrapped I/O error, set for ReadIO/WriteIO
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case UnsupportedFeature:
		return fmt.Sprintf("lz4frame: unsupported feature: %s", e.Feature)
	case InvalidBlockSize:
		return fmt.Sprintf("lz4frame: invalid block size: %d", e.Size)
	case ReadIO:
		return fmt.Sprintf("lz4frame: read error: %v", e.Err)
	case WriteIO:
		return fmt.Sprintf("lz4frame: write error: %v", e.Err)
	default:
		return "lz4frame: " + e.Kind.String()
	}
}

// Unwrap exposes the wrapped I/O error, if any, to errors.Is/errors.As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func errWrongMagic() error       { return &DecodeError{Kind: WrongMagic} }
func errWrongVersion() error     { return &DecodeError{Kind: WrongVersion} }
func errCorruptedData() error    { return &DecodeError{Kind: CorruptedData} }
func errUnknownDataAtEnd() error { return &DecodeError{Kind: UnknownDataAtEnd} }

func errUnsupportedFeature(name string) error {
	return &DecodeError{Kind: UnsupportedFeature, Feature: name}
}

func errInvalidBlockSize(n int) error {
	return &DecodeError{Kind: InvalidBlockSize, Size: n}
}

func errReadIO(err error) error {
	return &DecodeError{Kind: ReadIO, Err: err}
}

func errWriteIO(err error) error {
	return &DecodeError{Kind: WriteIO, Err: err}
}
