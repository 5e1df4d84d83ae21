package lz4frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deploymenttheory/go-lz4-frame/internal/readstage"
)

func TestParseHeaderFlags(t *testing.T) {
	flg := byte(flgVersion | flgBlockIndependence | flgContentChecksum)
	bd := byte(0x40) // block-max-size code 4, arbitrary for this test
	data := buildFrame(flg, bd, nil)

	rs := readstage.New(InputBufferSize)
	hdr, err := parseHeader(rs, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}

	if !hdr.BlockIndependence {
		t.Error("BlockIndependence = false, want true")
	}
	if hdr.BlockChecksum {
		t.Error("BlockChecksum = true, want false")
	}
	if hdr.ContentSizePresent {
		t.Error("ContentSizePresent = true, want false")
	}
	if !hdr.ContentChecksum {
		t.Error("ContentChecksum = false, want true")
	}
	if hdr.BlockMaxSizeCode != 4 {
		t.Errorf("BlockMaxSizeCode = %d, want 4", hdr.BlockMaxSizeCode)
	}
	if hdr.HeaderSize != 7 {
		t.Errorf("HeaderSize = %d, want 7", hdr.HeaderSize)
	}
}

func TestParseHeaderContentSizeIs8Bytes(t *testing.T) {
	flg := byte(flgVersion | flgContentSize)
	bd := byte(0x40)
	contentSize := make([]byte, 8)
	data := buildFrame(flg, bd, contentSize)

	rs := readstage.New(InputBufferSize)
	hdr, err := parseHeader(rs, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if !hdr.ContentSizePresent {
		t.Error("ContentSizePresent = false, want true")
	}
	if hdr.HeaderSize != 15 { // 6 prefix + 8 content size + 1 HC
		t.Errorf("HeaderSize = %d, want 15", hdr.HeaderSize)
	}
}

func TestParseHeaderWrongMagic(t *testing.T) {
	data := append([]byte{0, 0, 0, 0}, byte(flgVersion), 0x40, 0x00)
	rs := readstage.New(InputBufferSize)
	_, err := parseHeader(rs, bytes.NewReader(data))

	var de *DecodeError
	if !errors.As(err, &de) || de.Kind != WrongMagic {
		t.Fatalf("err = %v, want WrongMagic", err)
	}
}

func TestParseHeaderWrongVersion(t *testing.T) {
	data := buildFrame(0x00, 0x40, nil) // top two bits 00, not 01
	rs := readstage.New(InputBufferSize)
	_, err := parseHeader(rs, bytes.NewReader(data))

	var de *DecodeError
	if !errors.As(err, &de) || de.Kind != WrongVersion {
		t.Fatalf("err = %v, want WrongVersion", err)
	}
}

func TestParseHeaderDictIDUnsupported(t *testing.T) {
	flg := byte(flgVersion | flgDictID)
	data := buildFrame(flg, 0x40, nil)
	rs := readstage.New(InputBufferSize)
	_, err := parseHeader(rs, bytes.NewReader(data))

	var de *DecodeError
	if !errors.As(err, &de) || de.Kind != UnsupportedFeature || de.Feature != "DictID" {
		t.Fatalf("err = %v, want UnsupportedFeature(DictID)", err)
	}
}
