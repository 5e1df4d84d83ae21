package readstage

import (
	"bytes"
	"testing"
)

func TestRoundUpPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1000: 1024}
	for in, want := range cases {
		if got := roundUpPow2(in); got != want {
			t.Errorf("roundUpPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRefillAndConsume(t *testing.T) {
	s := New(16)
	if s.Capacity() != 16 {
		t.Fatalf("capacity = %d, want 16", s.Capacity())
	}

	if err := s.Refill(bytes.NewReader([]byte("hello")), 5); err != nil {
		t.Fatalf("refill: %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("len = %d, want 5", s.Len())
	}

	b, ok := s.PopByte()
	if !ok || b != 'h' {
		t.Fatalf("popByte = %c,%v, want h,true", b, ok)
	}
	if s.Len() != 4 {
		t.Fatalf("len after pop = %d, want 4", s.Len())
	}

	got := s.Slice(0, 4)
	if string(got) != "ello" {
		t.Fatalf("slice = %q, want ello", got)
	}

	s.Consume(4)
	if s.Len() != 0 {
		t.Fatalf("len after consume = %d, want 0", s.Len())
	}
}

func TestCompactIsIdempotent(t *testing.T) {
	s := New(16)
	if err := s.Refill(bytes.NewReader([]byte("abcdef")), 6); err != nil {
		t.Fatalf("refill: %v", err)
	}
	s.Consume(2)

	before := s.Len()
	s.Compact()
	if s.Len() != before {
		t.Fatalf("compact changed len: %d -> %d", before, s.Len())
	}
	if s.head != 0 {
		t.Fatalf("head after compact = %d, want 0", s.head)
	}

	// Second compact, with head already 0, must not change anything.
	s.Compact()
	if s.Len() != before || s.head != 0 {
		t.Fatalf("second compact changed state")
	}

	if got := string(s.Slice(0, s.Len())); got != "cdef" {
		t.Fatalf("slice after compact = %q, want cdef", got)
	}
}

func TestRefillShortReadErrors(t *testing.T) {
	s := New(16)
	err := s.Refill(bytes.NewReader([]byte("ab")), 5)
	if err == nil {
		t.Fatal("expected short-read error, got nil")
	}
}

func TestPeekUint32LE(t *testing.T) {
	s := New(16)
	if err := s.Refill(bytes.NewReader([]byte{0x04, 0x22, 0x4D, 0x18}), 4); err != nil {
		t.Fatalf("refill: %v", err)
	}
	if got := s.PeekUint32LE(0); got != 0x184D2204 {
		t.Fatalf("peekUint32LE = %#x, want 0x184d2204", got)
	}
	// Peek must not consume.
	if s.Len() != 4 {
		t.Fatalf("len after peek = %d, want 4", s.Len())
	}
}

func TestPopByteEmpty(t *testing.T) {
	s := New(16)
	if _, ok := s.PopByte(); ok {
		t.Fatal("popByte on empty stage returned ok=true")
	}
}
