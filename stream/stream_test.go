package stream

import (
	"errors"
	"testing"

	"github.com/go8086/disasm86/machine"
)

func TestByteStreamSequentialRead(t *testing.T) {
	s := New([]byte{0x01, 0x03, 0x04})

	b, err := s.ReadByte()
	if err != nil || b != 0x01 {
		t.Errorf("ReadByte() = %d, %v, want 0x01, nil", b, err)
	}
	if s.Pos() != 1 {
		t.Errorf("Pos() = %d, want 1", s.Pos())
	}

	w, err := s.ReadWord()
	if err != nil || w != 0x0403 {
		t.Errorf("ReadWord() = %#04x, %v, want 0x0403, nil", w, err)
	}
	if s.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", s.Pos())
	}
	if !s.AtEnd() {
		t.Errorf("AtEnd() = false after consuming remaining bytes, want true")
	}
}

func TestByteStreamTruncatedErrors(t *testing.T) {
	s := New([]byte{0xff})

	if _, err := s.ReadWord(); !errors.Is(err, machine.ErrTruncatedStream) {
		t.Errorf("ReadWord() on 1-byte stream error = %v, want wrapping ErrTruncatedStream", err)
	}
}

func TestByteStreamSignedWord(t *testing.T) {
	s := New([]byte{0xff, 0xff})
	w, err := s.ReadSignedWord()
	if err != nil || w != -1 {
		t.Errorf("ReadSignedWord() = %d, %v, want -1, nil", w, err)
	}
}

func TestByteStreamSeek(t *testing.T) {
	s := New([]byte{0, 1, 2, 3, 4})
	s.pos = 2

	if err := s.Seek(2); err != nil {
		t.Errorf("Seek(2) from pos 2 unexpected error: %v", err)
	}
	if s.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", s.Pos())
	}

	if err := s.Seek(-10); !errors.Is(err, machine.ErrJumpOutOfBounds) {
		t.Errorf("Seek(-10) error = %v, want wrapping ErrJumpOutOfBounds", err)
	}

	if err := s.Seek(100); !errors.Is(err, machine.ErrJumpOutOfBounds) {
		t.Errorf("Seek(100) error = %v, want wrapping ErrJumpOutOfBounds", err)
	}
}

func TestByteStreamLenAndAtEnd(t *testing.T) {
	s := New([]byte{1, 2, 3})
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.AtEnd() {
		t.Errorf("AtEnd() = true on fresh stream, want false")
	}
	if err := s.Seek(3); err != nil {
		t.Fatalf("Seek(3): %v", err)
	}
	if !s.AtEnd() {
		t.Errorf("AtEnd() = false after seeking to Len(), want true")
	}
}
