// Package stream provides the random-access byte stream the decoder and
// executor operate over (spec.md §5, §6): sequential single-byte reads,
// little-endian word reads, and relative seeking. The stream's read
// position doubles as the instruction pointer (spec.md §9) — there is no
// separate IP register.
package stream

import (
	"fmt"

	"github.com/go8086/disasm86/machine"
)

var (
	errTruncated   = machine.ErrTruncatedStream
	errOutOfBounds = machine.ErrJumpOutOfBounds
)

// Stream is a random-access byte source supporting the operations the
// decoder and executor need. The engine consumes one external
// implementation (ByteStream, below); it is expressed as an interface so
// tests can substitute fakes (truncation, bounds errors) without
// constructing byte slices for every edge case.
type Stream interface {
	// Pos returns the current read position (the "instruction pointer").
	Pos() int
	// Len returns the total number of bytes in the stream.
	Len() int
	// AtEnd reports whether Pos() == Len(): the normal, non-error
	// termination condition for simulate_all/disassemble_all (spec.md §7).
	AtEnd() bool
	// ReadByte consumes and returns the next byte.
	ReadByte() (byte, error)
	// ReadSignedByte consumes and returns the next byte as a signed 8-bit value.
	ReadSignedByte() (int8, error)
	// ReadWord consumes and returns the next two bytes as an unsigned
	// 16-bit little-endian value (the external object-file encoding;
	// spec.md §6).
	ReadWord() (uint16, error)
	// ReadSignedWord consumes and returns the next two bytes as a signed
	// 16-bit little-endian value.
	ReadSignedWord() (int16, error)
	// Seek moves the read position by a relative (possibly negative)
	// offset. It fails if the result would fall outside [0, Len()].
	Seek(relative int) error
}

// ByteStream is the engine's concrete Stream: an in-memory byte slice
// with a cursor, the shape spec.md §6 calls for ("a random-access byte
// stream supporting relative seek").
type ByteStream struct {
	data []byte
	pos  int
}

// New wraps data for sequential decode/execute access.
func New(data []byte) *ByteStream {
	return &ByteStream{data: data}
}

func (s *ByteStream) Pos() int { return s.pos }
func (s *ByteStream) Len() int { return len(s.data) }
func (s *ByteStream) AtEnd() bool {
	return s.pos >= len(s.data)
}

func (s *ByteStream) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, fmt.Errorf("read byte at offset %d: %w", s.pos, errTruncated)
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *ByteStream) ReadSignedByte() (int8, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

func (s *ByteStream) ReadWord() (uint16, error) {
	lo, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	hi, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (s *ByteStream) ReadSignedWord() (int16, error) {
	w, err := s.ReadWord()
	if err != nil {
		return 0, err
	}
	return int16(w), nil
}

func (s *ByteStream) Seek(relative int) error {
	next := s.pos + relative
	if next < 0 || next > len(s.data) {
		return fmt.Errorf("seek to offset %d (from %d, delta %d): %w", next, s.pos, relative, errOutOfBounds)
	}
	s.pos = next
	return nil
}
