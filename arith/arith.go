// Package arith implements the pure arithmetic/flag evaluator (spec.md
// §4.3): addition and subtraction on immediates, each producing a
// signed-word result plus the six status flags, computed with exact
// two's-complement semantics against the operand and result MSBs rather
// than the reference implementation's known-buggy nibble-swap shortcut
// (spec.md §9's REDESIGN FLAGS note — this package always computes the
// corrected behavior, never the transcription bug).
package arith

import (
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
)

// Result is the tagged signed-word value plus five of the six status
// flags an arithmetic operation produces (spec.md §4.3). Parity is
// deliberately absent here: spec.md assigns it to the flag-register
// update step, not the evaluator ("Parity is computed by the flag-
// register update, not the evaluator"), so ApplyTo is the only place
// parity gets computed, from Value's low byte. Result never carries the
// prior flag state: every field here is a fresh computation.
type Result struct {
	Value          operand.Value
	Carry          bool
	AuxiliaryCarry bool
	Overflow       bool
	Zero           bool
	Sign           bool
}

// Add computes lhs + rhs as a signed 16-bit addition, extending byte
// operands to signed 16 bits first (spec.md §4.3). Pure: no state is read
// or mutated.
func Add(lhs, rhs operand.Value) Result {
	a, b := uint16(lhs.Word()), uint16(rhs.Word())
	sum := a + b // wraps modulo 2^16, matching machine arithmetic
	result := int16(sum)

	carry := uint32(a)+uint32(b) > 0xffff
	auxCarry := nibble(a)+nibble(b) > 0xf
	overflow := msb(a) == msb(b) && msb(uint16(result)) != msb(a)

	return newResult(result, carry, auxCarry, overflow)
}

// Sub computes lhs - rhs as a signed 16-bit subtraction (spec.md §4.3).
func Sub(lhs, rhs operand.Value) Result {
	a, b := uint16(lhs.Word()), uint16(rhs.Word())
	diff := a - b // wraps modulo 2^16
	result := int16(diff)

	borrow := a < b                 // true iff the subtraction borrowed from bit 15
	auxBorrow := nibble(a) < nibble(b) // borrow at the nibble boundary (bit 3)
	overflow := msb(a) != msb(b) && msb(uint16(result)) != msb(a)

	return newResult(result, borrow, auxBorrow, overflow)
}

func newResult(result int16, carry, auxCarry, overflow bool) Result {
	return Result{
		Value:          operand.WordValue(result),
		Carry:          carry,
		AuxiliaryCarry: auxCarry,
		Overflow:       overflow,
		Zero:           result == 0,
		Sign:           result < 0,
	}
}

func nibble(v uint16) uint16 { return v & 0xf }
func msb(v uint16) bool      { return v&0x8000 != 0 }

// ApplyTo writes r's five flags plus the parity computed from r.Value's
// low byte into f, the way the executor does after
// every ADD/SUB/CMP (spec.md §3 invariant (c): all six are recomputed,
// never merged with the prior state).
func (r Result) ApplyTo(f *machine.Flags) {
	f.UpdateArithmetic(r.Value.Word(), r.Carry, r.AuxiliaryCarry, r.Overflow)
}
