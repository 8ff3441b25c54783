// Package decoder implements the bitwise opcode decoder (spec.md §4.5):
// it classifies the next byte of a stream.Stream by bit-pattern matching,
// consumes however many further bytes the matched form needs, and
// returns a tagged Instruction. Instruction boundaries are discovered
// only during decoding — several opcodes share prefix bits and are
// disambiguated only by the following MOD/REG/RM byte's REG subfield
// (the "group 1" arithmetic family).
package decoder

import "github.com/go8086/disasm86/operand"

// Op tags which of the four non-jump instruction kinds (spec.md §3), or
// JUMP for the jump family, an Instruction is.
type Op int

const (
	MOV Op = iota
	ADD
	SUB
	CMP
	JUMP
)

func (o Op) String() string {
	switch o {
	case MOV:
		return "mov"
	case ADD:
		return "add"
	case SUB:
		return "sub"
	case CMP:
		return "cmp"
	case JUMP:
		return "jump"
	default:
		return "?"
	}
}

// Instruction is the decoded-instruction variant from spec.md §3: MOV,
// ADD, SUB, and CMP carry Dst/Src operands plus a wide bit; JUMP carries
// only its kind and an 8-bit signed displacement. The "captured mode" the
// spec mentions is implicit in Dst/Src: a Memory operand already holds
// its resolved EffectiveAddress form.
type Instruction struct {
	Op   Op
	Dst  operand.Operand
	Src  operand.Operand
	Wide bool

	Jump         JumpKind
	Displacement int8
}
