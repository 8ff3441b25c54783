// Package operand implements the effective-address and operand model
// (spec.md §3, §4.2, §4.4): a pure tagged address expression resolved
// against machine state, and a tagged operand value supporting
// read-as-immediate / write against that state. Both types stay free of
// any reference to the decoder or executor, breaking the natural
// decoder/operand/state cycle the spec calls out in §9's "Cyclic
// couplings" note: operands reference state only through the State
// argument threaded into each call, never by holding a pointer.
package operand

import (
	"fmt"

	"github.com/go8086/disasm86/machine"
)

// AddressKind tags which of the seven effective-address forms (spec.md
// §3) an EffectiveAddress holds.
type AddressKind int

const (
	// RegisterIndirect: [R].
	RegisterIndirect AddressKind = iota
	// RegisterSumIndirect: [R1+R2].
	RegisterSumIndirect
	// RegisterDisp8: [R+disp8].
	RegisterDisp8
	// RegisterDisp16: [R+disp16].
	RegisterDisp16
	// RegisterSumDisp8: [R1+R2+disp8].
	RegisterSumDisp8
	// RegisterSumDisp16: [R1+R2+disp16].
	RegisterSumDisp16
	// Direct: [disp16], a bare 16-bit address with no register component.
	Direct
)

// EffectiveAddress is the tagged union from spec.md §3. Only the fields
// relevant to Kind are meaningful; the zero value of the others is
// ignored.
type EffectiveAddress struct {
	Kind AddressKind
	R1   machine.Reg
	R2   machine.Reg
	Disp int16
	Word uint16 // Direct's bare address
}

// Indirect builds a register-indirect effective address: [R].
func Indirect(r machine.Reg) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterIndirect, R1: r}
}

// SumIndirect builds a register-sum-indirect address: [R1+R2].
func SumIndirect(r1, r2 machine.Reg) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterSumIndirect, R1: r1, R2: r2}
}

// WithDisp8 builds [R+disp8].
func WithDisp8(r machine.Reg, disp int8) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterDisp8, R1: r, Disp: int16(disp)}
}

// WithDisp16 builds [R+disp16].
func WithDisp16(r machine.Reg, disp int16) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterDisp16, R1: r, Disp: disp}
}

// SumWithDisp8 builds [R1+R2+disp8].
func SumWithDisp8(r1, r2 machine.Reg, disp int8) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterSumDisp8, R1: r1, R2: r2, Disp: int16(disp)}
}

// SumWithDisp16 builds [R1+R2+disp16].
func SumWithDisp16(r1, r2 machine.Reg, disp int16) EffectiveAddress {
	return EffectiveAddress{Kind: RegisterSumDisp16, R1: r1, R2: r2, Disp: disp}
}

// DirectAddress builds the bare-address form: [disp16].
func DirectAddress(word uint16) EffectiveAddress {
	return EffectiveAddress{Kind: Direct, Word: word}
}

// Resolve computes the 16-bit linear address (spec.md §4.2): sums the
// base register(s), read as signed 16-bit values, with the sign-extended
// displacement, modulo 2^16. It is a pure function of register state —
// no memory access, no side effects. BP as a base receives no special
// default-segment treatment (spec.md §3 invariant (e)).
func (e EffectiveAddress) Resolve(regs *machine.GeneralRegisters) uint16 {
	switch e.Kind {
	case RegisterIndirect:
		return regs.ReadWord(e.R1)
	case RegisterSumIndirect:
		return regs.ReadWord(e.R1) + regs.ReadWord(e.R2)
	case RegisterDisp8, RegisterDisp16:
		return regs.ReadWord(e.R1) + uint16(e.Disp)
	case RegisterSumDisp8, RegisterSumDisp16:
		return regs.ReadWord(e.R1) + regs.ReadWord(e.R2) + uint16(e.Disp)
	case Direct:
		return e.Word
	default:
		panic(fmt.Sprintf("operand: unreachable effective-address kind %d", e.Kind))
	}
}

// String renders the address expression in assembler-listing base+index
// syntax (spec.md §4.7); package format uses this as its memory-operand
// rendering.
func (e EffectiveAddress) String() string {
	switch e.Kind {
	case RegisterIndirect:
		return fmt.Sprintf("[%s]", e.R1)
	case RegisterSumIndirect:
		return fmt.Sprintf("[%s + %s]", e.R1, e.R2)
	case RegisterDisp8, RegisterDisp16:
		return fmt.Sprintf("[%s %s]", e.R1, signedDisp(e.Disp))
	case RegisterSumDisp8, RegisterSumDisp16:
		return fmt.Sprintf("[%s + %s %s]", e.R1, e.R2, signedDisp(e.Disp))
	case Direct:
		return fmt.Sprintf("[0x%x]", e.Word)
	default:
		return "[?]"
	}
}

func signedDisp(d int16) string {
	if d < 0 {
		return fmt.Sprintf("- %d", -int32(d))
	}
	return fmt.Sprintf("+ %d", d)
}
