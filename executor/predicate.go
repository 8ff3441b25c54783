package executor

import (
	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/machine"
)

// predicate evaluates a conditional-jump mnemonic's taken/not-taken
// condition against the current flags (spec.md §4.6's predicate table).
// LOOP/LOOPZ/LOOPNZ/JCXZ are handled separately in Execute since they
// also read/mutate CX.
func predicate(k decoder.JumpKind, f *machine.Flags) bool {
	switch k {
	case decoder.JE:
		return f.Zero
	case decoder.JNE:
		return !f.Zero
	case decoder.JL:
		return f.Sign != f.Overflow
	case decoder.JNL:
		return f.Sign == f.Overflow
	case decoder.JLE:
		return (f.Sign != f.Overflow) || f.Zero
	case decoder.JNLE:
		return !((f.Sign != f.Overflow) || f.Zero)
	case decoder.JB:
		return f.Carry
	case decoder.JNB:
		return !f.Carry
	case decoder.JBE:
		return f.Carry || f.Zero
	case decoder.JNBE:
		return !f.Carry && !f.Zero
	case decoder.JP:
		return f.Parity
	case decoder.JNP:
		return !f.Parity
	case decoder.JO:
		return f.Overflow
	case decoder.JNO:
		return !f.Overflow
	case decoder.JS:
		return f.Sign
	case decoder.JNS:
		return !f.Sign
	default:
		return false
	}
}
