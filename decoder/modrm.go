package decoder

import (
	"fmt"

	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
	"github.com/go8086/disasm86/stream"
)

// modRM holds the three fields of a MOD/REG/RM byte (spec.md §4.5).
type modRM struct {
	mod byte
	reg byte
	rm  byte
}

func readModRM(s stream.Stream) (modRM, error) {
	b, err := s.ReadByte()
	if err != nil {
		return modRM{}, err
	}
	return modRM{mod: (b >> 6) & 0x3, reg: (b >> 3) & 0x7, rm: b & 0x7}, nil
}

// rmBaseTable is the canonical 8086 R/M base-register table (spec.md
// §4.5): BX+SI, BX+DI, BP+SI, BP+DI, SI, DI, BP, BX. Entry 6 (BP) is only
// used when MOD != 00; at MOD == 00 it instead selects a direct address.
var rmBaseTable = [8]struct {
	r1, r2 machine.Reg
	sum    bool
}{
	{machine.BX, machine.SI, true},
	{machine.BX, machine.DI, true},
	{machine.BP, machine.SI, true},
	{machine.BP, machine.DI, true},
	{machine.SI, 0, false},
	{machine.DI, 0, false},
	{machine.BP, 0, false},
	{machine.BX, 0, false},
}

// effectiveAddress decodes the addressing-mode bits of a MOD/REG/RM byte
// into a structured EffectiveAddress, reading whatever displacement
// bytes the form requires (spec.md §4.5's MOD table).
func effectiveAddress(m modRM, s stream.Stream) (operand.EffectiveAddress, error) {
	base := rmBaseTable[m.rm]

	switch m.mod {
	case 0: // no displacement, except rm==110 which is a direct address
		if m.rm == 6 {
			word, err := s.ReadWord()
			if err != nil {
				return operand.EffectiveAddress{}, err
			}
			return operand.DirectAddress(word), nil
		}
		if base.sum {
			return operand.SumIndirect(base.r1, base.r2), nil
		}
		return operand.Indirect(base.r1), nil

	case 1: // 8-bit signed displacement
		disp, err := s.ReadSignedByte()
		if err != nil {
			return operand.EffectiveAddress{}, err
		}
		if base.sum {
			return operand.SumWithDisp8(base.r1, base.r2, disp), nil
		}
		return operand.WithDisp8(base.r1, disp), nil

	case 2: // 16-bit signed displacement
		disp, err := s.ReadSignedWord()
		if err != nil {
			return operand.EffectiveAddress{}, err
		}
		if base.sum {
			return operand.SumWithDisp16(base.r1, base.r2, disp), nil
		}
		return operand.WithDisp16(base.r1, disp), nil

	default:
		return operand.EffectiveAddress{}, fmt.Errorf("decoder: mod=3 has no effective address")
	}
}

// rmOperand resolves a MOD/REG/RM byte's R/M field to an Operand: a
// register when MOD selects register-direct mode, otherwise a memory
// operand over the resolved effective address.
func rmOperand(m modRM, wide bool, s stream.Stream) (operand.Operand, error) {
	if m.mod == 3 {
		return operand.Register(machine.RegisterFromField(m.rm, wide)), nil
	}
	addr, err := effectiveAddress(m, s)
	if err != nil {
		return operand.Operand{}, err
	}
	return operand.Mem(addr), nil
}
