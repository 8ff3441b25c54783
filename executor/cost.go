package executor

import (
	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
)

// eaCost is the effective-address cost table (spec.md §4.6).
func eaCost(addr operand.EffectiveAddress) int {
	switch addr.Kind {
	case operand.Direct:
		return 6
	case operand.RegisterIndirect:
		return 5
	case operand.RegisterDisp8, operand.RegisterDisp16:
		return 9
	case operand.RegisterSumIndirect:
		if isCheapPair(addr.R1, addr.R2) {
			return 7
		}
		return 8
	case operand.RegisterSumDisp8, operand.RegisterSumDisp16:
		if isCheapPair(addr.R1, addr.R2) {
			return 11
		}
		return 12
	default:
		return 0
	}
}

// isCheapPair reports whether the register-sum pair is BX+SI or BP+DI,
// the two forms spec.md §4.6 charges less for.
func isCheapPair(r1, r2 machine.Reg) bool {
	has := func(a, b machine.Reg) bool {
		return (r1 == a && r2 == b) || (r1 == b && r2 == a)
	}
	return has(machine.BX, machine.SI) || has(machine.BP, machine.DI)
}

// memoryOperand returns the Memory-kind operand between dst/src, if any.
// The 8086 encodings this engine decodes never have both sides in
// memory, so there is at most one.
func memoryOperand(inst decoder.Instruction) (operand.Operand, bool) {
	if inst.Dst.Kind == operand.Memory {
		return inst.Dst, true
	}
	if inst.Src.Kind == operand.Memory {
		return inst.Src, true
	}
	return operand.Operand{}, false
}

func isAccumulator(o operand.Operand) bool {
	return o.Kind == operand.AccumulatorByte || o.Kind == operand.AccumulatorWord
}

// baseCost computes the instruction's cycle cost excluding the unaligned-
// word penalty, which Execute adds once it knows whether the memory
// access actually landed on an odd address (spec.md §4.6).
func baseCost(inst decoder.Instruction) int {
	mem, hasMem := memoryOperand(inst)

	switch inst.Op {
	case decoder.MOV:
		switch {
		case isAccumulator(inst.Dst) && hasMem, isAccumulator(inst.Src) && hasMem:
			return 10 // fixed-form accumulator<->direct-memory MOV
		case inst.Src.Kind == operand.Immediate && hasMem:
			return 10 + eaCost(mem.Addr)
		case inst.Src.Kind == operand.Immediate:
			return 4
		case inst.Dst.Kind == operand.Memory:
			return 9 + eaCost(mem.Addr) // reg -> mem
		case inst.Src.Kind == operand.Memory:
			return 8 + eaCost(mem.Addr) // mem -> reg
		default:
			return 2 // reg <-> reg (or seg-reg)
		}

	case decoder.ADD, decoder.SUB:
		switch {
		case isAccumulator(inst.Dst) && inst.Src.Kind == operand.Immediate:
			return 4
		case inst.Src.Kind == operand.Immediate && hasMem:
			return 17 + eaCost(mem.Addr)
		case inst.Src.Kind == operand.Immediate:
			return 4
		case inst.Dst.Kind == operand.Memory:
			return 16 + eaCost(mem.Addr) // destination in memory
		case inst.Src.Kind == operand.Memory:
			return 9 + eaCost(mem.Addr) // source in memory
		default:
			return 3
		}

	case decoder.CMP:
		switch {
		case isAccumulator(inst.Dst) && inst.Src.Kind == operand.Immediate:
			return 4
		case inst.Src.Kind == operand.Immediate && hasMem:
			return 10 + eaCost(mem.Addr)
		case inst.Src.Kind == operand.Immediate:
			return 4
		case hasMem:
			return 9 + eaCost(mem.Addr)
		default:
			return 3
		}

	case decoder.JUMP:
		return 16

	default:
		return 0
	}
}
