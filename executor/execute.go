// Package executor applies a decoded instruction to machine state
// (spec.md §4.6): MOV/ADD/SUB/CMP operand transfer and flag updates, the
// twenty conditional-jump/loop predicate evaluations (seeking the
// stream's position, which doubles as the instruction pointer), and the
// cycle-cost estimate.
package executor

import (
	"fmt"

	"github.com/go8086/disasm86/arith"
	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/stream"
)

// Result carries Execute's cycle count plus the branch-taken indicator,
// the two facts package stats needs for its per-run report.
type Result struct {
	Cycles uint64
	Branch bool // only meaningful when the instruction was a jump/loop
	Taken  bool
}

// Execute applies inst to st, seeking s for a taken jump, and returns the
// instruction's cycle cost (spec.md §4.6).
func Execute(inst decoder.Instruction, s stream.Stream, st *machine.State) (Result, error) {
	if inst.Op == decoder.JUMP {
		return executeJump(inst, s, st)
	}

	srcVal, srcPenalty, err := inst.Src.ReadAsImmediate(inst.Wide, st)
	if err != nil {
		return Result{}, fmt.Errorf("executor: read source operand: %w", err)
	}

	var writePenalty bool

	switch inst.Op {
	case decoder.MOV:
		writePenalty, err = inst.Dst.Write(srcVal, inst.Wide, st)
		if err != nil {
			return Result{}, fmt.Errorf("executor: write mov destination: %w", err)
		}

	case decoder.ADD, decoder.SUB:
		dstVal, dstPenalty, err := inst.Dst.ReadAsImmediate(inst.Wide, st)
		if err != nil {
			return Result{}, fmt.Errorf("executor: read destination operand: %w", err)
		}
		var r arith.Result
		if inst.Op == decoder.ADD {
			r = arith.Add(dstVal, srcVal)
		} else {
			r = arith.Sub(dstVal, srcVal)
		}
		r.ApplyTo(st.Flags)
		writePenalty, err = inst.Dst.Write(r.Value, inst.Wide, st)
		if err != nil {
			return Result{}, fmt.Errorf("executor: write %s result: %w", inst.Op, err)
		}
		srcPenalty = srcPenalty || dstPenalty

	case decoder.CMP:
		dstVal, dstPenalty, err := inst.Dst.ReadAsImmediate(inst.Wide, st)
		if err != nil {
			return Result{}, fmt.Errorf("executor: read destination operand: %w", err)
		}
		arith.Sub(dstVal, srcVal).ApplyTo(st.Flags)
		srcPenalty = srcPenalty || dstPenalty

	default:
		return Result{}, fmt.Errorf("executor: unsupported op %v", inst.Op)
	}

	cycles := baseCost(inst)
	if srcPenalty || writePenalty {
		cycles += 4
	}
	return Result{Cycles: uint64(cycles)}, nil
}

// executeJump evaluates one of the twenty conditional-jump/loop variants
// and, if taken, seeks s by the instruction's signed 8-bit displacement
// relative to the byte following the jump (spec.md §4.6). The three LOOP
// forms decrement CX unconditionally; JCXZ tests CX without touching it.
func executeJump(inst decoder.Instruction, s stream.Stream, st *machine.State) (Result, error) {
	taken := false

	switch {
	case inst.Jump == decoder.JCXZ:
		taken = st.Registers.ReadWord(machine.CX) == 0

	case inst.Jump.IsLoop():
		cx := st.Registers.ReadWord(machine.CX) - 1
		st.Registers.WriteWord(machine.CX, cx)
		switch inst.Jump {
		case decoder.LOOP:
			taken = cx != 0
		case decoder.LOOPZ:
			taken = cx != 0 && st.Flags.Zero
		case decoder.LOOPNZ:
			taken = cx != 0 && !st.Flags.Zero
		}

	default:
		taken = predicate(inst.Jump, st.Flags)
	}

	if taken {
		if err := s.Seek(int(inst.Displacement)); err != nil {
			return Result{}, fmt.Errorf("executor: jump %s: %w", inst.Jump, err)
		}
	}

	return Result{Cycles: uint64(baseCost(inst)), Branch: true, Taken: taken}, nil
}
