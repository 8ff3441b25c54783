// Package engine composes the decode-execute pipeline into the two
// top-level entry points spec.md §6 specifies: Disassemble and Simulate.
// Both loop over a stream.Stream until end-of-stream, which is the
// normal, non-error termination condition (spec.md §7); any decode or
// execute error is fatal and propagates immediately, with no
// resynchronization or byte-skipping.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/go8086/disasm86/coverage"
	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/executor"
	"github.com/go8086/disasm86/format"
	"github.com/go8086/disasm86/internal/xlog"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
	"github.com/go8086/disasm86/stats"
	"github.com/go8086/disasm86/stream"
)

var traceLog = xlog.New("engine")

// ErrInstructionLimitExceeded is returned by SimulateLimited when a run
// executes more than the configured cap without reaching end of stream
// (SPEC_FULL.md §2.3's Execution.MaxInstructions, guarding against
// runaway backward-jump loops).
var ErrInstructionLimitExceeded = errors.New("engine: instruction limit exceeded")

// SetTraceOutput redirects the execution trace to w, mirroring the way the
// teacher's main.go swaps a file-backed writer into machine.ExecutionTrace
// when -trace is requested (SPEC_FULL.md §2.3's Trace.OutputFile). Passing
// nil restores the default DISASM86_DEBUG-gated logger.
func SetTraceOutput(w io.Writer) {
	if w == nil {
		traceLog = xlog.New("engine")
		return
	}
	traceLog = log.New(w, "engine: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
}

// Disassemble renders every instruction in s as a canonical listing
// (spec.md §6), preceded by the "bits 16" preamble.
func Disassemble(s stream.Stream) (string, error) {
	var lines []string
	for !s.AtEnd() {
		inst, err := decoder.Decode(s)
		if err != nil {
			return "", fmt.Errorf("engine: disassemble at offset %d: %w", s.Pos(), err)
		}
		lines = append(lines, format.Instruction(inst))
	}
	return format.Program(lines), nil
}

// SimulateResult carries everything a driver needs to report on a
// simulation run: the total cycle estimate plus the supplemented
// statistics/coverage reports (SPEC_FULL.md §4).
type SimulateResult struct {
	TotalCycles uint64
	Stats       *stats.Report
	Coverage    *coverage.Tracker
}

// Simulate executes every instruction in s against st (spec.md §6),
// returning the accumulated cycle cost. s's final read position is the
// post-simulation instruction pointer — callers needing "stream-after"
// read s.Pos() themselves, since Stream is already the caller's object.
func Simulate(s stream.Stream, st *machine.State) (SimulateResult, error) {
	return SimulateLimited(s, st, 0)
}

// SimulateLimited behaves like Simulate but stops with
// ErrInstructionLimitExceeded once maxInstructions instructions have run
// without reaching end of stream (SPEC_FULL.md §2.3's
// Execution.MaxInstructions config field). maxInstructions == 0 means
// unlimited, the same as Simulate.
func SimulateLimited(s stream.Stream, st *machine.State, maxInstructions uint64) (SimulateResult, error) {
	report := stats.New()
	report.Start()
	cov := coverage.New(0, s.Len())

	for !s.AtEnd() {
		if maxInstructions != 0 && report.TotalInstructions >= maxInstructions {
			report.Stop()
			return SimulateResult{TotalCycles: report.TotalCycles, Stats: report, Coverage: cov},
				fmt.Errorf("%w: %d instructions", ErrInstructionLimitExceeded, maxInstructions)
		}

		offset := s.Pos()
		inst, err := decoder.Decode(s)
		if err != nil {
			return SimulateResult{}, fmt.Errorf("engine: simulate at offset %d: %w", offset, err)
		}
		cov.Visit(offset)

		res, err := executor.Execute(inst, s, st)
		if err != nil {
			return SimulateResult{}, fmt.Errorf("engine: simulate at offset %d: %w", offset, err)
		}
		traceLog.Printf("offset=%d %s cycles=%d branch=%v taken=%v", offset, mnemonicOf(inst), res.Cycles, res.Branch, res.Taken)

		report.RecordInstruction(mnemonicOf(inst), res.Cycles)
		if res.Branch {
			report.RecordBranch(res.Taken)
		}
		if mem, ok := memoryOperandOf(inst); ok {
			if isWriteDestination(inst, mem) {
				report.RecordMemoryWrite()
			} else {
				report.RecordMemoryRead()
			}
		}
	}

	report.Stop()
	return SimulateResult{TotalCycles: report.TotalCycles, Stats: report, Coverage: cov}, nil
}

func mnemonicOf(inst decoder.Instruction) string {
	if inst.Op == decoder.JUMP {
		return inst.Jump.String()
	}
	return inst.Op.String()
}

func memoryOperandOf(inst decoder.Instruction) (operand.Operand, bool) {
	if inst.Dst.Kind == operand.Memory {
		return inst.Dst, true
	}
	if inst.Src.Kind == operand.Memory {
		return inst.Src, true
	}
	return operand.Operand{}, false
}

// isWriteDestination reports whether mem is being written rather than
// merely read: true for MOV/ADD/SUB when the memory operand is the
// destination, always false for CMP (read-only by definition).
func isWriteDestination(inst decoder.Instruction, mem operand.Operand) bool {
	if inst.Op == decoder.CMP {
		return false
	}
	return inst.Dst.Kind == operand.Memory
}
