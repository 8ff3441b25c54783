// Package stats accumulates execution statistics during engine.Simulate
// (SPEC_FULL.md §4): per-mnemonic instruction counts, total cycles, and
// branch taken/not-taken counts. Adapted from the teacher's
// vm/statistics.go, trimmed to the instruction set this engine supports
// (no call/return, so no function/hot-path tracking).
package stats

import (
	"fmt"
	"sort"
	"time"
)

// Report accumulates statistics for one simulation run.
type Report struct {
	TotalInstructions uint64
	TotalCycles       uint64
	ExecutionTime     time.Duration

	InstructionCounts map[string]uint64 // mnemonic -> count
	InstructionCycles map[string]uint64 // mnemonic -> cycles

	BranchCount      uint64
	BranchTakenCount uint64

	MemoryReads  uint64
	MemoryWrites uint64

	startTime time.Time
}

// New creates an empty report, ready for Start.
func New() *Report {
	return &Report{
		InstructionCounts: make(map[string]uint64),
		InstructionCycles: make(map[string]uint64),
	}
}

// Start resets counters and begins timing.
func (r *Report) Start() {
	*r = Report{
		InstructionCounts: make(map[string]uint64),
		InstructionCycles: make(map[string]uint64),
		startTime:         time.Now(),
	}
}

// RecordInstruction records one decoded/executed instruction.
func (r *Report) RecordInstruction(mnemonic string, cycles uint64) {
	r.TotalInstructions++
	r.TotalCycles += cycles
	r.InstructionCounts[mnemonic]++
	r.InstructionCycles[mnemonic] += cycles
}

// RecordBranch records a conditional jump or loop evaluation.
func (r *Report) RecordBranch(taken bool) {
	r.BranchCount++
	if taken {
		r.BranchTakenCount++
	}
}

// RecordMemoryRead/RecordMemoryWrite record one memory-operand access.
func (r *Report) RecordMemoryRead()  { r.MemoryReads++ }
func (r *Report) RecordMemoryWrite() { r.MemoryWrites++ }

// Stop finalizes ExecutionTime.
func (r *Report) Stop() {
	r.ExecutionTime = time.Since(r.startTime)
}

// String renders a human-readable summary, sorted by descending count,
// the way the teacher's text-format statistics report does.
func (r *Report) String() string {
	type row struct {
		mnemonic string
		count    uint64
		cycles   uint64
	}
	rows := make([]row, 0, len(r.InstructionCounts))
	for m, c := range r.InstructionCounts {
		rows = append(rows, row{m, c, r.InstructionCycles[m]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].mnemonic < rows[j].mnemonic
	})

	out := fmt.Sprintf("instructions: %d   cycles: %d   time: %s\n",
		r.TotalInstructions, r.TotalCycles, r.ExecutionTime)
	if r.BranchCount > 0 {
		out += fmt.Sprintf("branches: %d taken: %d (%.1f%%)\n",
			r.BranchCount, r.BranchTakenCount,
			100*float64(r.BranchTakenCount)/float64(r.BranchCount))
	}
	out += fmt.Sprintf("memory reads: %d  writes: %d\n", r.MemoryReads, r.MemoryWrites)
	for _, row := range rows {
		out += fmt.Sprintf("  %-6s %8d  %10d cycles\n", row.mnemonic, row.count, row.cycles)
	}
	return out
}
