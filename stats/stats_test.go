package stats

import (
	"strings"
	"testing"
)

func TestRecordInstructionAccumulates(t *testing.T) {
	r := New()
	r.RecordInstruction("mov", 3)
	r.RecordInstruction("mov", 3)
	r.RecordInstruction("add", 4)

	if r.TotalInstructions != 3 {
		t.Errorf("TotalInstructions = %d, want 3", r.TotalInstructions)
	}
	if r.TotalCycles != 10 {
		t.Errorf("TotalCycles = %d, want 10", r.TotalCycles)
	}
	if r.InstructionCounts["mov"] != 2 {
		t.Errorf("InstructionCounts[mov] = %d, want 2", r.InstructionCounts["mov"])
	}
	if r.InstructionCycles["mov"] != 6 {
		t.Errorf("InstructionCycles[mov] = %d, want 6", r.InstructionCycles["mov"])
	}
}

func TestRecordBranch(t *testing.T) {
	r := New()
	r.RecordBranch(true)
	r.RecordBranch(false)
	r.RecordBranch(true)

	if r.BranchCount != 3 {
		t.Errorf("BranchCount = %d, want 3", r.BranchCount)
	}
	if r.BranchTakenCount != 2 {
		t.Errorf("BranchTakenCount = %d, want 2", r.BranchTakenCount)
	}
}

func TestRecordMemoryAccess(t *testing.T) {
	r := New()
	r.RecordMemoryRead()
	r.RecordMemoryRead()
	r.RecordMemoryWrite()

	if r.MemoryReads != 2 {
		t.Errorf("MemoryReads = %d, want 2", r.MemoryReads)
	}
	if r.MemoryWrites != 1 {
		t.Errorf("MemoryWrites = %d, want 1", r.MemoryWrites)
	}
}

func TestStartResetsCounters(t *testing.T) {
	r := New()
	r.RecordInstruction("mov", 3)
	r.Start()

	if r.TotalInstructions != 0 {
		t.Errorf("TotalInstructions after Start = %d, want 0", r.TotalInstructions)
	}
	if len(r.InstructionCounts) != 0 {
		t.Errorf("InstructionCounts after Start has %d entries, want 0", len(r.InstructionCounts))
	}
}

func TestStopSetsExecutionTime(t *testing.T) {
	r := New()
	r.Start()
	r.Stop()
	if r.ExecutionTime < 0 {
		t.Errorf("ExecutionTime = %v, want non-negative", r.ExecutionTime)
	}
}

func TestStringSortsByDescendingCount(t *testing.T) {
	r := New()
	r.RecordInstruction("add", 4)
	r.RecordInstruction("mov", 3)
	r.RecordInstruction("mov", 3)

	out := r.String()
	movIdx := strings.Index(out, "mov")
	addIdx := strings.Index(out, "add")
	if movIdx == -1 || addIdx == -1 {
		t.Fatalf("String() missing a mnemonic:\n%s", out)
	}
	if movIdx > addIdx {
		t.Errorf("mov (count 2) should be listed before add (count 1):\n%s", out)
	}
}

func TestStringOmitsBranchLineWhenNoBranches(t *testing.T) {
	r := New()
	r.RecordInstruction("mov", 3)
	if strings.Contains(r.String(), "branches:") {
		t.Error("String() should omit the branch line when BranchCount is 0")
	}
}
