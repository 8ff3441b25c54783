package format

import (
	"testing"

	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
)

func TestInstructionRegToReg(t *testing.T) {
	inst := decoder.Instruction{
		Op: decoder.MOV, Wide: true,
		Dst: operand.Register(machine.CX),
		Src: operand.Register(machine.BX),
	}
	got := Instruction(inst)
	want := "mov cx, bx"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestInstructionMemoryOperand(t *testing.T) {
	inst := decoder.Instruction{
		Op: decoder.MOV, Wide: true,
		Dst: operand.Register(machine.AX),
		Src: operand.Mem(operand.WithDisp8(machine.BP, -2)),
	}
	got := Instruction(inst)
	want := "mov ax, [bp - 2]"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestInstructionImmediateToMemoryQualifier(t *testing.T) {
	inst := decoder.Instruction{
		Op: decoder.MOV, Wide: true,
		Dst: operand.Mem(operand.WithDisp8(machine.BP, 2)),
		Src: operand.Imm(operand.WordValue(7)),
	}
	got := Instruction(inst)
	want := "mov [bp + 2], word 7"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestInstructionImmediateToRegisterNoQualifier(t *testing.T) {
	inst := decoder.Instruction{
		Op: decoder.MOV, Wide: true,
		Dst: operand.Register(machine.CX),
		Src: operand.Imm(operand.WordValue(3)),
	}
	got := Instruction(inst)
	want := "mov cx, 3"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestInstructionJumpDisplacement(t *testing.T) {
	inst := decoder.Instruction{Op: decoder.JUMP, Jump: decoder.LOOP, Displacement: -4}
	got := Instruction(inst)
	want := "loop $-2"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestInstructionDirectAddress(t *testing.T) {
	inst := decoder.Instruction{
		Op: decoder.MOV, Wide: true,
		Dst: operand.Accumulator(true),
		Src: operand.Mem(operand.DirectAddress(0x3e8)),
	}
	got := Instruction(inst)
	want := "mov ax, [0x3e8]"
	if got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}

func TestProgramPreamble(t *testing.T) {
	got := Program([]string{"mov cx, 3", "mov bx, 1000"})
	want := "bits 16\n\nmov cx, 3\nmov bx, 1000\n"
	if got != want {
		t.Errorf("Program() = %q, want %q", got, want)
	}
}
