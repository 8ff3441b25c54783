package operand

import (
	"errors"
	"testing"

	"github.com/go8086/disasm86/machine"
)

func TestEffectiveAddressResolve(t *testing.T) {
	regs := &machine.GeneralRegisters{}
	regs.WriteWord(machine.BX, 0x0010)
	regs.WriteWord(machine.SI, 0x0004)

	tests := []struct {
		name string
		addr EffectiveAddress
		want uint16
	}{
		{"indirect", Indirect(machine.BX), 0x0010},
		{"sum-indirect", SumIndirect(machine.BX, machine.SI), 0x0014},
		{"disp8", WithDisp8(machine.BX, -2), 0x000e},
		{"disp16", WithDisp16(machine.BX, 0x0100), 0x0110},
		{"sum-disp8", SumWithDisp8(machine.BX, machine.SI, 4), 0x0018},
		{"direct", DirectAddress(0x3e8), 0x3e8},
	}
	for _, tt := range tests {
		if got := tt.addr.Resolve(regs); got != tt.want {
			t.Errorf("%s: Resolve() = 0x%04x, want 0x%04x", tt.name, got, tt.want)
		}
	}
}

func TestEffectiveAddressResolveWraps(t *testing.T) {
	regs := &machine.GeneralRegisters{}
	regs.WriteWord(machine.BX, 0xffff)
	addr := WithDisp16(machine.BX, 2)
	if got := addr.Resolve(regs); got != 1 {
		t.Errorf("Resolve() = 0x%04x, want wraparound to 0x0001", got)
	}
}

func TestOperandReadWriteRegisterRoundTrip(t *testing.T) {
	st := machine.New()
	op := Register(machine.CX)

	if _, err := op.Write(WordValue(0x1234), true, st); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, penalty, err := op.ReadAsImmediate(true, st)
	if err != nil {
		t.Fatalf("ReadAsImmediate: %v", err)
	}
	if penalty {
		t.Errorf("register read reported a clock penalty")
	}
	if v.Word() != 0x1234 {
		t.Errorf("round trip = 0x%04x, want 0x1234", uint16(v.Word()))
	}
}

func TestOperandByteRegisterDoesNotTouchSibling(t *testing.T) {
	st := machine.New()
	st.Registers.WriteWord(machine.AX, 0x1234)

	op := Register(machine.AL)
	if _, err := op.Write(ByteValue(0x00), false, st); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := st.Registers.ReadByte(machine.AH); got != 0x12 {
		t.Errorf("AH = 0x%02x after writing AL, want unchanged 0x12", got)
	}
}

func TestOperandWriteWordToByteTargetFails(t *testing.T) {
	st := machine.New()
	op := Accumulator(false) // AL

	_, err := op.Write(WordValue(0x1234), false, st)
	if !errors.Is(err, machine.ErrIllegalOperand) {
		t.Errorf("Write(word, AL) error = %v, want ErrIllegalOperand", err)
	}
}

func TestOperandWriteToImmediateFails(t *testing.T) {
	st := machine.New()
	op := Imm(ByteValue(5))

	_, err := op.Write(ByteValue(9), false, st)
	if !errors.Is(err, machine.ErrIllegalOperand) {
		t.Errorf("Write to immediate operand error = %v, want ErrIllegalOperand", err)
	}
}

func TestOperandMemoryClockPenaltyOnOddAddress(t *testing.T) {
	st := machine.New()
	st.Registers.WriteWord(machine.BX, 0x0001) // odd address
	op := Mem(Indirect(machine.BX))

	_, penalty, err := op.ReadAsImmediate(true, st)
	if err != nil {
		t.Fatalf("ReadAsImmediate: %v", err)
	}
	if !penalty {
		t.Errorf("expected clock penalty reading a word at an odd address")
	}

	st.Registers.WriteWord(machine.BX, 0x0002) // even address
	_, penalty, err = op.ReadAsImmediate(true, st)
	if err != nil {
		t.Fatalf("ReadAsImmediate: %v", err)
	}
	if penalty {
		t.Errorf("did not expect clock penalty reading a word at an even address")
	}
}

func TestOperandMemoryByteAccessNeverPenalized(t *testing.T) {
	st := machine.New()
	st.Registers.WriteWord(machine.BX, 0x0001)
	op := Mem(Indirect(machine.BX))

	_, penalty, err := op.ReadAsImmediate(false, st)
	if err != nil {
		t.Fatalf("ReadAsImmediate: %v", err)
	}
	if penalty {
		t.Errorf("byte access at odd address should never carry the unaligned-word penalty")
	}
}

func TestOperandImmediateWidthMismatch(t *testing.T) {
	st := machine.New()
	op := Imm(ByteValue(5))

	if _, _, err := op.ReadAsImmediate(true, st); !errors.Is(err, machine.ErrIllegalOperand) {
		t.Errorf("reading a byte immediate as wide error = %v, want ErrIllegalOperand", err)
	}
}
