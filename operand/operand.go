package operand

import (
	"fmt"

	"github.com/go8086/disasm86/machine"
)

// Kind tags which of the six operand variants (spec.md §3) an Operand holds.
type Kind int

const (
	AccumulatorByte Kind = iota // AL, implicit in opcodes that hardcode it
	AccumulatorWord             // AX
	GeneralRegister             // any of AX..DI or AL..BH
	SegmentRegister             // ES/CS/SS/DS
	Memory                      // an EffectiveAddress
	Immediate                   // a literal signed-byte/word read from the stream
)

// Operand is the tagged union from spec.md §3. Only the field matching
// Kind is meaningful.
type Operand struct {
	Kind Kind
	Reg  machine.Reg
	Seg  machine.SegReg
	Addr EffectiveAddress
	Imm  Value
}

// Accumulator builds the implicit-AL or implicit-AX operand used by the
// ADD/SUB/CMP immediate-to-accumulator forms and the MOV
// accumulator<->direct-memory forms.
func Accumulator(wide bool) Operand {
	if wide {
		return Operand{Kind: AccumulatorWord}
	}
	return Operand{Kind: AccumulatorByte}
}

// Register builds a general-register operand.
func Register(r machine.Reg) Operand {
	return Operand{Kind: GeneralRegister, Reg: r}
}

// Segment builds a segment-register operand.
func Segment(s machine.SegReg) Operand {
	return Operand{Kind: SegmentRegister, Seg: s}
}

// Mem builds a memory-at-effective-address operand.
func Mem(addr EffectiveAddress) Operand {
	return Operand{Kind: Memory, Addr: addr}
}

// Imm builds an immediate operand from an already-tagged Value.
func Imm(v Value) Operand {
	return Operand{Kind: Immediate, Imm: v}
}

// IsWide reports the operand's own width, independent of any external W
// bit: for registers and the accumulator that's carried by the variant
// itself; for Immediate it is the value's own width tag. For Memory it
// isn't known until combined with the instruction's wide flag, so this
// returns false there (callers must not rely on it for Memory).
func (o Operand) IsWide() bool {
	switch o.Kind {
	case AccumulatorWord:
		return true
	case AccumulatorByte:
		return false
	case GeneralRegister:
		return o.Reg.IsWide()
	case SegmentRegister:
		return true
	case Immediate:
		return o.Imm.Wide
	default:
		return false
	}
}

// ReadAsImmediate returns the operand's current value as a Value, tagged
// by width, plus the clock-penalty indicator (spec.md §4.4): true iff this
// is a word-sized memory access to an odd address. wide selects the
// access width for Memory and validates Immediate; it is ignored for
// operand kinds whose width is self-describing (the accumulator and
// general-register variants).
func (o Operand) ReadAsImmediate(wide bool, st *machine.State) (Value, bool, error) {
	switch o.Kind {
	case AccumulatorByte:
		return ByteValue(int8(st.Registers.ReadByte(machine.AL))), false, nil
	case AccumulatorWord:
		return WordValue(int16(st.Registers.ReadWord(machine.AX))), false, nil
	case GeneralRegister:
		if o.Reg.IsWide() {
			return WordValue(int16(st.Registers.ReadWord(o.Reg))), false, nil
		}
		return ByteValue(int8(st.Registers.ReadByte(o.Reg))), false, nil
	case SegmentRegister:
		return WordValue(int16(st.Segments.ReadWord(o.Seg))), false, nil
	case Memory:
		addr := o.Addr.Resolve(st.Registers)
		if wide {
			penalty := addr%2 != 0
			return WordValue(int16(st.Memory.ReadWord(addr))), penalty, nil
		}
		return ByteValue(int8(st.Memory.ReadByte(addr))), false, nil
	case Immediate:
		if o.Imm.Wide != wide {
			return Value{}, false, fmt.Errorf("read immediate operand as wide=%v, tagged wide=%v: %w", wide, o.Imm.Wide, machine.ErrIllegalOperand)
		}
		return o.Imm, false, nil
	default:
		return Value{}, false, fmt.Errorf("read unknown operand kind %d: %w", o.Kind, machine.ErrIllegalOperand)
	}
}

// Write stores value into the operand (spec.md §4.4). Writing to an
// Immediate operand is always an error; writing a word value to a
// byte-wide target is always an error, which subsumes the "word to AL"
// case spec.md calls out explicitly. A byte value written to the wide
// accumulator writes AL and leaves AH untouched. It also returns the
// clock-penalty indicator for a word write to an odd memory address.
func (o Operand) Write(value Value, wide bool, st *machine.State) (bool, error) {
	if o.Kind == Immediate {
		return false, fmt.Errorf("write to immediate operand: %w", machine.ErrIllegalOperand)
	}
	if value.Wide && (!wide || o.Kind == AccumulatorByte || (o.Kind == GeneralRegister && !o.Reg.IsWide())) {
		return false, fmt.Errorf("write word value to byte-wide operand: %w", machine.ErrIllegalOperand)
	}

	switch o.Kind {
	case AccumulatorByte:
		st.Registers.WriteByte(machine.AL, byte(value.Byte()))
		return false, nil
	case AccumulatorWord:
		if !value.Wide {
			st.Registers.WriteByte(machine.AL, byte(value.Byte()))
			return false, nil
		}
		st.Registers.WriteWord(machine.AX, uint16(value.Word()))
		return false, nil
	case GeneralRegister:
		if o.Reg.IsWide() {
			st.Registers.WriteWord(o.Reg, uint16(value.Word()))
		} else {
			st.Registers.WriteByte(o.Reg, byte(value.Byte()))
		}
		return false, nil
	case SegmentRegister:
		st.Segments.WriteWord(o.Seg, uint16(value.Word()))
		return false, nil
	case Memory:
		addr := o.Addr.Resolve(st.Registers)
		if wide {
			st.Memory.WriteWord(addr, uint16(value.Word()))
			return addr%2 != 0, nil
		}
		st.Memory.WriteByte(addr, byte(value.Byte()))
		return false, nil
	default:
		return false, fmt.Errorf("write to unknown operand kind %d: %w", o.Kind, machine.ErrIllegalOperand)
	}
}

// String renders the operand the way package format's listing line does
// for register/memory operands; immediates render as their bare decimal
// value (the byte/word qualifier is the formatter's job, since it depends
// on the destination operand too — spec.md §4.7).
func (o Operand) String() string {
	switch o.Kind {
	case AccumulatorByte:
		return "al"
	case AccumulatorWord:
		return "ax"
	case GeneralRegister:
		return o.Reg.String()
	case SegmentRegister:
		return o.Seg.String()
	case Memory:
		return o.Addr.String()
	case Immediate:
		return fmt.Sprintf("%d", o.Imm.Word())
	default:
		return "?"
	}
}
