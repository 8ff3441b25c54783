package decoder

import (
	"fmt"

	"github.com/go8086/disasm86/bitmatch"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
	"github.com/go8086/disasm86/stream"
)

// Opcode bit-pattern templates from spec.md §4.5's table, written with
// literal 0/1/Any so each line reads like the 8086 manual's own bit
// diagrams.
var (
	patMovRegMemToFromReg = bitmatch.P(1, 0, 0, 0, 1, 0, bitmatch.Any, bitmatch.Any) // 100010dw
	patMovSegReg          = bitmatch.P(1, 0, 0, 0, 1, 1, bitmatch.Any, 0)            // 100011d0
	patMovImmToRegMem     = bitmatch.P(1, 1, 0, 0, 0, 1, 1, bitmatch.Any)            // 1100011w
	patMovImmToReg        = bitmatch.P(1, 0, 1, 1, bitmatch.Any, bitmatch.Any, bitmatch.Any, bitmatch.Any)
	patMovMemToAccum      = bitmatch.P(1, 0, 1, 0, 0, 0, 0, bitmatch.Any) // 1010000w
	patMovAccumToMem      = bitmatch.P(1, 0, 1, 0, 0, 0, 1, bitmatch.Any) // 1010001w

	patAddRegMemToFromReg = bitmatch.P(0, 0, 0, 0, 0, 0, bitmatch.Any, bitmatch.Any) // 000000dw
	patAddImmToAccum      = bitmatch.P(0, 0, 0, 0, 0, 1, 0, bitmatch.Any)            // 0000010w

	patSubRegMemToFromReg = bitmatch.P(0, 0, 1, 0, 1, 0, bitmatch.Any, bitmatch.Any) // 001010dw
	patSubImmToAccum      = bitmatch.P(0, 0, 1, 0, 1, 1, 0, bitmatch.Any)            // 0010110w

	patCmpRegMemToFromReg = bitmatch.P(0, 0, 1, 1, 1, 0, bitmatch.Any, bitmatch.Any) // 001110dw
	patCmpImmToAccum      = bitmatch.P(0, 0, 1, 1, 1, 1, 0, bitmatch.Any)            // 0011110w

	patGroup1ImmToRegMem = bitmatch.P(1, 0, 0, 0, 0, 0, bitmatch.Any, bitmatch.Any) // 100000sw

	patJump = bitmatch.P(0, 1, 1, 1, bitmatch.Any, bitmatch.Any, bitmatch.Any, bitmatch.Any) // 0111xxxx
	patLoop = bitmatch.P(1, 1, 1, 0, 0, 0, bitmatch.Any, bitmatch.Any)                       // 111000xx
)

// Decode reads the next instruction from s (spec.md §4.5), consuming
// between 1 and 6 bytes. It fails with machine.ErrInvalidOpcode if no
// pattern matches, or a wrapped machine.ErrTruncatedStream if a read hits
// end-of-stream mid-instruction.
func Decode(s stream.Stream) (Instruction, error) {
	opcode, err := s.ReadByte()
	if err != nil {
		return Instruction{}, err
	}

	switch {
	case bitmatch.Match(opcode, patMovRegMemToFromReg):
		return decodeRegMemToFromReg(s, MOV, opcode)
	case bitmatch.Match(opcode, patMovSegReg):
		return decodeMovSegReg(s, opcode)
	case bitmatch.Match(opcode, patMovImmToRegMem):
		return decodeMovImmToRegMem(s, opcode)
	case bitmatch.Match(opcode, patMovImmToReg):
		return decodeMovImmToReg(s, opcode)
	case bitmatch.Match(opcode, patMovMemToAccum):
		return decodeAccumMem(s, opcode, false)
	case bitmatch.Match(opcode, patMovAccumToMem):
		return decodeAccumMem(s, opcode, true)

	case bitmatch.Match(opcode, patAddRegMemToFromReg):
		return decodeRegMemToFromReg(s, ADD, opcode)
	case bitmatch.Match(opcode, patAddImmToAccum):
		return decodeImmToAccum(s, ADD, opcode)

	case bitmatch.Match(opcode, patSubRegMemToFromReg):
		return decodeRegMemToFromReg(s, SUB, opcode)
	case bitmatch.Match(opcode, patSubImmToAccum):
		return decodeImmToAccum(s, SUB, opcode)

	case bitmatch.Match(opcode, patCmpRegMemToFromReg):
		return decodeRegMemToFromReg(s, CMP, opcode)
	case bitmatch.Match(opcode, patCmpImmToAccum):
		return decodeImmToAccum(s, CMP, opcode)

	case bitmatch.Match(opcode, patGroup1ImmToRegMem):
		return decodeGroup1(s, opcode)

	case bitmatch.Match(opcode, patJump), bitmatch.Match(opcode, patLoop):
		return decodeJump(s, opcode)

	default:
		return Instruction{}, fmt.Errorf("decoder: opcode 0x%02x: %w", opcode, machine.ErrInvalidOpcode)
	}
}

// decodeRegMemToFromReg handles the reg/mem<->reg shape shared by MOV,
// ADD, SUB, and CMP (the low two bits are D and W).
func decodeRegMemToFromReg(s stream.Stream, op Op, opcode byte) (Instruction, error) {
	d := opcode&0x02 != 0
	w := opcode&0x01 != 0

	m, err := readModRM(s)
	if err != nil {
		return Instruction{}, err
	}
	regOp := operand.Register(machine.RegisterFromField(m.reg, w))
	rmOp, err := rmOperand(m, w, s)
	if err != nil {
		return Instruction{}, err
	}

	dst, src := rmOp, regOp
	if d {
		dst, src = regOp, rmOp
	}
	return Instruction{Op: op, Dst: dst, Src: src, Wide: w}, nil
}

func decodeMovSegReg(s stream.Stream, opcode byte) (Instruction, error) {
	d := opcode&0x02 != 0

	m, err := readModRM(s)
	if err != nil {
		return Instruction{}, err
	}
	segOp := operand.Segment(machine.SegReg(m.reg * 2))
	rmOp, err := rmOperand(m, true, s)
	if err != nil {
		return Instruction{}, err
	}

	dst, src := rmOp, segOp
	if d {
		dst, src = segOp, rmOp
	}
	return Instruction{Op: MOV, Dst: dst, Src: src, Wide: true}, nil
}

func decodeMovImmToRegMem(s stream.Stream, opcode byte) (Instruction, error) {
	w := opcode&0x01 != 0

	m, err := readModRM(s)
	if err != nil {
		return Instruction{}, err
	}
	rmOp, err := rmOperand(m, w, s)
	if err != nil {
		return Instruction{}, err
	}
	imm, err := readImmediate(s, w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: MOV, Dst: rmOp, Src: operand.Imm(imm), Wide: w}, nil
}

func decodeMovImmToReg(s stream.Stream, opcode byte) (Instruction, error) {
	w := opcode&0x08 != 0
	reg := opcode & 0x07

	imm, err := readImmediate(s, w)
	if err != nil {
		return Instruction{}, err
	}
	r := machine.RegisterFromField(reg, w)
	return Instruction{Op: MOV, Dst: operand.Register(r), Src: operand.Imm(imm), Wide: w}, nil
}

func decodeAccumMem(s stream.Stream, opcode byte, accumIsSource bool) (Instruction, error) {
	w := opcode&0x01 != 0

	addr, err := s.ReadWord()
	if err != nil {
		return Instruction{}, err
	}
	memOp := operand.Mem(operand.DirectAddress(addr))
	accOp := operand.Accumulator(w)

	if accumIsSource {
		return Instruction{Op: MOV, Dst: memOp, Src: accOp, Wide: w}, nil
	}
	return Instruction{Op: MOV, Dst: accOp, Src: memOp, Wide: w}, nil
}

func decodeImmToAccum(s stream.Stream, op Op, opcode byte) (Instruction, error) {
	w := opcode&0x01 != 0
	imm, err := readImmediate(s, w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Dst: operand.Accumulator(w), Src: operand.Imm(imm), Wide: w}, nil
}

// decodeGroup1 handles the 100000sw ADD/SUB/CMP-immediate-to-reg/mem
// family, disambiguated by the MOD/REG/RM byte's REG subfield (spec.md
// §4.5): 000=ADD, 101=SUB, 111=CMP; any other REG value is invalid.
func decodeGroup1(s stream.Stream, opcode byte) (Instruction, error) {
	signExtend := opcode&0x02 != 0
	w := opcode&0x01 != 0

	m, err := readModRM(s)
	if err != nil {
		return Instruction{}, err
	}

	var op Op
	switch m.reg {
	case 0:
		op = ADD
	case 5:
		op = SUB
	case 7:
		op = CMP
	default:
		return Instruction{}, fmt.Errorf("decoder: group-1 sub-opcode 0b%03b: %w", m.reg, machine.ErrInvalidOpcode)
	}

	rmOp, err := rmOperand(m, w, s)
	if err != nil {
		return Instruction{}, err
	}
	imm, err := readGroup1Immediate(s, w, signExtend)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Dst: rmOp, Src: operand.Imm(imm), Wide: w}, nil
}

func decodeJump(s stream.Stream, opcode byte) (Instruction, error) {
	kind, ok := jumpKindFromOpcode(opcode)
	if !ok {
		return Instruction{}, fmt.Errorf("decoder: opcode 0x%02x: %w", opcode, machine.ErrInvalidOpcode)
	}
	disp, err := s.ReadSignedByte()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: JUMP, Jump: kind, Displacement: disp}, nil
}

// readImmediate reads a plain immediate sized by wide: a signed byte, or
// a signed little-endian word.
func readImmediate(s stream.Stream, wide bool) (operand.Value, error) {
	if wide {
		w, err := s.ReadSignedWord()
		if err != nil {
			return operand.Value{}, err
		}
		return operand.WordValue(w), nil
	}
	b, err := s.ReadSignedByte()
	if err != nil {
		return operand.Value{}, err
	}
	return operand.ByteValue(b), nil
}

// readGroup1Immediate applies spec.md §4.5's immediate-sizing rule for
// the group-1 arithmetic opcodes: W=1,S=0 -> 16-bit; W=1,S=1 -> 8-bit
// signed, sign-extended to a 16-bit (still wide) value; W=0 -> 8-bit.
func readGroup1Immediate(s stream.Stream, wide, signExtend bool) (operand.Value, error) {
	if wide && !signExtend {
		w, err := s.ReadSignedWord()
		if err != nil {
			return operand.Value{}, err
		}
		return operand.WordValue(w), nil
	}
	b, err := s.ReadSignedByte()
	if err != nil {
		return operand.Value{}, err
	}
	if wide {
		return operand.WordValue(int16(b)), nil
	}
	return operand.ByteValue(b), nil
}
