package decoder

import (
	"errors"
	"testing"

	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/operand"
	"github.com/go8086/disasm86/stream"
)

func TestDecodeMovImmToReg(t *testing.T) {
	// mov cx, 3  ->  B9 03 00
	s := stream.New([]byte{0xb9, 0x03, 0x00})
	inst, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != MOV || !inst.Wide {
		t.Fatalf("Decode = %+v, want wide MOV", inst)
	}
	if inst.Dst.Kind != operand.GeneralRegister || inst.Dst.Reg != machine.CX {
		t.Errorf("Dst = %+v, want CX", inst.Dst)
	}
	if inst.Src.Imm.Word() != 3 {
		t.Errorf("Src immediate = %d, want 3", inst.Src.Imm.Word())
	}
	if s.Pos() != 3 {
		t.Errorf("stream consumed %d bytes, want 3", s.Pos())
	}
}

func TestDecodeMovRegMemToFromReg(t *testing.T) {
	// mov [bx+si], cx  -> 89 08  (d=0, w=1, mod=00, reg=001(cx), rm=000(bx+si))
	s := stream.New([]byte{0x89, 0x08})
	inst, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != MOV || !inst.Wide {
		t.Fatalf("Decode = %+v", inst)
	}
	if inst.Dst.Kind != operand.Memory {
		t.Errorf("Dst.Kind = %v, want Memory", inst.Dst.Kind)
	}
	if inst.Src.Reg != machine.CX {
		t.Errorf("Src.Reg = %v, want CX", inst.Src.Reg)
	}
}

func TestDecodeGroup1Disambiguation(t *testing.T) {
	tests := []struct {
		name   string
		regBit byte
		want   Op
	}{
		{"add", 0, ADD},
		{"sub", 5, SUB},
		{"cmp", 7, CMP},
	}
	for _, tt := range tests {
		modrm := byte(0xc0) | (tt.regBit << 3) // mod=11 (register), rm=000 (ax)
		s := stream.New([]byte{0x83, modrm, 0x05})
		inst, err := Decode(s)
		if err != nil {
			t.Fatalf("%s: Decode: %v", tt.name, err)
		}
		if inst.Op != tt.want {
			t.Errorf("%s: Op = %v, want %v", tt.name, inst.Op, tt.want)
		}
	}
}

func TestDecodeGroup1InvalidSubOpcode(t *testing.T) {
	modrm := byte(0xc0) | (2 << 3) // reg=010, not ADD/SUB/CMP
	s := stream.New([]byte{0x83, modrm, 0x05})
	_, err := Decode(s)
	if !errors.Is(err, machine.ErrInvalidOpcode) {
		t.Errorf("Decode error = %v, want ErrInvalidOpcode", err)
	}
}

func TestDecodeGroup1SignExtension(t *testing.T) {
	// add bx, -2 with w=1,s=1 -> 83 C3 FE
	s := stream.New([]byte{0x83, 0xc3, 0xfe})
	inst, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !inst.Src.Imm.Wide {
		t.Errorf("group-1 sign-extended immediate should still be tagged wide")
	}
	if inst.Src.Imm.Word() != -2 {
		t.Errorf("Src immediate = %d, want -2", inst.Src.Imm.Word())
	}
}

func TestDecodeJumpAndLoop(t *testing.T) {
	tests := []struct {
		opcode byte
		want   JumpKind
	}{
		{0x74, JE}, {0x7c, JL}, {0xe2, LOOP}, {0xe1, LOOPZ}, {0xe0, LOOPNZ}, {0xe3, JCXZ},
	}
	for _, tt := range tests {
		s := stream.New([]byte{tt.opcode, 0xfe}) // displacement -2
		inst, err := Decode(s)
		if err != nil {
			t.Fatalf("opcode 0x%02x: Decode: %v", tt.opcode, err)
		}
		if inst.Op != JUMP || inst.Jump != tt.want {
			t.Errorf("opcode 0x%02x: Jump = %v, want %v", tt.opcode, inst.Jump, tt.want)
		}
		if inst.Displacement != -2 {
			t.Errorf("opcode 0x%02x: Displacement = %d, want -2", tt.opcode, inst.Displacement)
		}
	}
}

func TestDecodeMovMemToAccumDirect(t *testing.T) {
	// mov ax, [1000] -> A1 E8 03
	s := stream.New([]byte{0xa1, 0xe8, 0x03})
	inst, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Dst.Kind != operand.AccumulatorWord {
		t.Errorf("Dst.Kind = %v, want AccumulatorWord", inst.Dst.Kind)
	}
	if inst.Src.Addr.Kind != operand.Direct || inst.Src.Addr.Word != 0x03e8 {
		t.Errorf("Src = %+v, want direct address 0x03e8", inst.Src.Addr)
	}
}

func TestDecodeTruncatedStream(t *testing.T) {
	s := stream.New([]byte{0x89}) // mov reg/mem<->reg with no mod/rm byte
	_, err := Decode(s)
	if !errors.Is(err, machine.ErrTruncatedStream) {
		t.Errorf("Decode error = %v, want ErrTruncatedStream", err)
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	s := stream.New([]byte{0xf4}) // HLT, unsupported by this decoder
	_, err := Decode(s)
	if !errors.Is(err, machine.ErrInvalidOpcode) {
		t.Errorf("Decode error = %v, want ErrInvalidOpcode", err)
	}
}
