package machine

import (
	"strings"
	"testing"
)

func TestRegisterWordReadWrite(t *testing.T) {
	var g GeneralRegisters
	tests := []struct {
		reg Reg
		val uint16
	}{
		{AX, 0x1234}, {BX, 0xFFFF}, {CX, 0}, {DX, 0x0001},
		{SP, 0xBEEF}, {BP, 0x8000}, {SI, 0x7FFF}, {DI, 0x00FF},
	}
	for _, tt := range tests {
		g.WriteWord(tt.reg, tt.val)
		if got := g.ReadWord(tt.reg); got != tt.val {
			t.Errorf("WriteWord(%s, %#04x) then ReadWord = %#04x", tt.reg, tt.val, got)
		}
	}
}

func TestRegisterByteHalvesAliasWord(t *testing.T) {
	var g GeneralRegisters
	g.WriteWord(AX, 0x1234)

	if got := g.ReadByte(AH); got != 0x12 {
		t.Errorf("AH = %#02x, want 0x12", got)
	}
	if got := g.ReadByte(AL); got != 0x34 {
		t.Errorf("AL = %#02x, want 0x34", got)
	}

	g.WriteByte(AL, 0xFF)
	if got := g.ReadWord(AX); got != 0x12FF {
		t.Errorf("AX after WriteByte(AL, 0xff) = %#04x, want 0x12ff", got)
	}

	g.WriteByte(AH, 0x00)
	if got := g.ReadWord(AX); got != 0x00FF {
		t.Errorf("AX after WriteByte(AH, 0x00) = %#04x, want 0x00ff", got)
	}
}

func TestRegisterFromField(t *testing.T) {
	for field := byte(0); field < 8; field++ {
		if got := RegisterFromField(field, true); got != WordRegisterTable[field] {
			t.Errorf("RegisterFromField(%d, true) = %s, want %s", field, got, WordRegisterTable[field])
		}
		if got := RegisterFromField(field, false); got != ByteRegisterTable[field] {
			t.Errorf("RegisterFromField(%d, false) = %s, want %s", field, got, ByteRegisterTable[field])
		}
	}
}

func TestRegisterReset(t *testing.T) {
	var g GeneralRegisters
	g.WriteWord(CX, 0xABCD)
	g.Reset()
	if got := g.ReadWord(CX); got != 0 {
		t.Errorf("CX after Reset = %#04x, want 0", got)
	}
}

func TestRegisterMapOrderAndNames(t *testing.T) {
	var g GeneralRegisters
	g.WriteWord(AX, 1)
	g.WriteWord(BX, 2)

	m := g.Map()
	wantOrder := []string{"ax", "bx", "cx", "dx", "sp", "bp", "si", "di"}
	if len(m) != len(wantOrder) {
		t.Fatalf("Map() has %d entries, want %d", len(m), len(wantOrder))
	}
	for i, name := range wantOrder {
		if m[i].Name != name {
			t.Errorf("Map()[%d].Name = %q, want %q", i, m[i].Name, name)
		}
	}
	if m[0].Value != 1 || m[1].Value != 2 {
		t.Errorf("Map() values = %d,%d, want 1,2", m[0].Value, m[1].Value)
	}
}

func TestRegisterStringMentionsEachRegister(t *testing.T) {
	var g GeneralRegisters
	s := g.String()
	for _, name := range []string{"ax", "bx", "cx", "dx", "sp", "bp", "si", "di"} {
		if !strings.Contains(s, name) {
			t.Errorf("String() missing register %q:\n%s", name, s)
		}
	}
}
