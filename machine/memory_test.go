package machine

import "testing"

func TestMemoryByteReadWrite(t *testing.T) {
	var m Memory
	m.WriteByte(0x100, 0xAB)
	if got := m.ReadByte(0x100); got != 0xAB {
		t.Errorf("ReadByte(0x100) = %#02x, want 0xab", got)
	}
}

func TestMemoryWordReadWriteBigEndian(t *testing.T) {
	var m Memory
	m.WriteWord(0x200, 0x1234)
	if got := m.ReadByte(0x200); got != 0x12 {
		t.Errorf("high byte at 0x200 = %#02x, want 0x12", got)
	}
	if got := m.ReadByte(0x201); got != 0x34 {
		t.Errorf("low byte at 0x201 = %#02x, want 0x34", got)
	}
	if got := m.ReadWord(0x200); got != 0x1234 {
		t.Errorf("ReadWord(0x200) = %#04x, want 0x1234", got)
	}
}

func TestMemoryAddressWrapsModulo64K(t *testing.T) {
	var m Memory
	m.WriteWord(0xFFFF, 0xBEEF)
	if got := m.ReadByte(0xFFFF); got != 0xBE {
		t.Errorf("ReadByte(0xffff) = %#02x, want 0xbe", got)
	}
	if got := m.ReadByte(0x0000); got != 0xEF {
		t.Errorf("ReadByte(0x0000) (wrapped low byte) = %#02x, want 0xef", got)
	}
	if got := m.ReadWord(0xFFFF); got != 0xBEEF {
		t.Errorf("ReadWord(0xffff) = %#04x, want 0xbeef", got)
	}
}

func TestMemoryLoadBytes(t *testing.T) {
	var m Memory
	program := []byte{0x90, 0xB8, 0x01, 0x00}
	m.LoadBytes(0, program)
	for i, b := range program {
		if got := m.ReadByte(uint16(i)); got != b {
			t.Errorf("ReadByte(%d) after LoadBytes = %#02x, want %#02x", i, got, b)
		}
	}
}

func TestMemoryReset(t *testing.T) {
	var m Memory
	m.WriteByte(0x10, 0xFF)
	m.Reset()
	if got := m.ReadByte(0x10); got != 0 {
		t.Errorf("ReadByte(0x10) after Reset = %#02x, want 0", got)
	}
}

func TestMemoryDumpIsACopy(t *testing.T) {
	var m Memory
	m.WriteByte(0, 0x42)
	dump := m.Dump()
	if len(dump) != MemorySize {
		t.Fatalf("Dump() length = %d, want %d", len(dump), MemorySize)
	}
	dump[0] = 0x00
	if got := m.ReadByte(0); got != 0x42 {
		t.Error("mutating the Dump() result should not affect live memory")
	}
}
