package machine

import (
	"strings"
	"testing"
)

func TestSegmentReadWrite(t *testing.T) {
	var s SegmentRegisters
	tests := []struct {
		reg SegReg
		val uint16
	}{
		{ES, 0x1000}, {CS, 0x2000}, {SS, 0x3000}, {DS, 0x4000},
	}
	for _, tt := range tests {
		s.WriteWord(tt.reg, tt.val)
		if got := s.ReadWord(tt.reg); got != tt.val {
			t.Errorf("WriteWord(%s, %#04x) then ReadWord = %#04x", tt.reg, tt.val, got)
		}
	}
}

func TestSegmentReset(t *testing.T) {
	var s SegmentRegisters
	s.WriteWord(DS, 0xABCD)
	s.Reset()
	if got := s.ReadWord(DS); got != 0 {
		t.Errorf("DS after Reset = %#04x, want 0", got)
	}
}

func TestSegmentMapOrder(t *testing.T) {
	var s SegmentRegisters
	s.WriteWord(ES, 1)
	s.WriteWord(CS, 2)
	s.WriteWord(SS, 3)
	s.WriteWord(DS, 4)

	m := s.Map()
	want := []struct {
		name string
		val  uint16
	}{{"es", 1}, {"cs", 2}, {"ss", 3}, {"ds", 4}}
	if len(m) != len(want) {
		t.Fatalf("Map() has %d entries, want %d", len(m), len(want))
	}
	for i, w := range want {
		if m[i].Name != w.name || m[i].Value != w.val {
			t.Errorf("Map()[%d] = %s=%d, want %s=%d", i, m[i].Name, m[i].Value, w.name, w.val)
		}
	}
}

func TestSegmentStringMentionsEachRegister(t *testing.T) {
	var s SegmentRegisters
	out := s.String()
	for _, name := range []string{"es", "cs", "ss", "ds"} {
		if !strings.Contains(out, name) {
			t.Errorf("String() missing segment %q:\n%s", name, out)
		}
	}
}
