package machine

import "math/bits"

// Flags holds the nine 8086 status flags (spec.md §3). Only CF, PF, AF,
// ZF, SF, OF are written by the arithmetic evaluator (package arith); TF,
// IF, DF are reserved state this engine never sets, matching spec.md's
// "does not model real interrupts" non-goal.
type Flags struct {
	Carry          bool // CF
	Parity         bool // PF
	AuxiliaryCarry bool // AF
	Zero           bool // ZF
	Sign           bool // SF
	Trap           bool // TF
	Interrupt      bool // IF
	Direction      bool // DF
	Overflow       bool // OF
}

// Reset clears all nine flags.
func (f *Flags) Reset() {
	*f = Flags{}
}

// UpdateArithmetic sets CF/PF/AF/ZF/SF/OF from an arith.Result-shaped set
// of values, leaving TF/IF/DF untouched. It never preserves the previous
// value of any of the six (spec.md §3 invariant (c)): every arithmetic
// operation recomputes all six from scratch.
func (f *Flags) UpdateArithmetic(result int16, carry, auxCarry, overflow bool) {
	f.Carry = carry
	f.AuxiliaryCarry = auxCarry
	f.Overflow = overflow
	f.Zero = result == 0
	f.Sign = result < 0
	f.Parity = ParityEven(byte(uint16(result)))
}

// ParityEven reports whether the low byte has an even number of set bits
// (spec.md §3 invariant (d): PF is true iff popcount of the low byte is
// even — the 8086 defines parity over the low byte only, not the full
// word; see spec.md §9's note on the reference's 16-bit parity bug).
func ParityEven(low byte) bool {
	return bits.OnesCount8(low)%2 == 0
}

// FlagValue is one entry of the flag-register state dump.
type FlagValue struct {
	Name  string
	Value bool
}

// Map returns the ordered (name, value) flag dump (spec.md §6's "flag
// map" state-dump interface): carry, parity, auxiliaryCarry, zero, sign,
// trap, interrupt, direction, overflow.
func (f *Flags) Map() []FlagValue {
	return []FlagValue{
		{"carry", f.Carry},
		{"parity", f.Parity},
		{"auxiliaryCarry", f.AuxiliaryCarry},
		{"zero", f.Zero},
		{"sign", f.Sign},
		{"trap", f.Trap},
		{"interrupt", f.Interrupt},
		{"direction", f.Direction},
		{"overflow", f.Overflow},
	}
}

// String renders the flag register the way assemblers print it: a
// space-separated list of the set flags' two-letter mnemonics.
func (f *Flags) String() string {
	mnemonics := map[string]string{
		"carry": "CF", "parity": "PF", "auxiliaryCarry": "AF", "zero": "ZF",
		"sign": "SF", "trap": "TF", "interrupt": "IF", "direction": "DF",
		"overflow": "OF",
	}
	out := ""
	for _, fv := range f.Map() {
		if fv.Value {
			if out != "" {
				out += " "
			}
			out += mnemonics[fv.Name]
		}
	}
	return out
}
