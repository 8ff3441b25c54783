package machine

// State is the complete architecturally-visible machine state (spec.md
// §2 item 2): general registers, segment registers, flags, and linear
// memory. There is no explicit instruction-pointer field — the byte
// stream's read position *is* the IP (spec.md §9, "Stream as instruction
// pointer"); State is only ever mutated from inside package executor.
type State struct {
	Registers *GeneralRegisters
	Segments  *SegmentRegisters
	Flags     *Flags
	Memory    *Memory
}

// New creates a freshly zeroed machine state, matching "created empty
// (all zero) at machine init" from spec.md §3.
func New() *State {
	return &State{
		Registers: &GeneralRegisters{},
		Segments:  &SegmentRegisters{},
		Flags:     &Flags{},
		Memory:    &Memory{},
	}
}

// Reset zeroes every sub-store.
func (s *State) Reset() {
	s.Registers.Reset()
	s.Segments.Reset()
	s.Flags.Reset()
	s.Memory.Reset()
}
