package machine

import "errors"

// Sentinel error kinds surfaced by the engine (spec.md §7). Callers match
// against these with errors.Is; call sites wrap them with fmt.Errorf("%w", ...)
// for context the way vm/memory.go and vm/executor.go do in the teacher.
var (
	// ErrTruncatedStream: a read failed because EOF was reached inside an instruction.
	ErrTruncatedStream = errors.New("truncated instruction stream")

	// ErrInvalidOpcode: no opcode pattern matched, or a group-1 sub-opcode
	// was not one of ADD/SUB/CMP.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrIllegalOperand: an operand combination that the 8086 encoding
	// cannot express, e.g. a word value written to AL.
	ErrIllegalOperand = errors.New("illegal operand")

	// ErrJumpOutOfBounds: a jump displacement would seek the stream before
	// byte 0 or past end-of-stream.
	ErrJumpOutOfBounds = errors.New("jump target out of stream bounds")
)
