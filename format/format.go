// Package format renders a decoded instruction as the canonical textual
// assembly-listing line (spec.md §4.7).
package format

import (
	"fmt"
	"strings"

	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/operand"
)

// Preamble is the fixed two-line header every disassembly listing opens
// with (spec.md §6): "bits 16" then a blank line.
const Preamble = "bits 16\n\n"

// Instruction renders one decoded instruction as its listing line, with
// no trailing newline — callers join lines with "\n" (spec.md §4.7).
func Instruction(inst decoder.Instruction) string {
	if inst.Op == decoder.JUMP {
		k := int(inst.Displacement) + 2
		sign := "+"
		if k < 0 {
			sign = ""
		}
		return fmt.Sprintf("%s $%s%d", inst.Jump, sign, k)
	}

	dst := operandString(inst, inst.Dst, inst.Src)
	src := operandString(inst, inst.Src, inst.Dst)
	return fmt.Sprintf("%s %s, %s", inst.Op, dst, src)
}

// operandString renders one side of a two-operand instruction,
// prepending the byte/word size qualifier when an immediate is being
// written to a bare memory destination (spec.md §4.7: "Immediate-to-
// memory instructions prefix the immediate with byte/word").
func operandString(inst decoder.Instruction, o, other operand.Operand) string {
	if o.Kind == operand.Immediate && other.Kind == operand.Memory {
		qualifier := "byte"
		if inst.Wide {
			qualifier = "word"
		}
		return qualifier + " " + o.String()
	}
	return o.String()
}

// Program renders an entire decoded program as a full listing: the
// preamble followed by one line per instruction.
func Program(lines []string) string {
	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString(strings.Join(lines, "\n"))
	if len(lines) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}
