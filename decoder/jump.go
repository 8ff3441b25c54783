package decoder

import "fmt"

// JumpKind enumerates the twenty conditional-jump/loop variants (spec.md
// §4.6's predicate table): sixteen forms at 0x70-0x7F plus LOOPNZ/LOOPZ/
// LOOP/JCXZ at 0xE0-0xE3, grounded on the original implementation's
// JumpInstructionTypes enum.
type JumpKind int

const (
	JE JumpKind = iota
	JL
	JLE
	JB
	JBE
	JP
	JO
	JS
	JNE
	JNL
	JNLE
	JNB
	JNBE
	JNP
	JNO
	JNS
	LOOP
	LOOPZ
	LOOPNZ
	JCXZ
)

var jumpMnemonics = map[JumpKind]string{
	JE: "je", JL: "jl", JLE: "jle", JB: "jb", JBE: "jbe",
	JP: "jp", JO: "jo", JS: "js", JNE: "jne", JNL: "jnl",
	JNLE: "jnle", JNB: "jnb", JNBE: "jnbe", JNP: "jnp", JNO: "jno",
	JNS: "jns", LOOP: "loop", LOOPZ: "loopz", LOOPNZ: "loopnz", JCXZ: "jcxz",
}

func (k JumpKind) String() string {
	if m, ok := jumpMnemonics[k]; ok {
		return m
	}
	return fmt.Sprintf("jump(%d)", int(k))
}

var jumpOpcodes = map[byte]JumpKind{
	0x70: JO, 0x71: JNO, 0x72: JB, 0x73: JNB,
	0x74: JE, 0x75: JNE, 0x76: JBE, 0x77: JNBE,
	0x78: JS, 0x79: JNS, 0x7a: JP, 0x7b: JNP,
	0x7c: JL, 0x7d: JNL, 0x7e: JLE, 0x7f: JNLE,
	0xe0: LOOPNZ, 0xe1: LOOPZ, 0xe2: LOOP, 0xe3: JCXZ,
}

// jumpKindFromOpcode resolves one of the twenty jump/loop opcodes. ok is
// false for any byte outside the 0x70-0x7F / 0xE0-0xE3 ranges.
func jumpKindFromOpcode(b byte) (JumpKind, bool) {
	k, ok := jumpOpcodes[b]
	return k, ok
}

// IsLoop reports whether k is one of the three LOOP variants, which
// decrement CX unconditionally (spec.md §4.6).
func (k JumpKind) IsLoop() bool {
	switch k {
	case LOOP, LOOPZ, LOOPNZ:
		return true
	default:
		return false
	}
}
