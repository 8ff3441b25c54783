package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go8086/disasm86/machine"
)

// ExprParser parses a watch expression with precedence climbing (adapted
// from debugger/expr_parser.go), evaluating register reads, flag reads,
// and [addr] memory dereferences directly against a *machine.State.
type ExprParser struct {
	tokens []ExprToken
	pos    int
	st     *machine.State
}

// NewExprParser creates a parser over tokens, evaluating against st.
func NewExprParser(tokens []ExprToken, st *machine.State) *ExprParser {
	return &ExprParser{tokens: tokens, st: st}
}

func (p *ExprParser) currentToken() ExprToken {
	if p.pos >= len(p.tokens) {
		return ExprToken{Type: ExprTokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *ExprParser) advance() { p.pos++ }

func operatorPrecedence(op string) int {
	switch op {
	case "|":
		return 1
	case "^":
		return 2
	case "&":
		return 3
	case "<<", ">>":
		return 4
	case "+", "-":
		return 5
	case "*", "/":
		return 6
	default:
		return 0
	}
}

// Parse evaluates the full token stream to a single 16-bit value.
func (p *ExprParser) Parse() (uint16, error) {
	result, err := p.parseExpression(0)
	if err != nil {
		return 0, err
	}
	if p.currentToken().Type != ExprTokenEOF {
		return 0, fmt.Errorf("unexpected token: %q", p.currentToken().Value)
	}
	return result, nil
}

func (p *ExprParser) parseExpression(minPrecedence int) (uint16, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}

	for {
		tok := p.currentToken()
		if tok.Type != ExprTokenOperator {
			break
		}
		precedence := operatorPrecedence(tok.Value)
		if precedence < minPrecedence {
			break
		}
		op := tok.Value
		p.advance()

		right, err := p.parseExpression(precedence + 1)
		if err != nil {
			return 0, err
		}
		left, err = applyOperator(left, right, op)
		if err != nil {
			return 0, err
		}
	}

	return left, nil
}

func (p *ExprParser) parsePrimary() (uint16, error) {
	tok := p.currentToken()

	switch tok.Type {
	case ExprTokenNumber:
		p.advance()
		return parseNumberValue(tok.Value)

	case ExprTokenRegister:
		p.advance()
		return p.registerValue(tok.Value)

	case ExprTokenFlag:
		p.advance()
		return p.flagValue(tok.Value)

	case ExprTokenLParen:
		p.advance()
		result, err := p.parseExpression(0)
		if err != nil {
			return 0, err
		}
		if p.currentToken().Type != ExprTokenRParen {
			return 0, fmt.Errorf("expected ')', got %q", p.currentToken().Value)
		}
		p.advance()
		return result, nil

	case ExprTokenLBracket:
		p.advance()
		addr, err := p.parseExpression(0)
		if err != nil {
			return 0, err
		}
		if p.currentToken().Type != ExprTokenRBracket {
			return 0, fmt.Errorf("expected ']', got %q", p.currentToken().Value)
		}
		p.advance()
		return p.st.Memory.ReadWord(addr), nil

	case ExprTokenOperator:
		if tok.Value == "*" {
			p.advance()
			addr, err := p.parsePrimary()
			if err != nil {
				return 0, err
			}
			return p.st.Memory.ReadWord(addr), nil
		}
		return 0, fmt.Errorf("unexpected operator: %q", tok.Value)

	default:
		return 0, fmt.Errorf("unexpected token: %q (%s)", tok.Value, tok.Type)
	}
}

var registerByName = map[string]machine.Reg{
	"ax": machine.AX, "bx": machine.BX, "cx": machine.CX, "dx": machine.DX,
	"sp": machine.SP, "bp": machine.BP, "si": machine.SI, "di": machine.DI,
	"al": machine.AL, "ah": machine.AH, "bl": machine.BL, "bh": machine.BH,
	"cl": machine.CL, "ch": machine.CH, "dl": machine.DL, "dh": machine.DH,
}

func (p *ExprParser) registerValue(name string) (uint16, error) {
	if reg, ok := registerByName[name]; ok {
		if reg.IsWide() {
			return p.st.Registers.ReadWord(reg), nil
		}
		return uint16(p.st.Registers.ReadByte(reg)), nil
	}

	switch name {
	case "cs":
		return p.st.Segments.ReadWord(machine.CS), nil
	case "ds":
		return p.st.Segments.ReadWord(machine.DS), nil
	case "es":
		return p.st.Segments.ReadWord(machine.ES), nil
	case "ss":
		return p.st.Segments.ReadWord(machine.SS), nil
	}
	return 0, fmt.Errorf("unknown register: %s", name)
}

func (p *ExprParser) flagValue(name string) (uint16, error) {
	var set bool
	switch name {
	case "cf":
		set = p.st.Flags.Carry
	case "zf":
		set = p.st.Flags.Zero
	case "sf":
		set = p.st.Flags.Sign
	case "of":
		set = p.st.Flags.Overflow
	case "af":
		set = p.st.Flags.AuxiliaryCarry
	case "pf":
		set = p.st.Flags.Parity
	default:
		return 0, fmt.Errorf("unknown flag: %s", name)
	}
	if set {
		return 1, nil
	}
	return 0, nil
}

func parseNumberValue(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return 0, err
		}
		return uint16(val), nil
	}
	if strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") {
		val, err := strconv.ParseUint(s[2:], 2, 16)
		if err != nil {
			return 0, err
		}
		return uint16(val), nil
	}

	val, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint16(val), nil
}

func applyOperator(left, right uint16, op string) (uint16, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	case "&":
		return left & right, nil
	case "|":
		return left | right, nil
	case "^":
		return left ^ right, nil
	case "<<":
		return left << right, nil
	case ">>":
		return left >> right, nil
	default:
		return 0, fmt.Errorf("unknown operator: %s", op)
	}
}

// Evaluate tokenizes and evaluates expr in one call.
func Evaluate(expr string, st *machine.State) (uint16, error) {
	tokens := NewExprLexer(expr).TokenizeAll()
	return NewExprParser(tokens, st).Parse()
}
