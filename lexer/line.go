// Package lexer implements the assembler's line normaliser: the single
// routine, shared by both assembly passes, that turns one raw source line
// into a label plus a canonical token sequence (spec.md section 4.1).
package lexer

import (
	"strings"

	"github.com/rv32i-tools/rv32asm/isa"
)

// Line is the canonical form of one source line: an optional label and the
// mnemonic/operand tokens of its instruction body, if any.
type Line struct {
	Label    string   // empty if no label on this line
	Mnemonic string   // empty if the line has no instruction (label-only or blank)
	Operands []string
}

// Empty reports whether the line carries neither a label nor an
// instruction - a blank or comment-only line.
func (l *Line) Empty() bool {
	return l.Label == "" && l.Mnemonic == ""
}

// Normalize applies spec.md section 4.1 to one raw source line:
//
//  1. strip any trailing "#" comment
//  2. replace every "," with whitespace
//  3. split off a "label:" prefix, if present
//  4. for load/store mnemonics, split the trailing "imm(reg)" operand
//  5. tokenize the remaining body on whitespace
func Normalize(raw string) *Line {
	s := raw
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", " ")

	line := &Line{}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		line.Label = strings.TrimSpace(s[:i])
		s = s[i+1:]
	}

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return line
	}

	line.Mnemonic = strings.ToLower(tokens[0])
	operands := tokens[1:]

	if isa.IsMemoryMnemonic(line.Mnemonic) && len(operands) > 0 {
		operands = splitMemoryOperand(operands)
	}

	line.Operands = operands
	return line
}

// splitMemoryOperand rewrites a trailing "imm(reg)" token into its two
// constituent tokens "imm" and "reg", per spec.md section 4.1 step 4.
func splitMemoryOperand(operands []string) []string {
	last := operands[len(operands)-1]
	paren := strings.IndexByte(last, '(')
	if paren < 0 || !strings.HasSuffix(last, ")") {
		return operands
	}

	imm := last[:paren]
	reg := last[paren+1 : len(last)-1]

	out := make([]string, 0, len(operands)+1)
	out = append(out, operands[:len(operands)-1]...)
	out = append(out, imm, reg)
	return out
}
