// Package tools provides linting and cross-reference analysis over RV32I
// source, built atop the same lexer/isa primitives the assembler uses, so
// a front end can surface warnings without running a full assembly.
package tools

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/rv32i-tools/rv32asm/isa"
	"github.com/rv32i-tools/rv32asm/lexer"
)

// LintLevel is the severity of a lint finding.
type LintLevel int

const (
	LintWarning LintLevel = iota
	LintInfo
)

func (l LintLevel) String() string {
	if l == LintWarning {
		return "warning"
	}
	return "info"
}

// MarshalJSON renders a LintLevel as its name rather than its ordinal, so
// API consumers see "warning"/"info" instead of 0/1.
func (l LintLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// LintIssue is a single finding, one line, one code.
type LintIssue struct {
	Level   LintLevel `json:"level"`
	Line    int       `json:"line"`
	Message string    `json:"message"`
	Code    string    `json:"code"` // e.g. "UNUSED_LABEL", "DEAD_BRANCH_TARGET"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// LintOptions controls which checks the linter runs.
type LintOptions struct {
	WarnUnusedLabels  bool
	WarnDeadBranches  bool
	WarnRegisterTypos bool
}

// DefaultLintOptions enables every check.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{WarnUnusedLabels: true, WarnDeadBranches: true, WarnRegisterTypos: true}
}

// branchMnemonics is the set of mnemonics (including their pseudo forms)
// whose last operand names a label rather than a register or immediate.
var branchMnemonics = map[string]bool{
	"beq": true, "bne": true, "blt": true, "bge": true, "bltu": true, "bgeu": true,
	"bgt": true, "ble": true,
	"jal": true, "j": true,
}

// Lint reads source line by line and reports unused labels and branches
// that target a label which is never defined - the latter would otherwise
// only surface as a symbol error during a full assembly.
func Lint(source string, opts *LintOptions) []*LintIssue {
	if opts == nil {
		opts = DefaultLintOptions()
	}

	type labelDef struct {
		line int
	}
	defined := make(map[string]labelDef)
	referenced := make(map[string][]int)
	var issues []*LintIssue

	scanner := bufio.NewScanner(strings.NewReader(source))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := lexer.Normalize(scanner.Text())

		if line.Label != "" {
			if _, ok := defined[line.Label]; !ok {
				defined[line.Label] = labelDef{line: lineNo}
			}
		}

		if line.Mnemonic == "" {
			continue
		}
		if _, ok := isa.Lookup(line.Mnemonic); !ok {
			continue
		}
		if branchMnemonics[line.Mnemonic] && len(line.Operands) > 0 {
			target := line.Operands[len(line.Operands)-1]
			referenced[target] = append(referenced[target], lineNo)
		}

		if opts.WarnRegisterTypos {
			entry, _ := isa.Lookup(line.Mnemonic)
			for _, idx := range registerOperandIndices(line.Mnemonic, entry) {
				if idx >= len(line.Operands) {
					continue
				}
				tok := line.Operands[idx]
				if _, err := isa.ParseRegister(tok); err == nil {
					continue
				}
				if suggestion, dist := closestRegister(tok); dist == 1 {
					issues = append(issues, &LintIssue{
						Level:   LintWarning,
						Line:    lineNo,
						Message: fmt.Sprintf("%q is not a register; did you mean %q?", tok, suggestion),
						Code:    "REGISTER_TYPO",
					})
				}
			}
		}
	}

	if opts.WarnUnusedLabels {
		for name, def := range defined {
			if len(referenced[name]) == 0 {
				issues = append(issues, &LintIssue{
					Level:   LintWarning,
					Line:    def.line,
					Message: fmt.Sprintf("label %q is never referenced", name),
					Code:    "UNUSED_LABEL",
				})
			}
		}
	}

	if opts.WarnDeadBranches {
		for name, lines := range referenced {
			if _, ok := defined[name]; !ok && !looksLikeRegister(name) {
				for _, ln := range lines {
					issues = append(issues, &LintIssue{
						Level:   LintWarning,
						Line:    ln,
						Message: fmt.Sprintf("branch target %q has no matching label", name),
						Code:    "DEAD_BRANCH_TARGET",
					})
				}
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	return issues
}

func looksLikeRegister(tok string) bool {
	_, err := isa.ParseRegister(tok)
	return err == nil
}

// registerOperandIndices returns the operand positions that must name a
// register for a given mnemonic, in the unrewritten operand list the lexer
// produces. Immediate and label operands are excluded, since a typo'd
// label just reads as a new, undefined label rather than a register.
func registerOperandIndices(mnemonic string, entry isa.Entry) []int {
	switch entry.Form {
	case isa.FormR:
		return []int{0, 1, 2}
	case isa.FormI, isa.FormIJalr, isa.FormB:
		return []int{0, 1}
	case isa.FormILoad, isa.FormS:
		return []int{0, 2}
	case isa.FormU, isa.FormJ:
		return []int{0}
	case isa.FormPseudo:
		switch mnemonic {
		case "mv", "bgt", "ble":
			return []int{0, 1}
		case "li", "jr":
			return []int{0}
		}
	}
	return nil
}

// closestRegister finds the valid register spelling with the smallest edit
// distance to tok, for "did you mean" typo suggestions.
func closestRegister(tok string) (string, int) {
	tok = strings.ToLower(tok)
	best := ""
	bestDist := -1
	for name := range isa.Registers {
		d := levenshteinDistance(tok, name)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best, bestDist
}

// levenshteinDistance calculates edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
