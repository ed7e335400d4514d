package tools

import (
	"bufio"
	"sort"
	"strings"

	"github.com/rv32i-tools/rv32asm/isa"
	"github.com/rv32i-tools/rv32asm/lexer"
)

// Reference is one use of a symbol: the line it occurs on and that line's
// source text with surrounding whitespace trimmed, for display.
type Reference struct {
	Line   int    `json:"line"`
	Source string `json:"source"`
}

// Symbol is a label together with where it was defined and every branch
// or jump that names it.
type Symbol struct {
	Name       string      `json:"name"`
	Definition int         `json:"definition"` // source line of the label; 0 if never defined
	References []Reference `json:"references,omitempty"`
}

// XRef builds a cross-reference table: one Symbol per label name that is
// either defined or referenced anywhere in source.
func XRef(source string) []*Symbol {
	bySymbol := make(map[string]*Symbol)

	get := func(name string) *Symbol {
		s, ok := bySymbol[name]
		if !ok {
			s = &Symbol{Name: name}
			bySymbol[name] = s
		}
		return s
	}

	scanner := bufio.NewScanner(strings.NewReader(source))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := lexer.Normalize(raw)

		if line.Label != "" {
			get(line.Label).Definition = lineNo
		}

		if line.Mnemonic == "" {
			continue
		}
		if _, ok := isa.Lookup(line.Mnemonic); !ok {
			continue
		}
		if branchMnemonics[line.Mnemonic] && len(line.Operands) > 0 {
			target := line.Operands[len(line.Operands)-1]
			if looksLikeRegister(target) {
				continue
			}
			sym := get(target)
			sym.References = append(sym.References, Reference{Line: lineNo, Source: strings.TrimSpace(raw)})
		}
	}

	symbols := make([]*Symbol, 0, len(bySymbol))
	for _, s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Name < symbols[j].Name })
	return symbols
}
