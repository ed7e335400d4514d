package assemble

import (
	"bufio"
	"io"

	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
	"github.com/rv32i-tools/rv32asm/lexer"
	"github.com/rv32i-tools/rv32asm/symtab"
)

// pass1Result is everything pass one hands to pass two: the resolved
// symbol table and the final instruction counter, which must equal the
// number of output lines pass two produces (spec.md section 3's
// invariant).
type pass1Result struct {
	Symbols *symtab.Table
	Count   int
}

// pass1 walks the source once, binding every label to the instruction
// index of the instruction it prefixes (spec.md section 4.2). It never
// encodes anything; it only counts.
func (a *Assembler) pass1(r io.Reader, filename string) (*pass1Result, *asmerr.List) {
	symbols := symtab.New()
	errs := &asmerr.List{}
	counter := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := lexer.Normalize(scanner.Text())
		pos := asmerr.Position{File: filename, Line: lineNo}

		if line.Label != "" {
			if err := symbols.Define(line.Label, counter+1); err != nil {
				errs.Add(asmerr.New(pos, asmerr.KindSymbol, err.Error()))
			}
		}

		if line.Mnemonic == "" {
			continue
		}

		if _, ok := isa.Lookup(line.Mnemonic); !ok {
			if a.Strict {
				errs.Add(asmerr.Newf(pos, asmerr.KindSyntax, "unknown mnemonic").WithToken(line.Mnemonic))
			}
			// Non-strict mode reproduces the original source's weaker
			// behaviour (spec.md section 4.2): skip silently in pass one,
			// fail later when pass two tries to encode it.
			continue
		}

		counter++
	}

	return &pass1Result{Symbols: symbols, Count: counter}, errs
}
