package assemble

import (
	"bufio"
	"io"
	"strings"

	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/encoder"
	"github.com/rv32i-tools/rv32asm/isa"
	"github.com/rv32i-tools/rv32asm/lexer"
)

// Instruction is one encoded instruction paired with the source line it
// came from, for front ends that render a listing rather than a bare
// sequence of words.
type Instruction struct {
	Line   int
	Label  string
	Source string
	Word   uint32
}

// pass2Result carries the encoded words, in source order, plus the final
// instruction counter - which must equal pass one's count for well-formed
// input (spec.md section 3).
type pass2Result struct {
	Instructions []Instruction
	Count        int
}

// pass2 re-normalises the source (pass one's line-normalisation logic is
// reused, not duplicated - spec.md section 9) and encodes each recognised
// instruction, consulting the symbol table pass one built. The symbol
// table is read-only here; no locking is required (spec.md section 5).
func (a *Assembler) pass2(r io.Reader, filename string, symbols *pass1Result) (*pass2Result, *asmerr.List) {
	enc := encoder.New(symbols.Symbols)
	errs := &asmerr.List{}
	instructions := make([]Instruction, 0, symbols.Count)
	counter := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := lexer.Normalize(raw)
		pos := asmerr.Position{File: filename, Line: lineNo}

		if line.Mnemonic == "" {
			continue
		}
		if _, ok := isa.Lookup(line.Mnemonic); !ok {
			errs.Add(asmerr.Newf(pos, asmerr.KindSyntax, "unknown mnemonic").WithToken(line.Mnemonic))
			continue
		}

		counter++
		word, err := enc.Encode(pos, line.Mnemonic, line.Operands, counter)
		if err != nil {
			if ae, ok := err.(*asmerr.Error); ok {
				errs.Add(ae)
			} else {
				errs.Add(asmerr.New(pos, asmerr.KindSyntax, err.Error()))
			}
			continue
		}
		instructions = append(instructions, Instruction{
			Line:   lineNo,
			Label:  line.Label,
			Source: strings.TrimSpace(raw),
			Word:   word,
		})
	}

	return &pass2Result{Instructions: instructions, Count: counter}, errs
}
