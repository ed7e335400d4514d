// Package assemble drives the two passes that turn a source file into a
// sequence of encoded RV32I words: pass one builds the symbol table, pass
// two consumes it (read-only) and encodes (spec.md section 3).
package assemble

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/format"
)

// Assembler holds the knobs that vary driver behaviour without touching
// the encoding rules themselves.
type Assembler struct {
	// Strict makes an unrecognised mnemonic a pass-one error instead of
	// the original's silently-skipped-then-fails-in-pass-two behaviour
	// (spec.md section 9's documented weakness).
	Strict bool

	// Style selects hex or binary rendering for the output file.
	Style format.Style
}

// New returns an Assembler with the defaults the driver uses when no
// configuration overrides them: strict mnemonic checking and hex output.
func New() *Assembler {
	return &Assembler{Strict: true, Style: format.Hex}
}

// Result is what a completed, error-free assembly produced.
type Result struct {
	Instructions []Instruction
	Count        int
	SymbolCount  int
}

// Words returns just the encoded machine words, in source order, for
// callers that don't need the per-line listing detail.
func (r *Result) Words() []uint32 {
	words := make([]uint32, len(r.Instructions))
	for i, inst := range r.Instructions {
		words[i] = inst.Word
	}
	return words
}

// Assemble runs both passes over src and returns the encoded words. The
// errors of the pass that failed are returned as one list; when pass one
// fails, pass two does not run, since forward references and instruction indices can't be
// trusted once pass one's walk is incomplete.
func (a *Assembler) Assemble(src []byte, filename string) (*Result, *asmerr.List) {
	p1, errs := a.pass1(bytes.NewReader(src), filename)
	if errs.HasErrors() {
		return nil, errs
	}

	p2, errs := a.pass2(bytes.NewReader(src), filename, p1)
	if errs.HasErrors() {
		return nil, errs
	}
	if p2.Count != p1.Count {
		errs.Add(asmerr.Newf(asmerr.Position{File: filename}, asmerr.KindSyntax,
			"instruction count mismatch: pass one counted %d, pass two %d", p1.Count, p2.Count))
		return nil, errs
	}

	return &Result{
		Instructions: p2.Instructions,
		Count:        p2.Count,
		SymbolCount:  p1.Symbols.Len(),
	}, errs
}

// AssembleFile reads inputPath, assembles it, and writes the rendered
// output to outputPath. The output is written to a temporary file in the
// same directory and renamed into place only once assembly succeeds in
// full, so a failing run never leaves a partial or truncated output file
// behind (an Open Question in spec.md section 9, resolved this way).
func (a *Assembler) AssembleFile(inputPath, outputPath string) (*Result, *asmerr.List) {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		errs := &asmerr.List{}
		errs.Add(asmerr.Newf(asmerr.Position{File: inputPath}, asmerr.KindIO, "reading input: %v", err))
		return nil, errs
	}

	result, errs := a.Assemble(src, filepath.Base(inputPath))
	if errs.HasErrors() {
		return nil, errs
	}

	if err := a.writeOutput(outputPath, result.Words()); err != nil {
		errs.Add(asmerr.Newf(asmerr.Position{File: outputPath}, asmerr.KindIO, "writing output: %v", err))
		return nil, errs
	}

	return result, errs
}

func (a *Assembler) writeOutput(outputPath string, words []uint32) error {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, ".rv32asm-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	var buf bytes.Buffer
	for _, w := range words {
		buf.WriteString(format.Line(w, a.Style))
		buf.WriteByte('\n')
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("renaming temp output into place: %w", err)
	}
	return nil
}
