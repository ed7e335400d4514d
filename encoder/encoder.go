// Package encoder packs a mnemonic and its operands into a 32-bit RV32I
// machine word. One function per encoding family (R/I/S/B/U/J) replaces
// the long per-mnemonic conditional chain of the original source with a
// single dispatch on the isa.Mnemonics table (spec.md section 9's
// redesign guidance).
package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
	"github.com/rv32i-tools/rv32asm/symtab"
)

// Encoder turns normalised instruction lines into machine words. It holds
// no mutable state of its own: the symbol table it consults is read-only by
// the time pass two runs (spec.md section 5).
type Encoder struct {
	Symbols *symtab.Table
}

// New creates an Encoder bound to a resolved symbol table.
func New(symbols *symtab.Table) *Encoder {
	return &Encoder{Symbols: symbols}
}

// Encode assembles one instruction at the given (1-based) instruction
// index into its 32-bit word. Pseudo-instructions are expanded to their
// single base instruction first.
func (e *Encoder) Encode(pos asmerr.Position, mnemonic string, operands []string, index int) (uint32, error) {
	entry, ok := isa.Lookup(mnemonic)
	if !ok {
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "unknown mnemonic").WithToken(mnemonic)
	}

	if entry.Form == isa.FormPseudo {
		base, rewritten := entry.Rewrite(operands)
		baseEntry, ok := isa.Lookup(base)
		if !ok {
			return 0, asmerr.Newf(pos, asmerr.KindSyntax, "pseudo-instruction %q expands to unknown mnemonic %q", mnemonic, base)
		}
		return e.encodeForm(pos, base, baseEntry, rewritten, index)
	}

	return e.encodeForm(pos, mnemonic, entry, operands, index)
}

func (e *Encoder) encodeForm(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string, index int) (uint32, error) {
	switch entry.Form {
	case isa.FormR:
		return e.encodeR(pos, mnemonic, entry, operands)
	case isa.FormI:
		return e.encodeI(pos, mnemonic, entry, operands)
	case isa.FormILoad:
		return e.encodeILoad(pos, mnemonic, entry, operands)
	case isa.FormIJalr:
		return e.encodeIJalr(pos, mnemonic, entry, operands)
	case isa.FormS:
		return e.encodeS(pos, mnemonic, entry, operands)
	case isa.FormB:
		return e.encodeB(pos, mnemonic, entry, operands, index)
	case isa.FormU:
		return e.encodeU(pos, mnemonic, entry, operands)
	case isa.FormJ:
		return e.encodeJ(pos, mnemonic, entry, operands, index)
	default:
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "unsupported encoding form for %q", mnemonic)
	}
}

// requireOperands checks the operand count, returning a SyntaxError naming
// the mnemonic on mismatch (spec.md section 4.3's "wrong operand count").
func requireOperands(pos asmerr.Position, mnemonic string, operands []string, want int) error {
	if len(operands) != want {
		return asmerr.Newf(pos, asmerr.KindSyntax, "%s requires %d operand(s), got %d", mnemonic, want, len(operands))
	}
	return nil
}

func parseReg(pos asmerr.Position, tok string) (uint32, error) {
	r, err := isa.ParseRegister(tok)
	if err != nil {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "%v", err).WithToken(tok)
	}
	return r, nil
}

