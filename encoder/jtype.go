package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

const (
	minJ21 = -1048576
	maxJ21 = 1048575
)

// encodeJ packs "rd, label" for jal (opcode 1101111). The byte offset is
// scattered: bit 20 -> inst[31], bits [10:1] -> inst[30:21], bit 11 ->
// inst[20], bits [19:12] -> inst[19:12].
func (e *Encoder) encodeJ(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string, index int) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 2); err != nil {
		return 0, err
	}
	rd, err := parseReg(pos, operands[0])
	if err != nil {
		return 0, err
	}

	label := operands[1]
	target, ok := e.Symbols.Lookup(label)
	if !ok {
		return 0, asmerr.Newf(pos, asmerr.KindSymbol, "undefined label").WithToken(label)
	}

	offset := int64(target-index) * 4
	if offset < minJ21 || offset > maxJ21 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "jump offset out of signed 21-bit range: %d", offset)
	}
	if offset%2 != 0 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "jump offset not a multiple of 2: %d", offset)
	}

	u := uint32(offset)
	bit20 := (u >> 20) & 0x1
	bits10to1 := (u >> 1) & 0x3FF
	bit11 := (u >> 11) & 0x1
	bits19to12 := (u >> 12) & 0xFF

	word := entry.Opcode |
		(rd << 7) |
		(bits19to12 << 12) |
		(bit11 << 20) |
		(bits10to1 << 21) |
		(bit20 << 31)
	return word, nil
}
