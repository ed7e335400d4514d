package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

const (
	minB13 = -4096
	maxB13 = 4095
)

// encodeB packs branch instructions (opcode 1100011): beq/bne/blt/bge/
// bltu/bgeu. The byte offset is derived from the signed instruction-index
// difference (spec.md section 9's fix for the original source's
// inconsistent bit-12 shift), then scattered across the B-type's
// non-contiguous immediate fields: bit 12 -> inst[31], bits [10:5] ->
// inst[30:25], bits [4:1] -> inst[11:8], bit 11 -> inst[7].
func (e *Encoder) encodeB(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string, index int) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 3); err != nil {
		return 0, err
	}
	rs1, err := parseReg(pos, operands[0])
	if err != nil {
		return 0, err
	}
	rs2, err := parseReg(pos, operands[1])
	if err != nil {
		return 0, err
	}

	label := operands[2]
	target, ok := e.Symbols.Lookup(label)
	if !ok {
		return 0, asmerr.Newf(pos, asmerr.KindSymbol, "undefined label").WithToken(label)
	}

	offset := int64(target-index) * 4
	if offset < minB13 || offset > maxB13 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "branch offset out of signed 13-bit range: %d", offset)
	}
	if offset%2 != 0 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "branch offset not a multiple of 2: %d", offset)
	}

	u := uint32(offset)
	bit12 := (u >> 12) & 0x1
	bits10to5 := (u >> 5) & 0x3F
	bits4to1 := (u >> 1) & 0xF
	bit11 := (u >> 11) & 0x1

	word := entry.Opcode |
		(bit11 << 7) |
		(bits4to1 << 8) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		(rs2 << 20) |
		(bits10to5 << 25) |
		(bit12 << 31)
	return word, nil
}
