package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

// encodeS packs store instructions (opcode 0100011): sb/sh/sw. Source
// order is "rs2, imm(rs1)" - the register written to memory comes first,
// the base register second (the ISA's rs2/rs1, not the original C source's
// swapped rd/rs1 - see spec.md section 9). The immediate is split across
// two non-contiguous fields: bits [4:0] into inst[11:7], bits [11:5] into
// inst[31:25].
func (e *Encoder) encodeS(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 3); err != nil {
		return 0, err
	}
	rs2, err := parseReg(pos, operands[0])
	if err != nil {
		return 0, err
	}
	imm, err := isa.ParseImmediate(operands[1])
	if err != nil {
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "malformed immediate").WithToken(operands[1])
	}
	if imm < minI12 || imm > maxI12 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "immediate out of signed 12-bit range: %d", imm)
	}
	rs1, err := parseReg(pos, operands[2])
	if err != nil {
		return 0, err
	}

	u := uint32(imm)
	low := u & 0x1F        // bits [4:0]
	high := (u >> 5) & 0x7F // bits [11:5]

	word := entry.Opcode |
		(low << 7) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		(rs2 << 20) |
		(high << 25)
	return word, nil
}
