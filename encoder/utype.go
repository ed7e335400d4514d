package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

// encodeU packs "rd, imm20" upper-immediate instructions: auipc and lui.
// The 20-bit immediate is placed verbatim in inst[31:12].
func (e *Encoder) encodeU(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 2); err != nil {
		return 0, err
	}
	rd, err := parseReg(pos, operands[0])
	if err != nil {
		return 0, err
	}
	imm, err := isa.ParseImmediate(operands[1])
	if err != nil {
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "malformed immediate").WithToken(operands[1])
	}
	if imm < 0 || imm > 0xFFFFF {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "immediate out of unsigned 20-bit range: %d", imm)
	}

	word := entry.Opcode | (rd << 7) | (uint32(imm) << 12)
	return word, nil
}
