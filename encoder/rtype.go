package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

// encodeR packs "rd, rs1, rs2" register-register instructions (opcode
// 0110011): add/sub/and/or/xor/sll/srl/sra/slt/sltu.
func (e *Encoder) encodeR(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 3); err != nil {
		return 0, err
	}
	rd, err := parseReg(pos, operands[0])
	if err != nil {
		return 0, err
	}
	rs1, err := parseReg(pos, operands[1])
	if err != nil {
		return 0, err
	}
	rs2, err := parseReg(pos, operands[2])
	if err != nil {
		return 0, err
	}

	word := entry.Opcode |
		(rd << 7) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		(rs2 << 20) |
		(entry.Funct7 << 25)
	return word, nil
}
