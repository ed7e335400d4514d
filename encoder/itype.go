package encoder

import (
	"github.com/rv32i-tools/rv32asm/asmerr"
	"github.com/rv32i-tools/rv32asm/isa"
)

const (
	minI12 = -2048
	maxI12 = 2047
)

var shiftMnemonics = map[string]bool{"slli": true, "srli": true, "srai": true}

// encodeI packs "rd, rs1, imm" arithmetic immediate instructions (opcode
// 0010011): addi/slti/sltiu/xori/ori/andi/slli/srli/srai.
func (e *Encoder) encodeI(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
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

	if shiftMnemonics[mnemonic] {
		shamt, err := isa.ParseImmediate(operands[2])
		if err != nil {
			return 0, asmerr.Newf(pos, asmerr.KindSyntax, "malformed immediate").WithToken(operands[2])
		}
		if shamt < 0 || shamt > 31 {
			return 0, asmerr.Newf(pos, asmerr.KindOperand, "shift amount out of range [0,31]: %d", shamt)
		}
		word := entry.Opcode |
			(rd << 7) |
			(entry.Funct3 << 12) |
			(rs1 << 15) |
			(uint32(shamt) << 20) |
			(entry.Funct7 << 25)
		return word, nil
	}

	imm, err := isa.ParseImmediate(operands[2])
	if err != nil {
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "malformed immediate").WithToken(operands[2])
	}
	if imm < minI12 || imm > maxI12 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "immediate out of signed 12-bit range: %d", imm)
	}

	word := entry.Opcode |
		(rd << 7) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		((uint32(imm) & 0xFFF) << 20)
	return word, nil
}

// encodeILoad packs "rd, imm(rs1)" load instructions (opcode 0000011):
// lb/lh/lw/lbu/lhu. The line normaliser has already split the imm(rs1)
// operand into its two constituent tokens.
func (e *Encoder) encodeILoad(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
	if err := requireOperands(pos, mnemonic, operands, 3); err != nil {
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
	if imm < minI12 || imm > maxI12 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "immediate out of signed 12-bit range: %d", imm)
	}
	rs1, err := parseReg(pos, operands[2])
	if err != nil {
		return 0, err
	}

	word := entry.Opcode |
		(rd << 7) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		((uint32(imm) & 0xFFF) << 20)
	return word, nil
}

// encodeIJalr packs "rd, rs1, imm" for jalr (opcode 1100111, funct3 000).
func (e *Encoder) encodeIJalr(pos asmerr.Position, mnemonic string, entry isa.Entry, operands []string) (uint32, error) {
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
	imm, err := isa.ParseImmediate(operands[2])
	if err != nil {
		return 0, asmerr.Newf(pos, asmerr.KindSyntax, "malformed immediate").WithToken(operands[2])
	}
	if imm < minI12 || imm > maxI12 {
		return 0, asmerr.Newf(pos, asmerr.KindOperand, "immediate out of signed 12-bit range: %d", imm)
	}

	word := entry.Opcode |
		(rd << 7) |
		(entry.Funct3 << 12) |
		(rs1 << 15) |
		((uint32(imm) & 0xFFF) << 20)
	return word, nil
}
