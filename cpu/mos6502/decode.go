package mos6502

import "github.com/ncatelli/go6502chip8/cpuerr"

// Instruction is a decoded, not-yet-generated 6502 operation: a mnemonic,
// its addressing mode, the total instruction length in bytes, the base
// cycle count from the documented timing table, and the raw operand
// bytes read from memory (unused slots are zero).
type Instruction struct {
	Mnemonic   Mnemonic
	Mode       AddressingMode
	Bytes      int
	BaseCycles int
	Operand    [2]byte // little-endian: Operand[0] low, Operand[1] high
}

type opcodeInfo struct {
	mnemonic Mnemonic
	mode     AddressingMode
	cycles   int
}

// opcodeTable maps the first byte of an instruction to its mnemonic,
// addressing mode and base cycle count, matching the documented 6502
// timing table and following the teacher's Opcodes map (cpu/opcodes.go),
// extended with JSR/RTS per SPEC_FULL.md's supplemented-features note.
var opcodeTable = map[byte]opcodeInfo{
	0x69: {ADC, Immediate, 2}, 0x65: {ADC, ZeroPage, 3}, 0x75: {ADC, ZeroPageIndexedWithX, 4},
	0x6D: {ADC, Absolute, 4}, 0x7D: {ADC, AbsoluteIndexedWithX, 4}, 0x79: {ADC, AbsoluteIndexedWithY, 4},
	0x61: {ADC, XIndexedIndirect, 6}, 0x71: {ADC, IndirectYIndexed, 5},

	0x29: {AND, Immediate, 2}, 0x25: {AND, ZeroPage, 3}, 0x35: {AND, ZeroPageIndexedWithX, 4},
	0x2D: {AND, Absolute, 4}, 0x3D: {AND, AbsoluteIndexedWithX, 4}, 0x39: {AND, AbsoluteIndexedWithY, 4},
	0x21: {AND, XIndexedIndirect, 6}, 0x31: {AND, IndirectYIndexed, 5},

	0x0A: {ASL, Accumulator, 2}, 0x06: {ASL, ZeroPage, 5}, 0x16: {ASL, ZeroPageIndexedWithX, 6},
	0x0E: {ASL, Absolute, 6}, 0x1E: {ASL, AbsoluteIndexedWithX, 7},

	0x24: {BIT, ZeroPage, 3}, 0x2C: {BIT, Absolute, 4},

	0xC9: {CMP, Immediate, 2}, 0xC5: {CMP, ZeroPage, 3}, 0xD5: {CMP, ZeroPageIndexedWithX, 4},
	0xCD: {CMP, Absolute, 4}, 0xDD: {CMP, AbsoluteIndexedWithX, 4}, 0xD9: {CMP, AbsoluteIndexedWithY, 4},
	0xC1: {CMP, XIndexedIndirect, 6}, 0xD1: {CMP, IndirectYIndexed, 5},

	0xE0: {CPX, Immediate, 2}, 0xE4: {CPX, ZeroPage, 3}, 0xEC: {CPX, Absolute, 4},
	0xC0: {CPY, Immediate, 2}, 0xC4: {CPY, ZeroPage, 3}, 0xCC: {CPY, Absolute, 4},

	0xC6: {DEC, ZeroPage, 5}, 0xD6: {DEC, ZeroPageIndexedWithX, 6}, 0xCE: {DEC, Absolute, 6}, 0xDE: {DEC, AbsoluteIndexedWithX, 7},

	0x49: {EOR, Immediate, 2}, 0x45: {EOR, ZeroPage, 3}, 0x55: {EOR, ZeroPageIndexedWithX, 4},
	0x4D: {EOR, Absolute, 4}, 0x5D: {EOR, AbsoluteIndexedWithX, 4}, 0x59: {EOR, AbsoluteIndexedWithY, 4},
	0x41: {EOR, XIndexedIndirect, 6}, 0x51: {EOR, IndirectYIndexed, 5},

	0xE6: {INC, ZeroPage, 5}, 0xF6: {INC, ZeroPageIndexedWithX, 6}, 0xEE: {INC, Absolute, 6}, 0xFE: {INC, AbsoluteIndexedWithX, 7},

	0x4C: {JMP, Absolute, 3}, 0x6C: {JMP, Indirect, 5},
	0x20: {JSR, Absolute, 6},

	0xA9: {LDA, Immediate, 2}, 0xA5: {LDA, ZeroPage, 3}, 0xB5: {LDA, ZeroPageIndexedWithX, 4},
	0xAD: {LDA, Absolute, 4}, 0xBD: {LDA, AbsoluteIndexedWithX, 4}, 0xB9: {LDA, AbsoluteIndexedWithY, 4},
	0xA1: {LDA, XIndexedIndirect, 6}, 0xB1: {LDA, IndirectYIndexed, 5},

	0xA2: {LDX, Immediate, 2}, 0xA6: {LDX, ZeroPage, 3}, 0xB6: {LDX, ZeroPageIndexedWithY, 4},
	0xAE: {LDX, Absolute, 4}, 0xBE: {LDX, AbsoluteIndexedWithY, 4},

	0xA0: {LDY, Immediate, 2}, 0xA4: {LDY, ZeroPage, 3}, 0xB4: {LDY, ZeroPageIndexedWithX, 4},
	0xAC: {LDY, Absolute, 4}, 0xBC: {LDY, AbsoluteIndexedWithX, 4},

	0x4A: {LSR, Accumulator, 2}, 0x46: {LSR, ZeroPage, 5}, 0x56: {LSR, ZeroPageIndexedWithX, 6},
	0x4E: {LSR, Absolute, 6}, 0x5E: {LSR, AbsoluteIndexedWithX, 7},

	0xEA: {NOP, Implied, 2},

	0x09: {ORA, Immediate, 2}, 0x05: {ORA, ZeroPage, 3}, 0x15: {ORA, ZeroPageIndexedWithX, 4},
	0x0D: {ORA, Absolute, 4}, 0x1D: {ORA, AbsoluteIndexedWithX, 4}, 0x19: {ORA, AbsoluteIndexedWithY, 4},
	0x01: {ORA, XIndexedIndirect, 6}, 0x11: {ORA, IndirectYIndexed, 5},

	0x2A: {ROL, Accumulator, 2}, 0x26: {ROL, ZeroPage, 5}, 0x36: {ROL, ZeroPageIndexedWithX, 6},
	0x2E: {ROL, Absolute, 6}, 0x3E: {ROL, AbsoluteIndexedWithX, 7},

	0x6A: {ROR, Accumulator, 2}, 0x66: {ROR, ZeroPage, 5}, 0x76: {ROR, ZeroPageIndexedWithX, 6},
	0x6E: {ROR, Absolute, 6}, 0x7E: {ROR, AbsoluteIndexedWithX, 7},

	0x60: {RTS, Implied, 6},

	0xE9: {SBC, Immediate, 2}, 0xE5: {SBC, ZeroPage, 3}, 0xF5: {SBC, ZeroPageIndexedWithX, 4},
	0xED: {SBC, Absolute, 4}, 0xFD: {SBC, AbsoluteIndexedWithX, 4}, 0xF9: {SBC, AbsoluteIndexedWithY, 4},
	0xE1: {SBC, XIndexedIndirect, 6}, 0xF1: {SBC, IndirectYIndexed, 5},

	0x85: {STA, ZeroPage, 3}, 0x95: {STA, ZeroPageIndexedWithX, 4}, 0x8D: {STA, Absolute, 4},
	0x9D: {STA, AbsoluteIndexedWithX, 5}, 0x99: {STA, AbsoluteIndexedWithY, 5},
	0x81: {STA, XIndexedIndirect, 6}, 0x91: {STA, IndirectYIndexed, 6},

	0x86: {STX, ZeroPage, 3}, 0x96: {STX, ZeroPageIndexedWithY, 4}, 0x8E: {STX, Absolute, 4},
	0x84: {STY, ZeroPage, 3}, 0x94: {STY, ZeroPageIndexedWithX, 4}, 0x8C: {STY, Absolute, 4},

	0x18: {CLC, Implied, 2}, 0x38: {SEC, Implied, 2}, 0x58: {CLI, Implied, 2}, 0x78: {SEI, Implied, 2},
	0xB8: {CLV, Implied, 2}, 0xD8: {CLD, Implied, 2}, 0xF8: {SED, Implied, 2},

	0xAA: {TAX, Implied, 2}, 0x8A: {TXA, Implied, 2}, 0xCA: {DEX, Implied, 2}, 0xE8: {INX, Implied, 2},
	0xA8: {TAY, Implied, 2}, 0x98: {TYA, Implied, 2}, 0x88: {DEY, Implied, 2}, 0xC8: {INY, Implied, 2},

	0x10: {BPL, Relative, 2}, 0x30: {BMI, Relative, 2}, 0x50: {BVC, Relative, 2}, 0x70: {BVS, Relative, 2},
	0x90: {BCC, Relative, 2}, 0xB0: {BCS, Relative, 2}, 0xD0: {BNE, Relative, 2}, 0xF0: {BEQ, Relative, 2},

	0x9A: {TXS, Implied, 2}, 0xBA: {TSX, Implied, 2},
	0x48: {PHA, Implied, 3}, 0x68: {PLA, Implied, 4}, 0x08: {PHP, Implied, 3}, 0x28: {PLP, Implied, 4},
}

// reader is the minimal read access the decoder needs to fetch operand
// bytes; *bus.AddressMap satisfies it.
type reader interface {
	Read(addr uint16) byte
}

// Decode reads 1-3 bytes starting at pc and resolves them to an
// Instruction. Unknown opcodes fail with cpuerr.UnknownOpcode and never
// touch CPU state (Decode performs no writes; it only reads from mem).
func Decode(mem reader, pc uint16) (Instruction, error) {
	opByte := mem.Read(pc)
	info, ok := opcodeTable[opByte]
	if !ok {
		return Instruction{}, &cpuerr.UnknownOpcode{Addr: pc, Bytes: []byte{opByte}}
	}

	n := info.mode.operandBytes()
	instr := Instruction{
		Mnemonic:   info.mnemonic,
		Mode:       info.mode,
		Bytes:      1 + n,
		BaseCycles: info.cycles,
	}
	for i := 0; i < n; i++ {
		instr.Operand[i] = mem.Read(pc + 1 + uint16(i))
	}
	return instr, nil
}
