package chip8

import (
	"github.com/ncatelli/go6502chip8/cpuerr"
	"github.com/ncatelli/go6502chip8/mask"
)

// Instruction is a decoded, not-yet-generated CHIP-8 operation. Every
// CHIP-8 instruction is exactly 2 bytes; the fields below are the operand
// positions the 35 documented opcode patterns draw from, named the way the
// reference opcode table names them (x, y, n, nn, nnn).
type Instruction struct {
	Mnemonic Mnemonic
	X        byte // second nibble: register index 0-15
	Y        byte // third nibble: register index 0-15
	N        byte // fourth nibble: 4-bit immediate
	NN       byte // low byte: 8-bit immediate
	NNN      uint16 // low 12 bits: address
}

// reader is the minimal read access the decoder needs.
type reader interface {
	Read(addr uint16) byte
}

// Decode reads the big-endian 16-bit instruction word at pc and resolves
// it to an Instruction by matching the four-nibble pattern table.
func Decode(mem reader, pc uint16) (Instruction, error) {
	hi := mem.Read(pc)
	lo := mem.Read(pc + 1)
	word := mask.Word(hi, lo)

	_, x := mask.Nibbles(hi)
	y, n := mask.Nibbles(lo)
	nn := lo
	nnn := word & 0x0fff

	fail := func() (Instruction, error) {
		return Instruction{}, &cpuerr.UnknownOpcode{Addr: pc, Bytes: []byte{hi, lo}}
	}

	switch hi >> 4 {
	case 0x0:
		switch lo {
		case 0xe0:
			return Instruction{Mnemonic: CLS}, nil
		case 0xee:
			return Instruction{Mnemonic: RET}, nil
		default:
			return fail()
		}
	case 0x1:
		return Instruction{Mnemonic: JP, NNN: nnn}, nil
	case 0x2:
		return Instruction{Mnemonic: CALL, NNN: nnn}, nil
	case 0x3:
		return Instruction{Mnemonic: SEVxByte, X: x, NN: nn}, nil
	case 0x4:
		return Instruction{Mnemonic: SNEVxByte, X: x, NN: nn}, nil
	case 0x5:
		if n != 0 {
			return fail()
		}
		return Instruction{Mnemonic: SEVxVy, X: x, Y: y}, nil
	case 0x6:
		return Instruction{Mnemonic: LDVxByte, X: x, NN: nn}, nil
	case 0x7:
		return Instruction{Mnemonic: ADDVxByte, X: x, NN: nn}, nil
	case 0x8:
		switch n {
		case 0x0:
			return Instruction{Mnemonic: LDVxVy, X: x, Y: y}, nil
		case 0x1:
			return Instruction{Mnemonic: ORVxVy, X: x, Y: y}, nil
		case 0x2:
			return Instruction{Mnemonic: ANDVxVy, X: x, Y: y}, nil
		case 0x3:
			return Instruction{Mnemonic: XORVxVy, X: x, Y: y}, nil
		case 0x4:
			return Instruction{Mnemonic: ADDVxVy, X: x, Y: y}, nil
		case 0x5:
			return Instruction{Mnemonic: SUBVxVy, X: x, Y: y}, nil
		case 0x6:
			return Instruction{Mnemonic: SHRVx, X: x, Y: y}, nil
		case 0x7:
			return Instruction{Mnemonic: SUBNVxVy, X: x, Y: y}, nil
		case 0xe:
			return Instruction{Mnemonic: SHLVx, X: x, Y: y}, nil
		default:
			return fail()
		}
	case 0x9:
		if n != 0 {
			return fail()
		}
		return Instruction{Mnemonic: SNEVxVy, X: x, Y: y}, nil
	case 0xa:
		return Instruction{Mnemonic: LDIAddr, NNN: nnn}, nil
	case 0xb:
		return Instruction{Mnemonic: JPV0Addr, NNN: nnn}, nil
	case 0xc:
		return Instruction{Mnemonic: RNDVxByte, X: x, NN: nn}, nil
	case 0xd:
		return Instruction{Mnemonic: DRWVxVyN, X: x, Y: y, N: n}, nil
	case 0xe:
		switch nn {
		case 0x9e:
			return Instruction{Mnemonic: SKPVx, X: x}, nil
		case 0xa1:
			return Instruction{Mnemonic: SKNPVx, X: x}, nil
		default:
			return fail()
		}
	case 0xf:
		switch nn {
		case 0x07:
			return Instruction{Mnemonic: LDVxDT, X: x}, nil
		case 0x0a:
			return Instruction{Mnemonic: LDVxK, X: x}, nil
		case 0x15:
			return Instruction{Mnemonic: LDDTVx, X: x}, nil
		case 0x18:
			return Instruction{Mnemonic: LDSTVx, X: x}, nil
		case 0x1e:
			return Instruction{Mnemonic: ADDIVx, X: x}, nil
		case 0x29:
			return Instruction{Mnemonic: LDFVx, X: x}, nil
		case 0x33:
			return Instruction{Mnemonic: LDBVx, X: x}, nil
		case 0x55:
			return Instruction{Mnemonic: LDIVx, X: x}, nil
		case 0x65:
			return Instruction{Mnemonic: LDVxI, X: x}, nil
		default:
			return fail()
		}
	default:
		return fail()
	}
}
