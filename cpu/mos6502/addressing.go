package mos6502

import "github.com/ncatelli/go6502chip8/mask"

// resolveAddress computes the effective address for a decoded instruction's
// addressing mode, along with whether resolving it crossed a page boundary
// (relevant only to the indexed/indirect-indexed modes). Implied,
// Accumulator and Immediate carry no effective address and are not handled
// here; callers branch on instr.Mode before calling this.
func resolveAddress(c *Cpu, instr Instruction) (addr uint16, pageCrossed bool) {
	switch instr.Mode {
	case ZeroPage:
		return uint16(instr.Operand[0]), false

	case ZeroPageIndexedWithX:
		return uint16(instr.Operand[0] + c.Registers.X), false

	case ZeroPageIndexedWithY:
		return uint16(instr.Operand[0] + c.Registers.Y), false

	case Absolute:
		return mask.Word(instr.Operand[1], instr.Operand[0]), false

	case AbsoluteIndexedWithX:
		base := mask.Word(instr.Operand[1], instr.Operand[0])
		addr = base + uint16(c.Registers.X)
		return addr, mask.HighByte(base) != mask.HighByte(addr)

	case AbsoluteIndexedWithY:
		base := mask.Word(instr.Operand[1], instr.Operand[0])
		addr = base + uint16(c.Registers.Y)
		return addr, mask.HighByte(base) != mask.HighByte(addr)

	case XIndexedIndirect:
		ptr := instr.Operand[0] + c.Registers.X
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16(ptr + 1))
		return mask.Word(hi, lo), false

	case IndirectYIndexed:
		ptr := instr.Operand[0]
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16(ptr + 1))
		base := mask.Word(hi, lo)
		addr = base + uint16(c.Registers.Y)
		return addr, mask.HighByte(base) != mask.HighByte(addr)

	case Indirect:
		ptr := mask.Word(instr.Operand[1], instr.Operand[0])
		lo := c.bus.Read(ptr)
		hi := c.bus.Read(ptr + 1)
		return mask.Word(hi, lo), false

	default:
		panic("mos6502: mode has no effective address")
	}
}

// operandValue resolves the byte an ALU/load operation reads: the operand
// byte itself for Immediate, otherwise the memory cell at the effective
// address.
func operandValue(c *Cpu, instr Instruction) (value byte, pageCrossed bool) {
	if instr.Mode == Immediate {
		return instr.Operand[0], false
	}
	addr, crossed := resolveAddress(c, instr)
	return c.bus.Read(addr), crossed
}
