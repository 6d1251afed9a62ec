package mos6502

import "github.com/ncatelli/go6502chip8/mask"

// generatorFunc turns one decoded Instruction plus a read-only CPU snapshot
// into the final cycle count and an ordered microcode list. Generators
// never mutate c; they only read its registers and bus to make decisions.
type generatorFunc func(c *Cpu, instr Instruction) (int, []Microcode, error)

var generators = map[Mnemonic]generatorFunc{
	ADC: genADC, SBC: genSBC,
	AND: genLogical(func(a, m byte) byte { return a & m }),
	ORA: genLogical(func(a, m byte) byte { return a | m }),
	EOR: genLogical(func(a, m byte) byte { return a ^ m }),
	CMP: genCompare(ACC), CPX: genCompare(X), CPY: genCompare(Y),
	BIT: genBIT,
	ASL: genShiftRotate(shiftASL), LSR: genShiftRotate(shiftLSR),
	ROL: genShiftRotate(shiftROL), ROR: genShiftRotate(shiftROR),
	INC: genIncDecMemory(1), DEC: genIncDecMemory(0xff),
	INX: genIncDecRegister(X, 1), DEX: genIncDecRegister(X, 0xff),
	INY: genIncDecRegister(Y, 1), DEY: genIncDecRegister(Y, 0xff),
	LDA: genLoad(ACC), LDX: genLoad(X), LDY: genLoad(Y),
	STA: genStore(ACC), STX: genStore(X), STY: genStore(Y),
	TAX: genTransfer(ACC, X, true), TAY: genTransfer(ACC, Y, true),
	TXA: genTransfer(X, ACC, true), TYA: genTransfer(Y, ACC, true),
	TSX: genTransfer(SP, X, true), TXS: genTransfer(X, SP, false),
	CLC: genSetFlag(FlagCarry, false), SEC: genSetFlag(FlagCarry, true),
	CLI: genSetFlag(FlagInterruptDisable, false), SEI: genSetFlag(FlagInterruptDisable, true),
	CLD: genSetFlag(FlagDecimal, false), SED: genSetFlag(FlagDecimal, true),
	CLV: genSetFlag(FlagOverflow, false),
	NOP: genNOP,
	JMP: genJMP, JSR: genJSR, RTS: genRTS,
	PHA: genPush(ACC, false), PHP: genPush(PS, true),
	PLA: genPullAcc, PLP: genPullPS,
	BCC: genBranch(FlagCarry, false), BCS: genBranch(FlagCarry, true),
	BEQ: genBranch(FlagZero, true), BNE: genBranch(FlagZero, false),
	BPL: genBranch(FlagNegative, false), BMI: genBranch(FlagNegative, true),
	BVC: genBranch(FlagOverflow, false), BVS: genBranch(FlagOverflow, true),
}

func setNZ(v byte) []Microcode {
	return []Microcode{
		SetFlag{FlagZero, v == 0},
		SetFlag{FlagNegative, v&0x80 != 0},
	}
}

// genADC implements binary-mode addition with carry. Overflow is the
// standard two's-complement rule: the addends share a sign the result
// doesn't.
func genADC(c *Cpu, instr Instruction) (int, []Microcode, error) {
	m, crossed := operandValue(c, instr)
	a := c.Registers.Acc
	carryIn := 0
	if c.Registers.Flag(FlagCarry) {
		carryIn = 1
	}
	sum := int(a) + int(m) + carryIn
	result := byte(sum)
	ops := []Microcode{
		Write8bitRegister{ACC, result},
		SetFlag{FlagCarry, sum > 0xff},
		SetFlag{FlagOverflow, (a^result)&(m^result)&0x80 != 0},
	}
	ops = append(ops, setNZ(result)...)
	return finalCycles(instr, crossed), ops, nil
}

// genSBC subtracts by adding the one's complement of the operand, which is
// how real 6502 hardware implements it; this makes the overflow formula
// identical to ADC's.
func genSBC(c *Cpu, instr Instruction) (int, []Microcode, error) {
	m, crossed := operandValue(c, instr)
	a := c.Registers.Acc
	m2 := ^m
	carryIn := 0
	if c.Registers.Flag(FlagCarry) {
		carryIn = 1
	}
	sum := int(a) + int(m2) + carryIn
	result := byte(sum)
	ops := []Microcode{
		Write8bitRegister{ACC, result},
		SetFlag{FlagCarry, sum > 0xff},
		SetFlag{FlagOverflow, (a^result)&(m2^result)&0x80 != 0},
	}
	ops = append(ops, setNZ(result)...)
	return finalCycles(instr, crossed), ops, nil
}

func genLogical(f func(a, m byte) byte) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		m, crossed := operandValue(c, instr)
		result := f(c.Registers.Acc, m)
		ops := append([]Microcode{Write8bitRegister{ACC, result}}, setNZ(result)...)
		return finalCycles(instr, crossed), ops, nil
	}
}

func genCompare(reg ByteRegister) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		m, crossed := operandValue(c, instr)
		r := c.Registers.ReadByte(reg)
		result := r - m
		ops := []Microcode{
			SetFlag{FlagCarry, r >= m},
			SetFlag{FlagZero, r == m},
			SetFlag{FlagNegative, result&0x80 != 0},
		}
		return finalCycles(instr, crossed), ops, nil
	}
}

// genBIT tests Acc & memory for zero but reports Negative/Overflow from the
// memory operand's own bits 7 and 6, not from the AND result.
func genBIT(c *Cpu, instr Instruction) (int, []Microcode, error) {
	m, _ := operandValue(c, instr)
	ops := []Microcode{
		SetFlag{FlagZero, c.Registers.Acc&m == 0},
		SetFlag{FlagOverflow, m&0x40 != 0},
		SetFlag{FlagNegative, m&0x80 != 0},
	}
	return instr.BaseCycles, ops, nil
}

type shiftFunc func(c *Cpu, in byte) (out byte, carry bool)

func shiftASL(c *Cpu, in byte) (byte, bool)  { return in << 1, in&0x80 != 0 }
func shiftLSR(c *Cpu, in byte) (byte, bool)  { return in >> 1, in&0x01 != 0 }
func shiftROL(c *Cpu, in byte) (byte, bool) {
	var carryIn byte
	if c.Registers.Flag(FlagCarry) {
		carryIn = 1
	}
	return (in << 1) | carryIn, in&0x80 != 0
}
func shiftROR(c *Cpu, in byte) (byte, bool) {
	var carryIn byte
	if c.Registers.Flag(FlagCarry) {
		carryIn = 0x80
	}
	return (in >> 1) | carryIn, in&0x01 != 0
}

func genShiftRotate(f shiftFunc) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		var in byte
		var addr uint16
		if instr.Mode == Accumulator {
			in = c.Registers.Acc
		} else {
			addr, _ = resolveAddress(c, instr)
			in = c.bus.Read(addr)
		}
		out, carry := f(c, in)

		var ops []Microcode
		if instr.Mode == Accumulator {
			ops = append(ops, Write8bitRegister{ACC, out})
		} else {
			ops = append(ops, WriteMemory{addr, out})
		}
		ops = append(ops, SetFlag{FlagCarry, carry})
		ops = append(ops, setNZ(out)...)
		return instr.BaseCycles, ops, nil
	}
}

func genIncDecMemory(delta byte) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		addr, _ := resolveAddress(c, instr)
		result := c.bus.Read(addr) + delta
		ops := append([]Microcode{WriteMemory{addr, result}}, setNZ(result)...)
		return instr.BaseCycles, ops, nil
	}
}

func genIncDecRegister(reg ByteRegister, delta byte) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		result := c.Registers.ReadByte(reg) + delta
		ops := append([]Microcode{Write8bitRegister{reg, result}}, setNZ(result)...)
		return instr.BaseCycles, ops, nil
	}
}

func genLoad(reg ByteRegister) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		v, crossed := operandValue(c, instr)
		ops := append([]Microcode{Write8bitRegister{reg, v}}, setNZ(v)...)
		return finalCycles(instr, crossed), ops, nil
	}
}

func genStore(reg ByteRegister) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		addr, _ := resolveAddress(c, instr)
		return instr.BaseCycles, []Microcode{WriteMemory{addr, c.Registers.ReadByte(reg)}}, nil
	}
}

func genTransfer(from, to ByteRegister, flags bool) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		v := c.Registers.ReadByte(from)
		ops := []Microcode{Write8bitRegister{to, v}}
		if flags {
			ops = append(ops, setNZ(v)...)
		}
		return instr.BaseCycles, ops, nil
	}
}

func genSetFlag(f Flag, v bool) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		return instr.BaseCycles, []Microcode{SetFlag{f, v}}, nil
	}
}

func genNOP(c *Cpu, instr Instruction) (int, []Microcode, error) {
	return instr.BaseCycles, nil, nil
}

// genJMP pre-subtracts the instruction's own length from the resolved
// target, since Step always adds instr.Bytes to PC after applying
// microcode.
func genJMP(c *Cpu, instr Instruction) (int, []Microcode, error) {
	target, _ := resolveAddress(c, instr)
	return instr.BaseCycles, []Microcode{Write16bitRegister{PCReg, target - uint16(instr.Bytes)}}, nil
}

// genJSR pushes the address of the last byte of the JSR instruction
// (return_address - 1, the convention RTS expects) high byte first, then
// low byte, decrementing SP after each push, before jumping.
func genJSR(c *Cpu, instr Instruction) (int, []Microcode, error) {
	target, _ := resolveAddress(c, instr)
	retAddr := c.Registers.PC + uint16(instr.Bytes) - 1
	sp0 := c.Registers.SP
	ops := []Microcode{
		WriteMemory{0x0100 | uint16(sp0), mask.HighByte(retAddr)},
		Dec8bitRegister{SP, 1},
		WriteMemory{0x0100 | uint16(sp0-1), mask.LowByte(retAddr)},
		Dec8bitRegister{SP, 1},
		Write16bitRegister{PCReg, target - uint16(instr.Bytes)},
	}
	return instr.BaseCycles, ops, nil
}

// genRTS pulls the low then high byte of the pushed return address from
// the two slots above SP (increment-then-load, as PLA does), advances SP
// by 2, and resumes at returnAddress + 1.
func genRTS(c *Cpu, instr Instruction) (int, []Microcode, error) {
	sp0 := c.Registers.SP
	lo := c.bus.Read(0x0100 | uint16(sp0+1))
	hi := c.bus.Read(0x0100 | uint16(sp0+2))
	target := mask.Word(hi, lo) + 1
	ops := []Microcode{
		Inc8bitRegister{SP, 2},
		Write16bitRegister{PCReg, target - uint16(instr.Bytes)},
	}
	return instr.BaseCycles, ops, nil
}

// genPush stores a register at the current stack slot then decrements SP.
// PHP additionally forces the break and unused bits high, matching the
// value every pushed-by-software status byte carries.
func genPush(reg ByteRegister, isStatus bool) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		v := c.Registers.ReadByte(reg)
		if isStatus {
			v |= 0x30
		}
		ops := []Microcode{
			WriteMemory{0x0100 | uint16(c.Registers.SP), v},
			Dec8bitRegister{SP, 1},
		}
		return instr.BaseCycles, ops, nil
	}
}

// genPullAcc increments SP then loads Acc from the new top of stack.
func genPullAcc(c *Cpu, instr Instruction) (int, []Microcode, error) {
	v := c.bus.Read(0x0100 | uint16(c.Registers.SP+1))
	ops := append([]Microcode{
		Inc8bitRegister{SP, 1},
		Write8bitRegister{ACC, v},
	}, setNZ(v)...)
	return instr.BaseCycles, ops, nil
}

// genPullPS increments SP then loads PS, clearing the break bit and
// forcing the unused bit high, the inverse of what PHP stored.
func genPullPS(c *Cpu, instr Instruction) (int, []Microcode, error) {
	v := c.bus.Read(0x0100 | uint16(c.Registers.SP+1))
	v = (v &^ 0x10) | 0x20
	ops := []Microcode{
		Inc8bitRegister{SP, 1},
		Write8bitRegister{PS, v},
	}
	return instr.BaseCycles, ops, nil
}

// genBranch implements the relative-addressing branch timing table: 2
// cycles untaken, 3 taken within the page, 4 taken across a page boundary.
func genBranch(f Flag, takenWhen bool) generatorFunc {
	return func(c *Cpu, instr Instruction) (int, []Microcode, error) {
		if c.Registers.Flag(f) != takenWhen {
			return 2, nil, nil
		}
		nextPC := c.Registers.PC + uint16(instr.Bytes)
		offset := int8(instr.Operand[0])
		target := uint16(int32(nextPC) + int32(offset))
		cycles := 3
		if mask.HighByte(nextPC) != mask.HighByte(target) {
			cycles = 4
		}
		return cycles, []Microcode{Write16bitRegister{PCReg, target - uint16(instr.Bytes)}}, nil
	}
}

// finalCycles applies the single extra cycle a same-instruction page
// crossing costs on indexed read operations.
func finalCycles(instr Instruction, pageCrossed bool) int {
	if pageCrossed {
		return instr.BaseCycles + 1
	}
	return instr.BaseCycles
}
