package chip8

// generatorFunc turns one decoded Instruction plus a read-only CPU
// snapshot into the ordered microcode list a Step will apply. CHIP-8
// generators don't report a cycle count: spec.md models CHIP-8 timing at
// the frame/timer level (DT/ST), not per-instruction bus cycles the way
// 6502 is, so there is nothing analogous to mos6502.finalCycles here.
type generatorFunc func(c *Cpu, instr Instruction) ([]Microcode, error)

var generators = map[Mnemonic]generatorFunc{
	CLS:  genCLS,
	RET:  genRET,
	JP:   genJP,
	CALL: genCALL,

	SEVxByte:  genSkip(func(c *Cpu, i Instruction) bool { return c.V[i.X] == i.NN }),
	SNEVxByte: genSkip(func(c *Cpu, i Instruction) bool { return c.V[i.X] != i.NN }),
	SEVxVy:    genSkip(func(c *Cpu, i Instruction) bool { return c.V[i.X] == c.V[i.Y] }),
	SNEVxVy:   genSkip(func(c *Cpu, i Instruction) bool { return c.V[i.X] != c.V[i.Y] }),
	SKPVx:     genSkip(func(c *Cpu, i Instruction) bool { return c.keys.IsDown(c.V[i.X]) }),
	SKNPVx:    genSkip(func(c *Cpu, i Instruction) bool { return !c.keys.IsDown(c.V[i.X]) }),

	LDVxByte:  genLDVxByte,
	ADDVxByte: genADDVxByte,
	LDVxVy:    genALU(func(c *Cpu, x, y byte) (byte, *byte) { return y, nil }),
	ORVxVy:    genALU(func(c *Cpu, x, y byte) (byte, *byte) { return x | y, nil }),
	ANDVxVy:   genALU(func(c *Cpu, x, y byte) (byte, *byte) { return x & y, nil }),
	XORVxVy:   genALU(func(c *Cpu, x, y byte) (byte, *byte) { return x ^ y, nil }),
	ADDVxVy:   genALU(aluADD),
	SUBVxVy:   genALU(aluSUB),
	SUBNVxVy:  genALU(aluSUBN),
	SHRVx:     genALU(aluSHR),
	SHLVx:     genALU(aluSHL),

	LDIAddr:  genLDIAddr,
	JPV0Addr: genJPV0Addr,
	RNDVxByte: genRNDVxByte,
	DRWVxVyN: genDRW,

	LDVxDT: genLDVxDT,
	LDVxK:  genLDVxK,
	LDDTVx: genLDDTVx,
	LDSTVx: genLDSTVx,
	ADDIVx: genADDIVx,
	LDFVx:  genLDFVx,
	LDBVx:  genLDBVx,
	LDIVx:  genLDIVx,
	LDVxI:  genLDVxI,
}

func genCLS(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{ClearDisplay{}}, nil
}

// genRET reads the return address off the top of the call stack against
// the pre-apply snapshot, then pops and jumps. Pre-subtracts 2 from the
// target since Step always adds 2 to PC after applying.
func genRET(c *Cpu, instr Instruction) ([]Microcode, error) {
	if c.SP == 0 {
		return nil, &StackUnderflowError{}
	}
	target := c.Stack[c.SP-1]
	return []Microcode{
		PopStack{},
		Write16bitRegister{PCReg, target - 2},
	}, nil
}

func genJP(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write16bitRegister{PCReg, instr.NNN - 2}}, nil
}

// genCALL pushes the address of the instruction following CALL (PC+2, the
// already-advanced return point) and jumps to NNN.
func genCALL(c *Cpu, instr Instruction) ([]Microcode, error) {
	retAddr := c.PC + 2
	return []Microcode{
		PushStack{retAddr},
		Write16bitRegister{PCReg, instr.NNN - 2},
	}, nil
}

func genJPV0Addr(c *Cpu, instr Instruction) ([]Microcode, error) {
	target := instr.NNN + uint16(c.V[V0])
	return []Microcode{Write16bitRegister{PCReg, target - 2}}, nil
}

// genSkip advances PC by an extra 2 bytes when cond holds, for the six
// Sx.../SKP/SKNP opcodes that differ only in their condition.
func genSkip(cond func(c *Cpu, i Instruction) bool) generatorFunc {
	return func(c *Cpu, instr Instruction) ([]Microcode, error) {
		if cond(c, instr) {
			return []Microcode{Inc16bitRegister{PCReg, 2}}, nil
		}
		return nil, nil
	}
}

func genLDVxByte(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write8bitRegister{ByteRegister(instr.X), instr.NN}}, nil
}

func genADDVxByte(c *Cpu, instr Instruction) ([]Microcode, error) {
	result := c.V[instr.X] + instr.NN
	return []Microcode{Write8bitRegister{ByteRegister(instr.X), result}}, nil
}

// aluFunc computes the 8xy· result and, when the opcode sets VF as a
// flag, the flag value to write there.
type aluFunc func(c *Cpu, x, y byte) (result byte, flag *byte)

func aluADD(c *Cpu, x, y byte) (byte, *byte) {
	sum := int(x) + int(y)
	result := byte(sum)
	flag := boolByte(sum > 0xff)
	return result, &flag
}

func aluSUB(c *Cpu, x, y byte) (byte, *byte) {
	flag := boolByte(x >= y)
	return x - y, &flag
}

func aluSUBN(c *Cpu, x, y byte) (byte, *byte) {
	flag := boolByte(y >= x)
	return y - x, &flag
}

func aluSHR(c *Cpu, x, y byte) (byte, *byte) {
	flag := boolByte(x&0x01 != 0)
	return x >> 1, &flag
}

func aluSHL(c *Cpu, x, y byte) (byte, *byte) {
	flag := boolByte(x&0x80 != 0)
	return x << 1, &flag
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// genALU wires one 8xy· arithmetic/logic op: read Vx and Vy, apply f, write
// the result to Vx, and write VF last if f reports a flag (VF itself may
// be the destination register, so the flag write must come after the
// result write, matching the documented execution order).
func genALU(f aluFunc) generatorFunc {
	return func(c *Cpu, instr Instruction) ([]Microcode, error) {
		result, flag := f(c, c.V[instr.X], c.V[instr.Y])
		ops := []Microcode{Write8bitRegister{ByteRegister(instr.X), result}}
		if flag != nil {
			ops = append(ops, Write8bitRegister{VF, *flag})
		}
		return ops, nil
	}
}

func genLDIAddr(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write16bitRegister{IReg, instr.NNN}}, nil
}

func genRNDVxByte(c *Cpu, instr Instruction) ([]Microcode, error) {
	v := c.random.Byte() & instr.NN
	return []Microcode{Write8bitRegister{ByteRegister(instr.X), v}}, nil
}

// genDRW decodes Dxyn fully (X, Y, N are all populated on the returned
// Instruction) but deliberately emits no microcode: sprite/display
// rendering is out of scope, per SetDisplayRange's doc comment. VF is left
// untouched rather than cleared, since no collision was actually computed.
func genDRW(c *Cpu, instr Instruction) ([]Microcode, error) {
	return nil, nil
}

func genLDVxDT(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write8bitRegister{ByteRegister(instr.X), c.DT}}, nil
}

// genLDVxK polls the keypad. If no key is down it re-executes itself: the
// generator pre-subtracts 2 from PC so Step's += 2 leaves PC unchanged,
// the documented CHIP-8 behavior of "blocking" without missing other
// interpreter work (timers still tick every frame around Step).
func genLDVxK(c *Cpu, instr Instruction) ([]Microcode, error) {
	key, ok := c.keys.Pressed()
	if !ok {
		return []Microcode{Write16bitRegister{PCReg, c.PC - 2}}, nil
	}
	return []Microcode{Write8bitRegister{ByteRegister(instr.X), key}}, nil
}

func genLDDTVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write8bitRegister{DT, c.V[instr.X]}}, nil
}

func genLDSTVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write8bitRegister{ST, c.V[instr.X]}}, nil
}

func genADDIVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write16bitRegister{IReg, c.I + uint16(c.V[instr.X])}}, nil
}

// genLDFVx points I at the built-in font sprite for the low nibble of Vx.
// Each font glyph is 5 bytes; the font table's base address is a
// convention owned by whatever loads the interpreter's memory image, here
// fixed at 0x0000 to match where original_source's font table is blitted
// at startup.
func genLDFVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	return []Microcode{Write16bitRegister{IReg, uint16(c.V[instr.X]&0x0f) * 5}}, nil
}

// genLDBVx stores the binary-coded decimal digits of Vx at I, I+1, I+2.
// This is the corrected Fx33 opcode; the source implementation emitted
// BCD for Fx18, which real CHIP-8 reserves for LD ST, Vx (see LDSTVx).
func genLDBVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	v := c.V[instr.X]
	return []Microcode{
		WriteMemory{c.I, v / 100},
		WriteMemory{c.I + 1, (v / 10) % 10},
		WriteMemory{c.I + 2, v % 10},
	}, nil
}

// genLDIVx stores V0..Vx inclusive to memory starting at I.
func genLDIVx(c *Cpu, instr Instruction) ([]Microcode, error) {
	ops := make([]Microcode, 0, instr.X+1)
	for i := byte(0); i <= instr.X; i++ {
		ops = append(ops, WriteMemory{c.I + uint16(i), c.V[i]})
	}
	return ops, nil
}

// genLDVxI loads V0..Vx inclusive from memory starting at I.
func genLDVxI(c *Cpu, instr Instruction) ([]Microcode, error) {
	ops := make([]Microcode, 0, instr.X+1)
	for i := byte(0); i <= instr.X; i++ {
		ops = append(ops, Write8bitRegister{ByteRegister(i), c.bus.Read(c.I + uint16(i))})
	}
	return ops, nil
}
