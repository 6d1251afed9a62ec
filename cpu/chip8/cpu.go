package chip8

import (
	"fmt"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpuerr"
)

// Random supplies the byte RND Vx, byte masks against. Swappable so tests
// can inject a deterministic source.
type Random interface {
	Byte() byte
}

// Keys reports the state of the 16-key hex keypad. Pressed is polled by
// LD Vx, K, which blocks (by not advancing PC) until it returns ok. IsDown
// is polled by SKP/SKNP.
type Keys interface {
	Pressed() (key byte, ok bool)
	IsDown(key byte) bool
}

// Display receives the one display operation this core wires without
// implementing sprite semantics: CLS, via Clear. SetRange mirrors the sink
// SetDisplayRange targets, but no generator emits that op (Dxyn decodes but
// produces no microcode, per the display non-goal), so SetRange is never
// actually called; see SetDisplayRange's doc comment.
type Display interface {
	Clear()
	SetRange(origin, extent int, on bool)
}

// Cpu is a CHIP-8 register file, call stack and address map, plus its
// three pluggable I/O capabilities.
type Cpu struct {
	Registers
	Stack [16]uint16
	SP    byte

	bus     *bus.AddressMap
	random  Random
	keys    Keys
	display Display
}

// New returns a Cpu with PC at the conventional CHIP-8 program origin,
// 0x200 (the first 512 bytes are reserved for the interpreter and font
// data on real hardware).
func New(b *bus.AddressMap, random Random, keys Keys, display Display) *Cpu {
	return &Cpu{
		Registers: Registers{PC: 0x200},
		bus:       b,
		random:    random,
		keys:      keys,
		display:   display,
	}
}

func busErrorAt(addr uint16, op string, err error) error {
	return &cpuerr.BusError{Addr: addr, Op: op, Err: err}
}

// Generate looks up the decoded instruction's generator and runs it
// against the current snapshot.
func (c *Cpu) Generate(instr Instruction) ([]Microcode, error) {
	gen, ok := generators[instr.Mnemonic]
	if !ok {
		return nil, fmt.Errorf("chip8: no generator registered for %s", instr.Mnemonic)
	}
	return gen(c, instr)
}

// Step performs one fetch-decode-generate-apply cycle, then advances PC by
// 2 bytes. Every CHIP-8 instruction is exactly one word wide, so unlike
// 6502's variable-length Instruction.Bytes, the advance is a flat
// constant; jump/call/return ops pre-subtract it from their target the
// same way 6502's JMP does, and skip ops add a further 2 on top of it.
func (c *Cpu) Step() error {
	instr, err := Decode(c.bus, c.PC)
	if err != nil {
		return err
	}

	ops, err := c.Generate(instr)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := op.apply(c); err != nil {
			return err
		}
	}

	c.PC += 2
	return nil
}
