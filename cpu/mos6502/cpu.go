package mos6502

import (
	"fmt"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpuerr"
)

// Cpu is a 6502 register file wired to an address map. It has no notion of
// clock rate; Step advances exactly one instruction and reports how many
// cycles that instruction is documented to take.
type Cpu struct {
	Registers
	bus *bus.AddressMap
}

// New returns a Cpu with all registers zeroed except SP, which resets to
// 0xFD per the documented 6502 reset sequence (three phantom stack pushes
// before the first real one), and PS, which resets to 0x24 (interrupt
// disable and the unused bit set).
func New(b *bus.AddressMap) *Cpu {
	return &Cpu{
		Registers: Registers{SP: 0xfd, PS: 0x24},
		bus:       b,
	}
}

// Reset loads the program counter from the reset vector at 0xFFFC/0xFFFD.
func (c *Cpu) Reset() {
	lo := c.bus.Read(0xfffc)
	hi := c.bus.Read(0xfffd)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func busErrorAt(addr uint16, op string, err error) error {
	return &cpuerr.BusError{Addr: addr, Op: op, Err: err}
}

// Generate decodes nothing itself; given an already-decoded Instruction it
// looks up that mnemonic's generator and runs it against the current
// register/bus snapshot, returning the cycle count and microcode list a
// Step will apply.
func (c *Cpu) Generate(instr Instruction) (int, []Microcode, error) {
	gen, ok := generators[instr.Mnemonic]
	if !ok {
		return 0, nil, fmt.Errorf("mos6502: no generator registered for %s", instr.Mnemonic)
	}
	return gen(c, instr)
}

// Step performs one fetch-decode-generate-apply cycle: decode the
// instruction at PC, generate its microcode against the pre-apply
// snapshot, apply each microcode op in order, then advance PC by the
// instruction's byte length. A decode failure leaves all state untouched
// and returns *cpuerr.UnknownOpcode; a failed microcode application stops
// applying further ops and returns the underlying bus error, leaving
// whatever ops already applied in place (mirroring how a real CPU can't
// roll back a bus write mid-instruction).
func (c *Cpu) Step() (int, error) {
	instr, err := Decode(c.bus, c.PC)
	if err != nil {
		return 0, err
	}

	cycles, ops, err := c.Generate(instr)
	if err != nil {
		return 0, err
	}

	for _, op := range ops {
		if err := op.apply(c); err != nil {
			return 0, err
		}
	}

	c.PC += uint16(instr.Bytes)
	return cycles, nil
}
