package mos6502

// Microcode is the closed set of elementary state mutations a 6502
// operation lowers into. Each variant mutates exactly one piece of CPU
// state; a generator emits an ordered, finite list of them from a single
// snapshot decision, never mutating state itself. This mirrors
// original_source's microcode.rs enum, translated from a Rust sum type
// into the tagged-interface shape DESIGN.md records: one marker method,
// one concrete struct per tag.
type Microcode interface {
	apply(c *Cpu) error
}

// WriteMemory writes Value to Addr via the CPU's address map.
type WriteMemory struct {
	Addr  uint16
	Value byte
}

func (m WriteMemory) apply(c *Cpu) error {
	if _, err := c.bus.Write(m.Addr, m.Value); err != nil {
		return busErrorAt(m.Addr, "WriteMemory", err)
	}
	return nil
}

// Write8bitRegister overwrites an 8-bit register.
type Write8bitRegister struct {
	Register ByteRegister
	Value    byte
}

func (m Write8bitRegister) apply(c *Cpu) error {
	c.Registers.WriteByte(m.Register, m.Value)
	return nil
}

// Inc8bitRegister adds Value to an 8-bit register, wrapping at 8 bits.
type Inc8bitRegister struct {
	Register ByteRegister
	Value    byte
}

func (m Inc8bitRegister) apply(c *Cpu) error {
	c.Registers.WriteByte(m.Register, c.Registers.ReadByte(m.Register)+m.Value)
	return nil
}

// Dec8bitRegister subtracts Value from an 8-bit register, wrapping at 8
// bits.
type Dec8bitRegister struct {
	Register ByteRegister
	Value    byte
}

func (m Dec8bitRegister) apply(c *Cpu) error {
	c.Registers.WriteByte(m.Register, c.Registers.ReadByte(m.Register)-m.Value)
	return nil
}

// Write16bitRegister overwrites the 16-bit register (the program counter).
type Write16bitRegister struct {
	Register WordRegister
	Value    uint16
}

func (m Write16bitRegister) apply(c *Cpu) error {
	c.Registers.WriteWord(m.Register, m.Value)
	return nil
}

// Inc16bitRegister adds Value to a 16-bit register, wrapping at 16 bits.
type Inc16bitRegister struct {
	Register WordRegister
	Value    uint16
}

func (m Inc16bitRegister) apply(c *Cpu) error {
	c.Registers.WriteWord(m.Register, c.Registers.ReadWord(m.Register)+m.Value)
	return nil
}

// Dec16bitRegister subtracts Value from a 16-bit register, wrapping at 16
// bits.
type Dec16bitRegister struct {
	Register WordRegister
	Value    uint16
}

func (m Dec16bitRegister) apply(c *Cpu) error {
	c.Registers.WriteWord(m.Register, c.Registers.ReadWord(m.Register)-m.Value)
	return nil
}

// SetFlag edits one bit of the processor status register.
type SetFlag struct {
	Flag  Flag
	Value bool
}

func (m SetFlag) apply(c *Cpu) error {
	c.Registers.SetFlag(m.Flag, m.Value)
	return nil
}
