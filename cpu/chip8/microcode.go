package chip8

// Microcode is the closed set of elementary state mutations a CHIP-8
// operation lowers into. It mirrors mos6502's Microcode shape (one marker
// method, one struct per tag) minus SetFlag, which the 6502 core alone
// needs, plus PushStack/PopStack and SetDisplayRange, which only CHIP-8
// needs.
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

// Write16bitRegister overwrites a 16-bit register (I or PC).
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

// PushStack stores Value at the current stack slot and advances SP,
// post-increment: the value lands at the slot SP pointed to before the
// push, then SP moves past it.
type PushStack struct {
	Value uint16
}

func (m PushStack) apply(c *Cpu) error {
	if int(c.SP) >= len(c.Stack) {
		return &StackOverflowError{SP: c.SP}
	}
	c.Stack[c.SP] = m.Value
	c.SP++
	return nil
}

// PopStack retreats SP, pre-decrement-implied: callers read
// Stack[SP-1] themselves (during generation, against the pre-apply
// snapshot) before emitting this op, since apply only performs the
// decrement.
type PopStack struct{}

func (m PopStack) apply(c *Cpu) error {
	if c.SP == 0 {
		return &StackUnderflowError{}
	}
	c.SP--
	return nil
}

// ClearDisplay invokes the Display capability's Clear, if one is wired.
// CLS is the only display operation this core gives real semantics to.
type ClearDisplay struct{}

func (m ClearDisplay) apply(c *Cpu) error {
	if c.display != nil {
		c.display.Clear()
	}
	return nil
}

// SetDisplayRange sets or clears a run of Extent pixels starting at Origin
// via the Display capability's SetRange. No generator currently emits this
// op: Dxyn decodes but, per the display non-goal, produces no draw
// microcode. The type exists so the microcode set mirrors the full tag set
// CHIP-8 defines and is ready should sprite rendering be added later.
type SetDisplayRange struct {
	Origin int
	Extent int
	On     bool
}

func (m SetDisplayRange) apply(c *Cpu) error {
	if c.display != nil {
		c.display.SetRange(m.Origin, m.Extent, m.On)
	}
	return nil
}
