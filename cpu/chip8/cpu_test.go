package chip8

import (
	"testing"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRandom struct{ v byte }

func (f fakeRandom) Byte() byte { return f.v }

type fakeKeys struct {
	down    map[byte]bool
	next    byte
	pressed bool
}

func (f *fakeKeys) IsDown(k byte) bool     { return f.down[k] }
func (f *fakeKeys) Pressed() (byte, bool) { return f.next, f.pressed }

type fakeDisplay struct {
	cleared                bool
	lastOrigin, lastExtent int
	lastOn                 bool
}

func (f *fakeDisplay) Clear() { f.cleared = true }
func (f *fakeDisplay) SetRange(origin, extent int, on bool) {
	f.lastOrigin, f.lastExtent, f.lastOn = origin, extent, on
}

func newTestCpu(t *testing.T) (*Cpu, *bus.AddressMap, *fakeKeys, *fakeDisplay) {
	t.Helper()
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	keys := &fakeKeys{down: map[byte]bool{}}
	display := &fakeDisplay{}
	c := New(b, fakeRandom{v: 0xff}, keys, display)
	return c, b, keys, display
}

func loadProgram(b *bus.AddressMap, at uint16, program []byte) {
	for i, v := range program {
		_, _ = b.Write(at+uint16(i), v)
	}
}

func TestADDVxVySetsCarryOnOverflow(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0x81, 0x24}) // ADD V1, V2
	c.PC = 0x200
	c.V[1] = 0xf0
	c.V[2] = 0x20

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x10), c.V[1])
	assert.Equal(t, byte(1), c.V[0xf])
	assert.Equal(t, uint16(0x202), c.PC)
}

func TestSUBNSetsFlagWhenNoBorrow(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0x81, 0x27}) // SUBN V1, V2
	c.PC = 0x200
	c.V[1] = 0x01
	c.V[2] = 0x05

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x04), c.V[1])
	assert.Equal(t, byte(1), c.V[0xf]) // Vy >= Vx, no borrow
}

func TestLDVxKBlocksUntilKeyPressed(t *testing.T) {
	c, b, keys, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0xf1, 0x0a}) // LD V1, K
	c.PC = 0x200

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x200), c.PC, "PC must not advance while no key is down")
	assert.Equal(t, byte(0), c.V[1])

	keys.pressed = true
	keys.next = 0x7

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, byte(0x7), c.V[1])
}

func TestCLSInvokesDisplayClear(t *testing.T) {
	c, b, _, display := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0x00, 0xe0}) // CLS
	c.PC = 0x200

	require.NoError(t, c.Step())
	assert.True(t, display.cleared)
}

func TestCALLThenRETRoundTrips(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0x23, 0x00}) // CALL $300
	loadProgram(b, 0x300, []byte{0x00, 0xee}) // RET
	c.PC = 0x200

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x300), c.PC)
	assert.Equal(t, byte(1), c.SP)
	assert.Equal(t, uint16(0x202), c.Stack[0])

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, byte(0), c.SP)
}

func TestLDBVxStoresBCDDigits(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0xf1, 0x33}) // LD B, V1
	c.PC = 0x200
	c.V[1] = 123
	c.I = 0x400

	require.NoError(t, c.Step())
	assert.Equal(t, byte(1), b.Read(0x400))
	assert.Equal(t, byte(2), b.Read(0x401))
	assert.Equal(t, byte(3), b.Read(0x402))
}

func TestLDIVxThenLDVxIRoundTrips(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	c.V[0] = 0x11
	c.V[1] = 0x22
	c.V[2] = 0x33
	c.I = 0x400
	loadProgram(b, 0x200, []byte{0xf2, 0x55}) // LD [I], V2 (stores V0..V2)
	c.PC = 0x200

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x11), b.Read(0x400))
	assert.Equal(t, byte(0x33), b.Read(0x402))

	c.V[0], c.V[1], c.V[2] = 0, 0, 0
	loadProgram(b, 0x202, []byte{0xf2, 0x65}) // LD V2, [I]
	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x11), c.V[0])
	assert.Equal(t, byte(0x33), c.V[2])
}

func TestSkipEqualAdvancesExtraTwoBytes(t *testing.T) {
	c, b, _, _ := newTestCpu(t)
	loadProgram(b, 0x200, []byte{0x31, 0x05}) // SE V1, #$05
	c.PC = 0x200
	c.V[1] = 0x05

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x204), c.PC)
}
