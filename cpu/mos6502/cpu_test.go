package mos6502

import (
	"testing"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpuerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCpu(t *testing.T) (*Cpu, *bus.AddressMap) {
	t.Helper()
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	return New(b), b
}

func loadProgram(b *bus.AddressMap, at uint16, program []byte) {
	for i, v := range program {
		_, _ = b.Write(at+uint16(i), v)
	}
}

func TestADCImmediateSetsOverflowAndNegative(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x0200, []byte{0x69, 0x50}) // ADC #$50
	c.PC = 0x0200
	c.Acc = 0x50
	c.SetFlag(FlagCarry, false)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, cycles)
	assert.Equal(t, byte(0xa0), c.Acc)
	assert.True(t, c.Flag(FlagNegative))
	assert.True(t, c.Flag(FlagOverflow))
	assert.False(t, c.Flag(FlagCarry))
	assert.False(t, c.Flag(FlagZero))
	assert.Equal(t, uint16(0x0202), c.PC)
}

func TestSBCImmediateBorrow(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x0200, []byte{0xe9, 0x01}) // SBC #$01
	c.PC = 0x0200
	c.Acc = 0x00
	c.SetFlag(FlagCarry, true) // no borrow in

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), c.Acc)
	assert.False(t, c.Flag(FlagCarry)) // borrow occurred
	assert.True(t, c.Flag(FlagNegative))
}

func TestBranchNotTakenCostsTwoCycles(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x00f0, []byte{0xb0, 0x10}) // BCS +16
	c.PC = 0x00f0
	c.SetFlag(FlagCarry, false)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(0x00f2), c.PC)
}

func TestBranchTakenAcrossPageCostsFourCycles(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x00f0, []byte{0xb0, 0x10}) // BCS +16
	c.PC = 0x00f0
	c.SetFlag(FlagCarry, true)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0102), c.PC)
}

func TestLDAZeroPageIndexedWithXWraps(t *testing.T) {
	c, b := newTestCpu(t)
	_, _ = b.Write(0x0004, 0x2a) // effective address after (0xff+5) wraps to 0x04
	loadProgram(b, 0x0200, []byte{0xb5, 0xff})
	c.PC = 0x0200
	c.X = 5

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x2a), c.Acc)
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x0200, []byte{0x20, 0x00, 0x03}) // JSR $0300
	loadProgram(b, 0x0300, []byte{0x60})             // RTS
	c.PC = 0x0200
	c.SP = 0xfd

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 6, cycles)
	assert.Equal(t, uint16(0x0300), c.PC)
	assert.Equal(t, byte(0xfb), c.SP)

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), c.PC)
	assert.Equal(t, byte(0xfd), c.SP)
}

func TestPHAThenPLARoundTrips(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x0200, []byte{0x48, 0xa9, 0x00, 0x68}) // PHA; LDA #$00; PLA
	c.PC = 0x0200
	c.Acc = 0x7f
	c.SP = 0xfd

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0xfc), c.SP)

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), c.Acc)

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7f), c.Acc)
	assert.Equal(t, byte(0xfd), c.SP)
}

func TestUnknownOpcodeLeavesStateUntouched(t *testing.T) {
	c, b := newTestCpu(t)
	loadProgram(b, 0x0200, []byte{0x00}) // BRK, deliberately undecoded
	c.PC = 0x0200
	c.Acc = 0x42

	_, err := c.Step()
	require.Error(t, err)
	var unknown *cpuerr.UnknownOpcode
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint16(0x0200), c.PC)
	assert.Equal(t, byte(0x42), c.Acc)
}
