package mos6502

import (
	"testing"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpuerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAbsoluteReadsTwoOperandBytes(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x0200, []byte{0x4c, 0x34, 0x12}) // JMP $1234

	instr, err := Decode(b, 0x0200)
	require.NoError(t, err)
	assert.Equal(t, JMP, instr.Mnemonic)
	assert.Equal(t, Absolute, instr.Mode)
	assert.Equal(t, 3, instr.Bytes)
	assert.Equal(t, byte(0x34), instr.Operand[0])
	assert.Equal(t, byte(0x12), instr.Operand[1])
}

func TestDecodeImpliedReadsNoOperand(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x0200, []byte{0xea}) // NOP

	instr, err := Decode(b, 0x0200)
	require.NoError(t, err)
	assert.Equal(t, NOP, instr.Mnemonic)
	assert.Equal(t, 1, instr.Bytes)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x0200, []byte{0x40}) // RTI, deliberately not implemented

	_, err := Decode(b, 0x0200)
	require.Error(t, err)
	var unknown *cpuerr.UnknownOpcode
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint16(0x0200), unknown.Addr)
}
