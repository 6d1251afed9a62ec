package chip8

import (
	"testing"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpuerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDRWPopulatesAllNibbles(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x200, []byte{0xd1, 0x25}) // DRW V1, V2, 5

	instr, err := Decode(b, 0x200)
	require.NoError(t, err)
	assert.Equal(t, DRWVxVyN, instr.Mnemonic)
	assert.Equal(t, byte(1), instr.X)
	assert.Equal(t, byte(2), instr.Y)
	assert.Equal(t, byte(5), instr.N)
}

func TestDecodeLDIAddrParsesTwelveBitAddress(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x200, []byte{0xa3, 0x45}) // LD I, $345

	instr, err := Decode(b, 0x200)
	require.NoError(t, err)
	assert.Equal(t, LDIAddr, instr.Mnemonic)
	assert.Equal(t, uint16(0x345), instr.NNN)
}

func TestDecodeUnknownSysInstructionFails(t *testing.T) {
	b := bus.New()
	require.NoError(t, b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)))
	loadProgram(b, 0x200, []byte{0x02, 0x34}) // 0NNN (SYS), deliberately not implemented

	_, err := Decode(b, 0x200)
	require.Error(t, err)
	var unknown *cpuerr.UnknownOpcode
	assert.ErrorAs(t, err, &unknown)
}
