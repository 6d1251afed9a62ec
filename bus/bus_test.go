package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUnallocatedReturnsZero(t *testing.T) {
	m := New()
	assert.Equal(t, byte(0x00), m.Read(0x1234))
}

func TestWriteUnallocatedFails(t *testing.T) {
	m := New()
	_, err := m.Write(0x1234, 0x42)
	require.Error(t, err)
	var unallocated *UnallocatedError
	assert.ErrorAs(t, err, &unallocated)
	assert.Equal(t, uint16(0x1234), unallocated.Addr)
}

func TestRegisterOverlapFails(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(Range{0x0000, 0x1000}, NewMemory(0x0000, 0x1000)))

	err := m.Register(Range{0x0f00, 0x2000}, NewMemory(0x0f00, 0x1000))
	require.Error(t, err)
	var overlap *OverlapError
	assert.ErrorAs(t, err, &overlap)
}

func TestRegisterAdjacentRangesDoNotOverlap(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(Range{0x0000, 0x1000}, NewMemory(0x0000, 0x1000)))
	require.NoError(t, m.Register(Range{0x1000, 0x2000}, NewMemory(0x1000, 0x1000)))
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(Range{0x0000, 0x1000}, NewMemory(0x0000, 0x1000)))

	_, err := m.Write(0x0500, 0x42)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), m.Read(0x0500))
}

func TestWriteToROMFails(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(Range{0x8000, 0x9000}, NewROM(0x8000, []byte{0xea, 0xea})))

	assert.Equal(t, byte(0xea), m.Read(0x8000))
	_, err := m.Write(0x8000, 0x00)
	require.Error(t, err)
}

func TestLookupIsRangeAgnosticOfRegistrationOrder(t *testing.T) {
	m1 := New()
	require.NoError(t, m1.Register(Range{0x0000, 0x100}, NewMemory(0x0000, 0x100)))
	require.NoError(t, m1.Register(Range{0x100, 0x200}, NewMemory(0x100, 0x100)))

	m2 := New()
	require.NoError(t, m2.Register(Range{0x100, 0x200}, NewMemory(0x100, 0x100)))
	require.NoError(t, m2.Register(Range{0x0000, 0x100}, NewMemory(0x0000, 0x100)))

	_, _ = m1.Write(0x0150, 7)
	_, _ = m2.Write(0x0150, 7)
	assert.Equal(t, m1.Read(0x0150), m2.Read(0x0150))
}
