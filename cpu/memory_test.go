package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInc16(t *testing.T) {
	table := []struct {
		have, want uint16
	}{
		{0x0000, 0x0001},
		{0x00ff, 0x0100},
		{0x12fe, 0x12ff},
		{0xfeff, 0xff00},
		{0xffff, 0x0000},
	}

	m := make(Memory, MemoryCapacity)
	for _, e := range table {
		m.SetU16(PC, e.have)
		m.Inc16(PC)
		assert.Equal(t, e.want, m.U16(PC), "inc %04x", e.have)
	}
}

func TestDec16(t *testing.T) {
	table := []struct {
		have, want uint16
	}{
		{0x0001, 0x0000},
		{0x0100, 0x00ff},
		{0xff00, 0xfeff},
		{0x0000, 0xffff},
	}

	m := make(Memory, MemoryCapacity)
	for _, e := range table {
		m.SetU16(SP, e.have)
		m.Dec16(SP)
		assert.Equal(t, e.want, m.U16(SP), "dec %04x", e.have)
	}
}

func TestMemoryPairsAreBigEndian(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m.reset()

	assert.EqualValues(t, 0xfe, m[SPH])
	assert.EqualValues(t, 0xff, m[SPL])
	assert.EqualValues(t, 0, m[PCH])
	assert.EqualValues(t, 0, m[PCL])

	m.SetU16(0xc000, 0xabcd)
	assert.EqualValues(t, 0xab, m.U8(0xc000))
	assert.EqualValues(t, 0xcd, m.U8(0xc001))

	p := make([]byte, 2)
	m.Read(0xc000, p)
	assert.Equal(t, []byte{0xab, 0xcd}, p)
}
