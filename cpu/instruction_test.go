package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	table := []struct {
		code []byte
		want string
	}{
		{[]byte{0x00, 0x0a}, "MW A, $0a"},
		{[]byte{0x09, 0x05}, "MW B, H"},
		{[]byte{0x1b}, "LW D, [H:L]"},
		{[]byte{0x12, 0xc0, 0x01}, "LW C, [$c001]"},
		{[]byte{0x28}, "SW [H:L], A"},
		{[]byte{0x20, 0xc0, 0x00}, "SW [$c000], A"},
		{[]byte{0x30, 0x42}, "PUSH $42"},
		{[]byte{0x3f}, "PUSH F"},
		{[]byte{0x44}, "POP L"},
		{[]byte{0x50, 0x12, 0x34}, "LDA $1234"},
		{[]byte{0x68}, "JNZ A"},
		{[]byte{0x60, 0x01}, "JNZ $01"},
		{[]byte{0x70}, "INB"},
		{[]byte{0x80}, "OUTB"},
		{[]byte{0x9f, 0x02}, "ADD F, C"},
		{[]byte{0xd1, 0xff}, "NOR B, $ff"},
		{[]byte{0xe8, 0x01}, "CMP A, B"},
	}

	for _, e := range table {
		m := make(Memory, MemoryCapacity)
		m.SetU16(PC, 0x0100)
		m.Write(0x0100, e.code)

		var i Instruction
		i.Decode(m)

		assert.EqualValues(t, 0x0100, i.IP)
		assert.Equal(t, e.code, i.Bytes, e.want)
		assert.Equal(t, e.want, i.String())
	}
}

func TestInstructionClone(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m.Write(0, []byte{0x30, 0x42})

	var i Instruction
	i.Decode(m)
	c := i.clone()

	m.Write(0, []byte{0x44})
	i.Decode(m)

	assert.Equal(t, "PUSH $42", c.String())
	assert.Equal(t, "POP L", i.String())
}
