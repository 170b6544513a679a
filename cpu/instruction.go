package cpu

import (
	"fmt"

	"github.com/hexaflex/m8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP       uint16 // Instruction address.
	Opcode   int    // Instruction opcode.
	Register bool   // Register addressing form?
	Index    int    // Register index encoded in the opcode byte.
	Bytes    []byte // Encoded instruction, opcode byte first.
	buf      [3]byte
}

// Decode decodes the instruction at the current program counter.
// It does not advance the program counter.
func (i *Instruction) Decode(m Memory) {
	i.IP = m.U16(PC)

	b := m.U8(i.IP)
	i.Opcode = arch.Label(b)
	i.Register = arch.RegisterMode(b)
	i.Index = arch.Register(b)

	n := arch.Size(i.Opcode, i.Register)
	for j := 0; j < n; j++ {
		i.buf[j] = m.U8(i.IP + uint16(j))
	}
	i.Bytes = i.buf[:n]
}

// clone returns a copy which does not share storage with i.
func (i *Instruction) clone() *Instruction {
	c := *i
	c.Bytes = c.buf[:len(i.Bytes)]
	return &c
}

// operand returns the n'th encoded byte following the opcode byte.
func (i *Instruction) operand(n int) byte {
	if n+1 < len(i.Bytes) {
		return i.Bytes[n+1]
	}
	return 0
}

// address returns the big-endian address following the opcode byte.
func (i *Instruction) address() uint16 {
	return uint16(i.operand(0))<<8 | uint16(i.operand(1))
}

// String returns a disassembly of the instruction.
func (i *Instruction) String() string {
	name, _ := arch.Name(i.Opcode)
	reg := arch.RegisterName(i.Index)

	if i.Opcode == arch.MW || arch.IsALU(i.Opcode) {
		if i.Register {
			return fmt.Sprintf("%s %s, %s", name, reg, arch.RegisterName(arch.Register(i.operand(0))))
		}
		return fmt.Sprintf("%s %s, $%02x", name, reg, i.operand(0))
	}

	switch i.Opcode {
	case arch.LW:
		if i.Register {
			return fmt.Sprintf("%s %s, [H:L]", name, reg)
		}
		return fmt.Sprintf("%s %s, [$%04x]", name, reg, i.address())

	case arch.SW:
		if i.Register {
			return fmt.Sprintf("%s [H:L], %s", name, reg)
		}
		return fmt.Sprintf("%s [$%04x], %s", name, i.address(), reg)

	case arch.PUSH, arch.JNZ:
		if i.Register {
			return fmt.Sprintf("%s %s", name, reg)
		}
		return fmt.Sprintf("%s $%02x", name, i.operand(0))

	case arch.POP:
		return fmt.Sprintf("%s %s", name, reg)

	case arch.LDA:
		return fmt.Sprintf("%s $%04x", name, i.address())
	}

	return name
}
