// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

import "strings"

// Known opcodes. The value of each is the label stored in the
// upper nibble of an instruction byte.
const (
	MW = iota
	LW
	SW
	PUSH
	POP
	LDA
	JNZ
	INB
	OUTB
	ADD
	ADC
	AND
	OR
	NOR
	CMP
	SBB
)

// OpcodeCount is the number of opcodes. Every 4-bit label is assigned.
const OpcodeCount = 16

var names = [OpcodeCount]string{
	"MW", "LW", "SW", "PUSH", "POP", "LDA", "JNZ", "INB",
	"OUTB", "ADD", "ADC", "AND", "OR", "NOR", "CMP", "SBB",
}

// Opcode returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	name = strings.ToUpper(name)
	for op, v := range names {
		if v == name {
			return op, true
		}
	}
	return 0, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	if opcode < 0 || opcode >= OpcodeCount {
		return "", false
	}
	return names[opcode], true
}

// IsALU returns true for the two-operand arithmetic and logic opcodes.
func IsALU(opcode int) bool {
	return opcode >= ADD && opcode <= SBB
}

// Size returns the encoded length in bytes of an instruction with the
// given opcode and addressing mode. Returns -1 if the opcode is not recognized.
func Size(opcode int, registerMode bool) int {
	switch opcode {
	case MW, ADD, ADC, AND, OR, NOR, CMP, SBB:
		return 2
	case LW, SW:
		if registerMode {
			return 1
		}
		return 3
	case PUSH, JNZ:
		if registerMode {
			return 1
		}
		return 2
	case LDA:
		return 3
	case POP, INB, OUTB:
		return 1
	}
	return -1
}
