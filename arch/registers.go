package arch

import "strings"

// Register indices. L and H together form the 16-bit H:L pointer.
// F holds the ALU flags. Z is reserved.
const (
	A = iota
	B
	C
	D
	L
	H
	Z
	F
)

// RegisterCount is the size of the register file.
const RegisterCount = 8

var registerNames = [RegisterCount]string{"A", "B", "C", "D", "L", "H", "Z", "F"}

// IsRegister returns true if the given name represents a known register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the index for the given register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	name = strings.ToUpper(name)
	for i, v := range registerNames {
		if v == name {
			return i
		}
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return registerNames[n]
}
