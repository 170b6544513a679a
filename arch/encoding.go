package arch

const (
	registerModeBit = 0x08
	registerMask    = 0x07
)

// Label returns the opcode label in the upper nibble of b.
func Label(b byte) int {
	return int(b >> 4)
}

// RegisterMode returns true if b selects the register addressing form.
func RegisterMode(b byte) bool {
	return b&registerModeBit != 0
}

// Register returns the register index encoded in the low bits of b.
func Register(b byte) int {
	return int(b & registerMask)
}

// Encode builds an instruction byte from its components.
func Encode(opcode int, registerMode bool, register int) byte {
	b := byte(opcode&0xf)<<4 | byte(register&registerMask)
	if registerMode {
		b |= registerModeBit
	}
	return b
}
