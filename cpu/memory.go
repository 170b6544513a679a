package cpu

// MemoryCapacity is the size of the address space.
const MemoryCapacity = 0x10000

// Memory-mapped registers. The stack pointer and program counter
// are big-endian pairs of ordinary memory cells.
const (
	MB  = 0xfffa // Address for the memory bank selector.
	SPH = 0xfffc // Address for the stack pointer high byte.
	SPL = 0xfffd // Address for the stack pointer low byte.
	PCH = 0xfffe // Address for the program counter high byte.
	PCL = 0xffff // Address for the program counter low byte.

	SP = SPH // Address of the stack pointer pair.
	PC = PCH // Address of the program counter pair.
)

// ResetSP is the stack pointer value after a reset.
const ResetSP = 0xfeff

// Memory defines the system's memory bank.
type Memory []byte

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr uint16, value byte) {
	m[addr] = value
}

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr uint16) byte {
	return m[addr]
}

// SetU16 sets the big-endian 16-bit value at the given address.
func (m Memory) SetU16(addr, value uint16) {
	m[addr] = byte(value >> 8)
	m[addr+1] = byte(value)
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr uint16) uint16 {
	return uint16(m[addr])<<8 | uint16(m[addr+1])
}

// Inc16 increments the 16-bit pair at addr. The low byte wraps and
// carries into the high byte only when it becomes zero.
func (m Memory) Inc16(addr uint16) {
	m[addr+1]++
	if m[addr+1] == 0 {
		m[addr]++
	}
}

// Dec16 decrements the 16-bit pair at addr. The high byte is borrowed
// from only when the low byte was zero before the decrement.
func (m Memory) Dec16(addr uint16) {
	if m[addr+1] == 0 {
		m[addr]--
	}
	m[addr+1]--
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(address uint16, p []byte) {
	copy(m[address:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(address uint16, p []byte) {
	copy(p, m[address:])
}

// reset clears memory and installs the memory-mapped register reset values.
func (m Memory) reset() {
	clear(m)
	m.SetU8(MB, 0)
	m.SetU16(SP, ResetSP)
	m.SetU16(PC, 0)
}
