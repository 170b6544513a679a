package cpu

import "github.com/hexaflex/m8/arch"

// defaultHandlers is the built-in dispatch table, indexed by opcode label.
var defaultHandlers = [arch.OpcodeCount]Handler{
	arch.MW:   (*CPU).mw,
	arch.LW:   (*CPU).lw,
	arch.SW:   (*CPU).sw,
	arch.PUSH: (*CPU).push,
	arch.POP:  (*CPU).pop,
	arch.LDA:  (*CPU).lda,
	arch.JNZ:  (*CPU).jnz,
	arch.INB:  (*CPU).reserved,
	arch.OUTB: (*CPU).reserved,
	arch.ADD:  (*CPU).add,
	arch.ADC:  (*CPU).adc,
	arch.AND:  (*CPU).and,
	arch.OR:   (*CPU).or,
	arch.NOR:  (*CPU).nor,
	arch.CMP:  (*CPU).cmp,
	arch.SBB:  (*CPU).sbb,
}

// Current returns the byte at the program counter.
func (c *CPU) Current() byte {
	return c.memory.U8(c.memory.U16(PC))
}

// Advance increments the program counter.
func (c *CPU) Advance() {
	c.memory.Inc16(PC)
}

// registerOperand yields the operand named by a register index.
func (c *CPU) registerOperand(index int) byte {
	if c.config.Quirks&QuirkRegisterIndex != 0 {
		return byte(index)
	}
	return c.registers[index]
}

// registerOrImmediate resolves a single operand. The register form names
// the register in the current byte, the immediate form is the next byte.
func (c *CPU) registerOrImmediate() byte {
	b := c.Current()
	if arch.RegisterMode(b) {
		return c.registerOperand(arch.Register(b))
	}
	c.Advance()
	return c.Current()
}

// registerOrImmediateAtNext resolves a source operand from the byte
// following the current one. In the register form that byte holds the
// source register index.
func (c *CPU) registerOrImmediateAtNext() byte {
	mode := arch.RegisterMode(c.Current())
	c.Advance()
	if mode {
		return c.registerOperand(arch.Register(c.Current()))
	}
	return c.Current()
}

// next16 reads the big-endian address following the current byte.
// The program counter is left on its low byte.
func (c *CPU) next16() uint16 {
	c.Advance()
	hi := c.Current()
	c.Advance()
	lo := c.Current()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) mw() error {
	b := c.Current()
	dest := arch.Register(b)
	c.Advance()

	if arch.RegisterMode(b) {
		c.registers[dest] = c.registers[arch.Register(c.Current())]
	} else {
		c.registers[dest] = c.Current()
	}

	c.Advance()
	return nil
}

func (c *CPU) lw() error {
	b := c.Current()
	dest := arch.Register(b)

	var addr uint16
	if arch.RegisterMode(b) {
		addr = c.registers.HL()
	} else {
		addr = c.next16()
	}

	c.registers[dest] = c.memory.U8(addr)
	c.Advance()
	return nil
}

func (c *CPU) sw() error {
	b := c.Current()
	src := arch.Register(b)

	var addr uint16
	if arch.RegisterMode(b) {
		addr = c.registers.HL()
	} else {
		addr = c.next16()
	}

	c.memory.SetU8(addr, c.registers[src])
	c.Advance()
	return nil
}

func (c *CPU) push() error {
	v := c.registerOrImmediate()
	c.memory.SetU8(c.memory.U16(SP), v)
	c.memory.Dec16(SP)
	c.Advance()
	return nil
}

func (c *CPU) pop() error {
	dest := arch.Register(c.Current())
	c.memory.Inc16(SP)
	c.registers[dest] = c.memory.U8(c.memory.U16(SP))
	c.Advance()
	return nil
}

func (c *CPU) lda() error {
	c.registers.SetHL(c.next16())
	c.Advance()
	return nil
}

func (c *CPU) jnz() error {
	if c.registerOrImmediate() != 0 {
		c.memory.SetU16(PC, c.registers.HL())
		return nil
	}

	if c.config.Quirks&QuirkJNZStall == 0 {
		c.Advance()
	}
	return nil
}

// reserved implements INB and OUTB. They consume the opcode byte only.
func (c *CPU) reserved() error {
	c.Advance()
	return nil
}

// alu resolves the destination register and source operand of a
// two-operand instruction.
func (c *CPU) alu() (dest int, src byte) {
	dest = arch.Register(c.Current())
	src = c.registerOrImmediateAtNext()
	return
}

func (c *CPU) add() error {
	dest, src := c.alu()
	c.registers[arch.F] = compare(c.registers[dest], src, c.config.Quirks)
	c.registers[dest] += src
	c.Advance()
	return nil
}

func (c *CPU) adc() error {
	dest, src := c.alu()
	carry := c.registers.flagBit(arch.Carry)
	c.registers[arch.F] = compare(c.registers[dest], src, c.config.Quirks)
	c.registers[dest] += src + carry
	c.Advance()
	return nil
}

func (c *CPU) and() error {
	dest, src := c.alu()
	c.registers[dest] &= src
	c.Advance()
	return nil
}

func (c *CPU) or() error {
	dest, src := c.alu()
	c.registers[dest] |= src
	c.Advance()
	return nil
}

func (c *CPU) nor() error {
	dest, src := c.alu()
	c.registers[dest] = ^(c.registers[dest] | src)
	c.Advance()
	return nil
}

func (c *CPU) cmp() error {
	dest, src := c.alu()
	c.registers[arch.F] = compare(c.registers[dest], src, c.config.Quirks)
	c.Advance()
	return nil
}

func (c *CPU) sbb() error {
	dest, src := c.alu()
	borrow := c.registers.flagBit(arch.Borrow)
	c.registers[arch.F] = compare(c.registers[dest], src, c.config.Quirks)
	c.registers[dest] = c.registers[dest] + borrow - src
	c.Advance()
	return nil
}
