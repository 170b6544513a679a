// Package cpu implements the m8 CPU.
package cpu

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/m8/arch"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// Handler executes one instruction. It reads its operands starting at the
// current program counter and leaves the program counter on the next
// instruction. A returned error sets the ERROR status flag.
type Handler func(*CPU) error

// Config defines engine configuration.
type Config struct {
	Quirks   Quirks // Reference-compatible behaviour.
	MaxSteps uint64 // Maximum number of instructions executed per Boot. 0 means unlimited.
}

// CPU implements the runtime.
type CPU struct {
	config      Config                    // Engine configuration.
	trace       TraceFunc                 // Handler for debug trace output.
	memory      Memory                    // System memory.
	registers   Registers                 // General purpose registers.
	status      Status                    // Machine status flags.
	instr       Instruction               // Decoded instruction data.
	handlers    [arch.OpcodeCount]Handler // Dispatch table, indexed by opcode label.
	breakpoints map[uint16]struct{}       // Addresses at which execution halts.
	resume      bool                      // Skip the breakpoint check for the next step?
	steps       uint64                    // Instructions executed since the last Boot.
}

// New creates a new CPU in its reset state.
// Optionally with the given debug trace handler.
func New(config Config, trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		config:      config,
		trace:       trace,
		memory:      make(Memory, MemoryCapacity),
		handlers:    defaultHandlers,
		breakpoints: make(map[uint16]struct{}),
	}
	c.reset()
	return c
}

// Config returns the engine configuration.
func (c *CPU) Config() Config {
	return c.config
}

// Memory returns the cpu's memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.registers
}

// Register returns the value of the register with the given index.
func (c *CPU) Register(index int) byte {
	return c.registers[index&(arch.RegisterCount-1)]
}

// SetRegister sets the value of the register with the given index.
func (c *CPU) SetRegister(index int, value byte) {
	c.registers[index&(arch.RegisterCount-1)] = value
}

// Status returns a copy of the machine status flags.
func (c *CPU) Status() Status {
	return c.status
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.memory.U16(PC)
}

// SetPC sets the program counter.
func (c *CPU) SetPC(addr uint16) {
	c.memory.SetU16(PC, addr)
}

// SP returns the stack pointer.
func (c *CPU) SP() uint16 {
	return c.memory.U16(SP)
}

// Steps returns the number of instructions executed since the last Boot.
func (c *CPU) Steps() uint64 {
	return c.steps
}

// SetHandler replaces the handler for the given opcode.
// A nil handler restores the built-in one.
func (c *CPU) SetHandler(opcode int, h Handler) {
	opcode &= arch.OpcodeCount - 1
	if h == nil {
		h = defaultHandlers[opcode]
	}
	c.handlers[opcode] = h
}

// SetBreakpoint halts execution whenever the program counter reaches addr.
func (c *CPU) SetBreakpoint(addr uint16) {
	c.breakpoints[addr] = struct{}{}
}

// ClearBreakpoint removes the breakpoint at addr.
func (c *CPU) ClearBreakpoint(addr uint16) {
	delete(c.breakpoints, addr)
}

// Reset clears memory, registers and status flags and installs the
// reset values of the memory-mapped registers.
func (c *CPU) Reset() {
	log.Println("cpu: reset")
	c.reset()
}

func (c *CPU) reset() {
	c.memory.reset()
	clear(c.registers[:])
	clear(c.status[:])
	c.steps = 0
	c.resume = false
}

// PowerOff clears the POWER status flag. The run loop stops before
// the next instruction.
func (c *CPU) PowerOff() {
	log.Println("cpu: power off")
	c.status[arch.Power] = false
}

// Halt sets the HALT status flag.
func (c *CPU) Halt() {
	c.status[arch.Halt] = true
}

// Resume clears the HALT status flag. If execution stopped on a
// breakpoint, the next step executes the instruction at that address.
func (c *CPU) Resume() {
	c.status[arch.Halt] = false
	c.resume = true
}

// Boot writes program into memory at offset, clears the status flags
// and powers the machine on. The program counter, registers and the
// remaining memory are left as they are.
func (c *CPU) Boot(program []byte, offset uint16) error {
	if len(program) > MemoryCapacity-int(offset) {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes at %04x", len(program), offset)
	}

	c.memory.Write(offset, program)
	clear(c.status[:])
	c.status[arch.Power] = true
	c.steps = 0
	c.resume = false
	return nil
}

// Load boots the given program and runs it to completion.
func (c *CPU) Load(ctx context.Context, program []byte, offset uint16) error {
	if err := c.Boot(program, offset); err != nil {
		return err
	}
	return c.Run(ctx)
}

// Run executes instructions until the machine halts, fails or is
// powered off. It returns nil on HALT or power off, the failing
// instruction's error on ERROR, ctx.Err() when ctx is cancelled and
// ErrStepLimit when the step budget is exhausted.
func (c *CPU) Run(ctx context.Context) error {
	for c.status.Running() {
		select {
		case <-ctx.Done():
			c.PowerOff()
			return ctx.Err()
		default:
		}

		if c.config.MaxSteps > 0 && c.steps >= c.config.MaxSteps {
			c.Halt()
			return ErrStepLimit
		}

		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs a single execution step.
// Returns io.EOF if the machine is not running.
func (c *CPU) Step() error {
	if !c.status.Running() {
		return io.EOF
	}

	if !c.resume {
		if _, ok := c.breakpoints[c.PC()]; ok {
			c.Halt()
			return ErrBreakpoint
		}
	}
	c.resume = false

	instr := &c.instr
	instr.Decode(c.memory)
	c.trace(instr)
	c.steps++

	if err := c.handlers[instr.Opcode](c); err != nil {
		c.status[arch.Error] = true
		return NewError(instr, err)
	}

	return nil
}
