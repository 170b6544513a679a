package cpu

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/m8/translate"
)

var f = translate.From

// Known sentinel errors.
var (
	ErrProgramTooLarge = errors.New(f("program does not fit in memory"))
	ErrStepLimit       = errors.New(f("step limit reached"))
	ErrBreakpoint      = errors.New(f("breakpoint"))
)

// Error defines a runtime error.
type Error struct {
	*Instruction
	Err error
}

// NewError creates a new error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: instr.clone(),
		Err:         err,
	}
}

func (e *Error) Error() string {
	return f("%04x: %s: %v", e.IP, e.Instruction.String(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
