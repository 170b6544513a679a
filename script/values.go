package script

import (
	"strconv"

	"github.com/hexaflex/m8/arch"
	"github.com/pkg/errors"
	"go.starlark.net/starlark"
)

// Register is the script value of a register operand.
type Register int

var _ starlark.Value = Register(0)

func (r Register) String() string        { return arch.RegisterName(int(r)) }
func (Register) Type() string            { return "register" }
func (Register) Freeze()                 {}
func (Register) Truth() starlark.Bool    { return starlark.True }
func (r Register) Hash() (uint32, error) { return uint32(r), nil }

// pointer is the script value of HL, the [H:L] memory operand.
type pointer struct{}

var _ starlark.Value = pointer{}

func (pointer) String() string        { return "[H:L]" }
func (pointer) Type() string          { return "pointer" }
func (pointer) Freeze()               {}
func (pointer) Truth() starlark.Bool  { return starlark.True }
func (pointer) Hash() (uint32, error) { return 0x484c, nil }

// byteValue converts v into a byte. Negative values down to -128 are
// accepted in two's complement.
func byteValue(v starlark.Value) (byte, error) {
	n, err := starlark.AsInt32(v)
	if err != nil {
		return 0, err
	}
	if n < -0x80 || n > 0xff {
		return 0, errors.New(f("value %s out of range for a byte", strconv.Itoa(n)))
	}
	return byte(n), nil
}

// addressValue converts v into a memory address.
func addressValue(v starlark.Value) (uint16, error) {
	n, err := starlark.AsInt32(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xffff {
		return 0, errors.New(f("address %s out of range", strconv.Itoa(n)))
	}
	return uint16(n), nil
}
