package cpu

import (
	"fmt"
	"strings"

	"github.com/hexaflex/m8/arch"
)

// Registers defines the general purpose register file.
type Registers [arch.RegisterCount]byte

// HL returns the 16-bit pointer formed by registers H and L.
func (r Registers) HL() uint16 {
	return uint16(r[arch.H])<<8 | uint16(r[arch.L])
}

// SetHL sets registers H and L from a 16-bit value.
func (r *Registers) SetHL(v uint16) {
	r[arch.H] = byte(v >> 8)
	r[arch.L] = byte(v)
}

// Flag returns the state of the given bit in the F register.
func (r Registers) Flag(f arch.Flag) bool {
	return r[arch.F]&f.Mask() != 0
}

// flagBit returns the given F register bit as 0 or 1.
func (r Registers) flagBit(f arch.Flag) byte {
	return (r[arch.F] >> f) & 1
}

func (r Registers) String() string {
	var sb strings.Builder
	for i, v := range r {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s:%02x", arch.RegisterName(i), v)
	}
	return sb.String()
}

// Status holds the machine status flags.
type Status [arch.StatusFlagCount]bool

// Running returns true if another instruction may be executed.
func (s Status) Running() bool {
	return s[arch.Power] && !s[arch.Error] && !s[arch.Halt]
}

// Power reports whether the machine is powered on.
func (s Status) Power() bool { return s[arch.Power] }

// Failed reports whether an instruction failed.
func (s Status) Failed() bool { return s[arch.Error] }

// Halted reports whether execution was stopped.
func (s Status) Halted() bool { return s[arch.Halt] }

func (s Status) String() string {
	var set []string
	for i, v := range s {
		if v {
			set = append(set, arch.StatusFlag(i).String())
		}
	}
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, "|")
}
