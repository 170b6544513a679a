package arch

// Flag identifies a bit position in the F register.
type Flag uint8

// Known ALU flags.
const (
	Less Flag = iota
	Equal
	Carry
	Borrow
)

// Mask returns the F register bit mask for the flag.
func (f Flag) Mask() byte {
	return 1 << f
}

func (f Flag) String() string {
	switch f {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Carry:
		return "CARRY"
	case Borrow:
		return "BORROW"
	}
	return ""
}

// StatusFlag identifies one of the machine status flags.
type StatusFlag uint8

// Known machine status flags.
const (
	Unused StatusFlag = iota // Reserved.
	Error                    // An instruction failed.
	Power                    // The machine is powered on.
	Halt                     // Execution was stopped.
)

// StatusFlagCount is the number of machine status flags.
const StatusFlagCount = 4

func (f StatusFlag) String() string {
	switch f {
	case Unused:
		return "UNUSED"
	case Error:
		return "ERROR"
	case Power:
		return "POWER"
	case Halt:
		return "HALT"
	}
	return ""
}
