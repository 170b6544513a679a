package cpu

import "github.com/hexaflex/m8/arch"

// compare computes the F register value for operands a and b.
//
// With QuirkFlagOverwrite the carry and borrow conditions land in the
// EQUAL position and the CARRY and BORROW bits are never set.
func compare(a, b byte, quirks Quirks) byte {
	var f byte
	if a < b {
		f |= arch.Less.Mask()
	}

	if quirks&QuirkFlagOverwrite != 0 {
		if a == b || int(a)+int(b) > 0xff || a < b {
			f |= arch.Equal.Mask()
		}
		return f
	}

	if a == b {
		f |= arch.Equal.Mask()
	}
	if int(a)+int(b) > 0xff {
		f |= arch.Carry.Mask()
	}
	if a < b {
		f |= arch.Borrow.Mask()
	}
	return f
}
