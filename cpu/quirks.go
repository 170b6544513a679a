package cpu

import (
	"strings"

	"github.com/pkg/errors"
)

// Quirks selects reference-compatible behaviour where the reference
// machine deviates from its documented instruction set.
// The zero value is the corrected machine.
type Quirks uint8

// Known quirks.
const (
	// FlagsALU writes its carry and borrow conditions into the EQUAL bit.
	QuirkFlagOverwrite Quirks = 1 << iota

	// Register operands of PUSH, JNZ and the ALU instructions yield the
	// register index instead of the register contents.
	QuirkRegisterIndex

	// A JNZ that is not taken leaves PC on its last operand byte.
	QuirkJNZStall

	// QuirkReference enables every quirk.
	QuirkReference = QuirkFlagOverwrite | QuirkRegisterIndex | QuirkJNZStall
)

var quirkNames = []struct {
	q    Quirks
	name string
}{
	{QuirkFlagOverwrite, "flags"},
	{QuirkRegisterIndex, "index"},
	{QuirkJNZStall, "jnz"},
}

// ParseQuirks parses a comma separated list of quirk names.
// "reference" selects all quirks, "none" or "" selects none.
func ParseQuirks(s string) (Quirks, error) {
	var q Quirks
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "", "none":
			continue
		case "reference":
			q |= QuirkReference
			continue
		}

		found := false
		for _, v := range quirkNames {
			if v.name == name {
				q |= v.q
				found = true
				break
			}
		}
		if !found {
			return 0, errors.New(f("unknown quirk %q", name))
		}
	}
	return q, nil
}

func (q Quirks) String() string {
	if q == 0 {
		return "none"
	}
	if q == QuirkReference {
		return "reference"
	}

	var set []string
	for _, v := range quirkNames {
		if q&v.q != 0 {
			set = append(set, v.name)
		}
	}
	return strings.Join(set, ",")
}
