package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hexaflex/m8/arch"
)

func TestCompare(t *testing.T) {
	less := arch.Less.Mask()
	equal := arch.Equal.Mask()
	carry := arch.Carry.Mask()
	borrow := arch.Borrow.Mask()

	table := []struct {
		a, b      byte
		corrected byte
		reference byte
	}{
		{1, 2, less | borrow, less | equal},
		{2, 2, equal, equal},
		{3, 2, 0, 0},
		{0xff, 0x01, carry, equal},
		{0x80, 0x80, equal | carry, equal},
		{0x01, 0xff, less | carry | borrow, less | equal},
		{0x7f, 0x80, less | borrow, less | equal},
	}

	for _, e := range table {
		assert.Equal(t, e.corrected, compare(e.a, e.b, 0), "compare(%02x, %02x)", e.a, e.b)
		assert.Equal(t, e.reference, compare(e.a, e.b, QuirkFlagOverwrite), "reference compare(%02x, %02x)", e.a, e.b)
	}
}

func TestParseQuirks(t *testing.T) {
	q, err := ParseQuirks("reference")
	assert.NoError(t, err)
	assert.Equal(t, QuirkReference, q)
	assert.Equal(t, "reference", q.String())

	q, err = ParseQuirks("flags, jnz")
	assert.NoError(t, err)
	assert.Equal(t, QuirkFlagOverwrite|QuirkJNZStall, q)
	assert.Equal(t, "flags,jnz", q.String())

	q, err = ParseQuirks("")
	assert.NoError(t, err)
	assert.Equal(t, "none", q.String())

	_, err = ParseQuirks("turbo")
	assert.Error(t, err)
}
