package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	SetLanguage(language.AmericanEnglish)

	assert.Equal(t, "step limit", From("step limit"))
	assert.Equal(t, "c000: 10", From("%04x: %d", 0xc000, 10))
	assert.Equal(t, "1,000 0x3e8 1000", From("%d %#x %s", 1000, 1000, "1000"))
}

func TestHostLanguage(t *testing.T) {
	assert.NotPanics(t, func() { hostLanguage() })
}
