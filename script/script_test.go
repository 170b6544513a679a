package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexaflex/m8/arch"
	"github.com/hexaflex/m8/cpu"
	"github.com/hexaflex/m8/image"
	"github.com/hexaflex/m8/translate"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func build(t *testing.T, src string, debug bool) *image.Image {
	t.Helper()
	img, err := Build("test.star", []byte(src), debug)
	require.NoError(t, err)
	return img
}

func TestEncoding(t *testing.T) {
	tests := []struct {
		src  string
		want []byte
	}{
		{"mw(A, 10)", []byte{0x00, 0x0a}},
		{"mw(B, A)", []byte{0x09, 0x00}},
		{"lw(C, HL)", []byte{0x1a}},
		{"lw(D, 0xc001)", []byte{0x13, 0xc0, 0x01}},
		{"sw(HL, A)", []byte{0x28}},
		{"sw(0xc000, B)", []byte{0x21, 0xc0, 0x00}},
		{"push(0x42)", []byte{0x30, 0x42}},
		{"push(F)", []byte{0x3f}},
		{"pop(L)", []byte{0x44}},
		{"lda(0x1234)", []byte{0x50, 0x12, 0x34}},
		{"jnz(A)", []byte{0x68}},
		{"jnz(1)", []byte{0x60, 0x01}},
		{"inb()", []byte{0x70}},
		{"outb()", []byte{0x80}},
		{"add(F, C)", []byte{0x9f, 0x02}},
		{"adc(A, B)", []byte{0xa8, 0x01}},
		{"and_(B, 0x0f)", []byte{0xb1, 0x0f}},
		{"or_(A, 1)", []byte{0xc0, 0x01}},
		{"nor(D, D)", []byte{0xdb, 0x03}},
		{"cmp(A, 3)", []byte{0xe0, 0x03}},
		{"sbb(C, -1)", []byte{0xf2, 0xff}},
		{"db(1, 2, 'hi')", []byte{0x01, 0x02, 'h', 'i'}},
	}

	for _, tt := range tests {
		img := build(t, tt.src, false)
		assert.Equal(t, tt.want, img.Instructions, tt.src)
		assert.Zero(t, img.Offset, tt.src)
	}
}

func TestLabels(t *testing.T) {
	img := build(t, `
org(0x100)
entry(addr("start"))
label("data")
db(1, 2, "hi")
label("start")
lda(addr("end"))
jnz(1)
end = label("end")
db(hi(end), lo(end))
`, false)

	assert.Equal(t, uint16(0x100), img.Offset)
	assert.Equal(t, uint16(0x104), img.Entrypoint)
	assert.Equal(t, []byte{1, 2, 'h', 'i', 0x50, 0x01, 0x09, 0x60, 0x01, 0x01, 0x09}, img.Instructions)
	assert.Empty(t, img.Debug.Symbols)
}

func TestOrgGap(t *testing.T) {
	img := build(t, `
org(0x10)
db(1)
org(0x14)
db(2)
org(0x08)
db(3)
`, false)

	assert.Equal(t, uint16(0x08), img.Offset)
	assert.Equal(t, uint16(0x08), img.Entrypoint)
	assert.Equal(t, []byte{3, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 2}, img.Instructions)
}

func TestDebugSymbols(t *testing.T) {
	src := `mw(A, 1)
breakpoint()
mw(B, 2)
db(0)
`
	img := build(t, src, true)
	assert.Equal(t, []string{"test.star"}, img.Debug.Files)
	require.Len(t, img.Debug.Symbols, 2)
	assert.Equal(t, []uint16{2}, img.Breakpoints())

	sym := img.Debug.Find(2)
	require.NotNil(t, sym)
	assert.Equal(t, 3, sym.Line)

	img = build(t, src, false)
	assert.Empty(t, img.Debug.Symbols)
	assert.Empty(t, img.Breakpoints())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int32
	}{
		{"mw(A, 1)\njnz(addr(\"nowhere\"))", 2},
		{"label(\"x\")\nlabel(\"x\")", 2},
		{"mw(A, 256)", 1},
		{"org(0)\ndb(1)\norg(0)\ndb(2)", 4},
		{"org(0xffff)\nlda(0)", 2},
		{"org(0x10000)", 1},
		{"mw(1, 2)", 1},
		{"mw(A, 1", 1},
		{"\n\nundefined_name(A)", 3},
	}

	for _, tt := range tests {
		_, err := Build("test.star", []byte(tt.src), true)
		require.Error(t, err, tt.src)

		var e *Error
		require.True(t, errors.As(err, &e), "%s: %v", tt.src, err)
		assert.Equal(t, tt.line, e.Pos.Line, tt.src)
		assert.Equal(t, "test.star", e.Pos.Filename(), tt.src)
	}
}

func TestBuildFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prog.star")
	require.NoError(t, os.WriteFile(file, []byte("mw(A, 1)\n"), 0644))

	img, err := BuildFile(file, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, img.Instructions)
	assert.Equal(t, []string{file}, img.Debug.Files)

	_, err = BuildFile(filepath.Join(t.TempDir(), "missing.star"), true)
	assert.Error(t, err)
}

// TestRun builds a counting loop and runs it until it reaches the
// breakpoint following the loop.
func TestRun(t *testing.T) {
	img := build(t, `
org(0x0200)
entry(here())
mw(A, 3)
mw(B, 0)
label("loop")
add(B, 2)
add(A, 0xff)
lda(addr("loop"))
jnz(A)
breakpoint()
inb()
`, true)

	c := cpu.New(cpu.Config{MaxSteps: 100}, nil)
	require.NoError(t, c.Boot(img.Instructions, img.Offset))
	c.SetPC(img.Entrypoint)
	for _, addr := range img.Breakpoints() {
		c.SetBreakpoint(addr)
	}

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, cpu.ErrBreakpoint)
	assert.Equal(t, byte(0), c.Register(arch.A))
	assert.Equal(t, byte(6), c.Register(arch.B))
	assert.Equal(t, img.Breakpoints()[0], c.PC())
}

func TestErrorNumbersUngrouped(t *testing.T) {
	translate.SetLanguage(language.AmericanEnglish)

	_, err := Build("test.star", []byte("mw(A, 1000)"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value 1000 out of range for a byte")

	_, err = Build("test.star", []byte("org(70000)"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address 70000 out of range")
}
