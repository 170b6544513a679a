package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndReload(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.star")
	require.NoError(t, os.WriteFile(src, []byte("org(0x10)\nbreakpoint()\nmw(A, 1)\n"), 0644))

	c := &Config{
		Input:      src,
		Output:     filepath.Join(dir, "out", "prog.m8"),
		DebugBuild: true,
	}

	img, err := load(c)
	require.NoError(t, err)
	require.NoError(t, writeImage(c, img))

	have, err := load(&Config{Input: c.Output})
	require.NoError(t, err)
	assert.Equal(t, img, have)
	assert.Equal(t, []uint16{0x10}, have.Breakpoints())

	c.DebugBuild = false
	img, err = load(c)
	require.NoError(t, err)
	assert.Empty(t, img.Breakpoints())
	assert.Equal(t, []byte{0x00, 0x01}, img.Instructions)
}

func TestLoadError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.star")
	require.NoError(t, os.WriteFile(src, []byte("mw(A, 300)\n"), 0644))

	_, err := load(&Config{Input: src})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad.star:1:")

	_, err = load(&Config{Input: filepath.Join(t.TempDir(), "missing.m8")})
	assert.Error(t, err)
}

func TestMakeWriterReportsCloseError(t *testing.T) {
	c := &Config{Output: filepath.Join(t.TempDir(), "prog.m8")}

	w, close, err := makeWriter(c)
	require.NoError(t, err)
	_, err = w.Write([]byte{1})
	require.NoError(t, err)

	require.NoError(t, close())
	assert.ErrorIs(t, close(), os.ErrClosed)

	w, close, err = makeWriter(&Config{})
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, close())
}
