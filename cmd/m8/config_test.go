package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
		err  bool
	}{
		{"0", 0, false},
		{"0x0200", 0x200, false},
		{"$c000", 0xc000, false},
		{" 512 ", 512, false},
		{"0x10000", 0, true},
		{"zz", 0, true},
	}

	for _, tt := range tests {
		have, err := parseAddress(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, have, tt.in)
	}
}

func TestParseDumpRange(t *testing.T) {
	r, err := parseDumpRange("0xc000:16")
	require.NoError(t, err)
	assert.Equal(t, dumpRange{0xc000, 16}, r)

	r, err = parseDumpRange("$fff0:0x100")
	require.NoError(t, err)
	assert.Equal(t, dumpRange{0xfff0, 16}, r)

	_, err = parseDumpRange("0xc000")
	assert.Error(t, err)

	_, err = parseDumpRange("0xc000:x")
	assert.Error(t, err)
}

func TestFilteredSplit(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, filteredSplit("1,,2, ,3,", ","))
	assert.Empty(t, filteredSplit("", ","))
}

func TestParseLanguage(t *testing.T) {
	tag, err := parseLanguage(" de-DE ")
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-DE"), tag)

	_, err = parseLanguage("not a language")
	assert.Error(t, err)
}
