package image

import "io"

// DebugFlags defines debug bitflags.
type DebugFlags byte

// Known debug bit flags.
const (
	// When an instruction with this flag is encountered
	// by the cpu, the cpu halts.
	Breakpoint DebugFlags = 1 << iota
)

// Debug defines any debug data stored in an image.
type Debug struct {
	Files   []string    // Source file names. Only set when there are debug symbols.
	Symbols []DebugData // Per-instruction source context.
}

// Clear empties all data.
func (d *Debug) Clear() {
	d.Files = nil
	d.Symbols = nil
}

// Find returns the debug data associated with the given address.
// Returns nil if there is none.
func (d *Debug) Find(addr uint16) *DebugData {
	for i := range d.Symbols {
		if d.Symbols[i].Address == addr {
			return &d.Symbols[i]
		}
	}
	return nil
}

// File returns the name of the source file with the given index.
func (d *Debug) File(index int) string {
	if index < 0 || index >= len(d.Files) {
		return ""
	}
	return d.Files[index]
}

func (d *Debug) read(r io.Reader) {
	d.Clear()
	for n := readU8(r); n > 0; n-- {
		d.Files = append(d.Files, string(readBytes(r)))
	}

	for n := readU16(r); n > 0; n-- {
		var s DebugData
		s.read(r)
		d.Symbols = append(d.Symbols, s)
	}
}

func (d *Debug) write(w io.Writer) {
	writeU8(w, uint8(len(d.Files)))
	for i := range d.Files {
		writeBytes(w, []byte(d.Files[i]))
	}

	writeU16(w, uint16(len(d.Symbols)))
	for i := range d.Symbols {
		d.Symbols[i].write(w)
	}
}

// DebugData defines one set of debug symbols.
type DebugData struct {
	Address uint16     // Address for which this debug data is defined.
	File    int        // Index into list of file paths in which symbol was defined.
	Line    int        // Line number at which symbol was defined.
	Col     int        // Column number at which symbol was defined.
	Flags   DebugFlags // Any debug flags defined for this entry.
}

func (d *DebugData) read(r io.Reader) {
	d.Address = readU16(r)
	d.File = int(readU8(r))
	d.Line = int(readU16(r))
	d.Col = int(readU16(r))
	d.Flags = DebugFlags(readU8(r))
}

func (d *DebugData) write(w io.Writer) {
	writeU16(w, d.Address)
	writeU8(w, uint8(d.File))
	writeU16(w, uint16(d.Line))
	writeU16(w, uint16(d.Col))
	writeU8(w, uint8(d.Flags))
}
