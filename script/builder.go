package script

import (
	"github.com/hexaflex/m8/image"
	"github.com/pkg/errors"
	"go.starlark.net/starlark"
)

const capacity = 0x10000

// builder holds the state of a build. It is reset at the start of
// each pass. Only labels survive from the first pass into the second.
type builder struct {
	pass    int               // Current pass, 1 or 2.
	debug   bool              // Emit debug symbols?
	labels  map[string]uint16 // Labels defined in the previous pass.
	defined map[string]uint16 // Labels defined in the current pass.
	address int               // Address at which the next byte is written.
	entry   int               // Program entrypoint or -1 if not set.
	low     int               // Lowest written address.
	high    int               // One past the highest written address.
	flags   image.DebugFlags  // One-shot flags for the next instruction.
	files   map[string]int    // Debug file name indices.
	symbols []image.DebugData // Debug symbols.
	written [capacity]bool    // Addresses already written.
	memory  [capacity]byte    // Emitted bytes.
}

func newBuilder(debug bool) *builder {
	return &builder{
		debug:  debug,
		labels: make(map[string]uint16),
	}
}

// begin resets the builder for the given pass.
func (b *builder) begin(pass int) {
	if pass > 1 {
		b.labels = b.defined
	}

	b.pass = pass
	b.defined = make(map[string]uint16)
	b.address = 0
	b.entry = -1
	b.low = capacity
	b.high = 0
	b.flags = 0
	b.files = make(map[string]int)
	b.symbols = nil
	clear(b.written[:])
	clear(b.memory[:])
}

// emit writes data at the current address. Instructions get a debug
// symbol for the calling script position.
func (b *builder) emit(thread *starlark.Thread, instruction bool, data ...byte) error {
	if b.address+len(data) > capacity {
		return newError(thread, f("program exceeds memory at %04x", b.address))
	}

	for i, v := range data {
		addr := b.address + i
		if b.written[addr] {
			return newError(thread, f("overlapping write at %04x", addr))
		}
		b.written[addr] = true
		b.memory[addr] = v
	}

	if instruction && b.debug {
		pos := callerPos(thread)
		b.symbols = append(b.symbols, image.DebugData{
			Address: uint16(b.address),
			File:    b.file(pos.Filename()),
			Line:    int(pos.Line),
			Col:     int(pos.Col),
			Flags:   b.flags,
		})
		b.flags = 0
	}

	b.low = min(b.low, b.address)
	b.high = max(b.high, b.address+len(data))
	b.address += len(data)
	return nil
}

// file returns the debug index for the given file name.
func (b *builder) file(name string) int {
	if index, ok := b.files[name]; ok {
		return index
	}
	b.files[name] = len(b.files)
	return b.files[name]
}

// label defines name at the current address.
func (b *builder) label(thread *starlark.Thread, name string) error {
	if _, ok := b.defined[name]; ok {
		return newError(thread, f("duplicate label %q", name))
	}

	addr := uint16(b.address)
	if b.pass > 1 {
		if prev, ok := b.labels[name]; ok && prev != addr {
			return newError(thread, f("label %q moved from %04x to %04x", name, prev, addr))
		}
	}

	b.defined[name] = addr
	return nil
}

// resolve returns the address of the given label. During the first
// pass, unknown labels resolve to zero.
func (b *builder) resolve(thread *starlark.Thread, name string) (uint16, error) {
	if addr, ok := b.defined[name]; ok {
		return addr, nil
	}
	if addr, ok := b.labels[name]; ok {
		return addr, nil
	}
	if b.pass == 1 {
		return 0, nil
	}
	return 0, newError(thread, f("reference to undefined label %q", name))
}

// image returns the image built by the last pass.
func (b *builder) image() (*image.Image, error) {
	img := image.New()
	if b.high > b.low {
		img.Offset = uint16(b.low)
		img.Instructions = append([]byte(nil), b.memory[b.low:b.high]...)
	}

	img.Entrypoint = img.Offset
	if b.entry >= 0 {
		img.Entrypoint = uint16(b.entry)
	}

	if len(b.symbols) > 0 {
		if len(b.symbols) > 0xffff || len(b.files) > 0xff {
			return nil, errors.New(f("too many debug symbols"))
		}

		img.Debug.Files = make([]string, len(b.files))
		for name, index := range b.files {
			img.Debug.Files[index] = name
		}
		img.Debug.Symbols = b.symbols
	}

	return img, nil
}
