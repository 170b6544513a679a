// Package image defines the program image type, as well as an encoder
// and decoder for its file format.
package image

import (
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Image defines a complete program, ready to be loaded into memory.
type Image struct {
	Debug        Debug  // Optional debug symbols.
	Offset       uint16 // Address at which Instructions are loaded.
	Entrypoint   uint16 // Initial program counter.
	Instructions []byte // Machine code.
}

// New creates a new, empty image.
func New() *Image {
	return &Image{}
}

// Open reads an image from the given file.
func Open(file string) (*Image, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	img := New()
	if err := img.Load(fd); err != nil {
		return nil, errors.Wrapf(err, "%s", file)
	}
	return img, nil
}

// Load reads image data from the given stream.
func (img *Image) Load(r io.Reader) (err error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrapf(err, "image: invalid image format")
	}

	defer gz.Close()
	defer recoverOnPanic(&err)

	img.Debug.read(gz)
	img.Offset = readU16(gz)
	img.Entrypoint = readU16(gz)
	img.Instructions = readBlock(gz)

	if len(img.Instructions) > 0x10000-int(img.Offset) {
		return errors.Errorf("image: %d bytes do not fit at %04x", len(img.Instructions), img.Offset)
	}
	return
}

// Save writes image data to the given stream.
func (img *Image) Save(w io.Writer) (err error) {
	defer recoverOnPanic(&err)

	gz := gzip.NewWriter(w)
	defer func() {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}()

	img.Debug.write(gz)
	writeU16(gz, img.Offset)
	writeU16(gz, img.Entrypoint)
	writeBlock(gz, img.Instructions)
	return
}

// Breakpoints returns the addresses of all symbols flagged as breakpoints.
func (img *Image) Breakpoints() []uint16 {
	var out []uint16
	for _, s := range img.Debug.Symbols {
		if s.Flags&Breakpoint != 0 {
			out = append(out, s.Address)
		}
	}
	return out
}

func recoverOnPanic(err *error) {
	x := recover()
	if x == nil {
		return
	}

	switch tx := x.(type) {
	case runtime.Error:
		panic(tx)
	case error:
		*err = errors.Wrapf(tx, "image")
	default:
		*err = fmt.Errorf("image: %v", tx)
	}
}

// String returns a human-readable dump of the image's contents.
func (img *Image) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Offset: %04x\n", img.Offset)
	fmt.Fprintf(&sb, "Entrypoint: %04x\n", img.Entrypoint)

	if len(img.Debug.Files) > 0 {
		fmt.Fprintf(&sb, "Source files (%d):\n", len(img.Debug.Files))
		for i, v := range img.Debug.Files {
			fmt.Fprintf(&sb, " %d: %s\n", i, v)
		}

		fmt.Fprintf(&sb, "Debug symbols (%d):\n", len(img.Debug.Symbols))
		for _, v := range img.Debug.Symbols {
			fmt.Fprintf(&sb, " %04x: File: %d, Line: %d, Col: %d Flags: %02x\n",
				v.Address, v.File, v.Line, v.Col, v.Flags)
		}
	}

	if len(img.Instructions) > 0 {
		fmt.Fprintf(&sb, "Instructions:\n")
		fmt.Fprintf(&sb, "%s\n", hex.Dump(img.Instructions))
	}

	return sb.String()
}
