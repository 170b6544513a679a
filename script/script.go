// Package script builds program images from Starlark scripts.
//
// A script emits machine code by calling one builtin per mnemonic:
//
//	org(0x0100)
//	label("loop")
//	add(B, 2)
//	add(A, 0xff)
//	lda(addr("loop"))
//	jnz(A)
//
// Registers are predeclared as A, B, C, D, L, H, Z and F. HL denotes
// [H:L] addressing for lw and sw. The script is executed twice so that
// labels may be referenced before they are defined.
package script

import (
	"log"
	"os"

	"github.com/hexaflex/m8/image"
	"github.com/hexaflex/m8/translate"
	"github.com/pkg/errors"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var f = translate.From

var fileOptions = syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// BuildFile reads and builds the given script file.
func BuildFile(file string, debug bool) (*image.Image, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Build(file, src, debug)
}

// Build executes the script src and returns the image it emits.
// The filename is used for error positions and debug symbols.
// When debug is false, no debug symbols are emitted and breakpoint()
// has no effect.
func Build(filename string, src []byte, debug bool) (*image.Image, error) {
	b := newBuilder(debug)

	for pass := 1; pass <= 2; pass++ {
		b.begin(pass)

		thread := &starlark.Thread{
			Name:  filename,
			Print: b.print,
		}

		_, err := starlark.ExecFileOptions(&fileOptions, thread, filename, src, b.predeclared())
		if err != nil {
			return nil, convertError(err)
		}
	}

	return b.image()
}

// convertError turns errors raised by the interpreter into an *Error
// carrying the innermost script position, where one is known.
func convertError(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var serr syntax.Error
	if errors.As(err, &serr) {
		return &Error{Pos: serr.Pos, Msg: serr.Msg}
	}

	var rerr resolve.ErrorList
	if errors.As(err, &rerr) && len(rerr) > 0 {
		return &Error{Pos: rerr[0].Pos, Msg: rerr[0].Msg}
	}

	var eerr *starlark.EvalError
	if errors.As(err, &eerr) {
		for i := range eerr.CallStack {
			if fr := eerr.CallStack.At(i); fr.Pos.Line > 0 {
				return &Error{Pos: fr.Pos, Msg: eerr.Msg}
			}
		}
	}

	return err
}

func (b *builder) print(thread *starlark.Thread, msg string) {
	if b.pass == 2 {
		log.Printf("%s: %s", thread.Name, msg)
	}
}
