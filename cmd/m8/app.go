package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hexaflex/m8/cpu"
	"github.com/hexaflex/m8/image"
	"github.com/hexaflex/m8/script"
)

// App defines application context.
type App struct {
	config    *Config      // Application configuration.
	cpu       *cpu.CPU     // Machine running the program.
	out       io.Writer    // Destination for trace and state output.
	styled    bool         // Is out a terminal?
	debugData *image.Debug // Debug data stored in the program image.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config, out io.Writer) *App {
	var a App
	a.config = config
	a.out = out
	a.styled = isTerminal(out)

	var trace cpu.TraceFunc
	if config.PrintTrace {
		trace = a.printTrace
	}

	a.cpu = cpu.New(cpu.Config{
		Quirks:   config.Quirks,
		MaxSteps: config.MaxSteps,
	}, trace)
	return &a
}

// Run loads the program and executes it until it stops. Breakpoints
// print the machine state and resume execution.
func (a *App) Run(ctx context.Context) error {
	log.Println(Version())

	if err := a.loadProgram(); err != nil {
		return err
	}

	for {
		err := a.cpu.Run(ctx)

		switch {
		case err == nil:
			a.printState("stopped")
			return nil

		case errors.Is(err, cpu.ErrBreakpoint):
			a.printState("breakpoint" + a.sourceContext(a.cpu.PC()))
			a.cpu.Resume()

		case errors.Is(err, cpu.ErrStepLimit):
			a.printState("step limit reached")
			return nil

		case errors.Is(err, context.Canceled):
			a.printState("interrupted")
			return nil

		default:
			a.printState("failed")
			return err
		}
	}
}

// loadProgram loads the configured program and boots the cpu with it.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	img, err := openProgram(a.config.Program)
	if err != nil {
		return err
	}

	offset := img.Offset
	entry := img.Entrypoint
	if a.config.Offset >= 0 {
		offset = uint16(a.config.Offset)
		entry = entry - img.Offset + offset
	}

	if err := a.cpu.Boot(img.Instructions, offset); err != nil {
		return err
	}

	a.cpu.SetPC(entry)
	a.debugData = &img.Debug

	for _, addr := range img.Breakpoints() {
		a.cpu.SetBreakpoint(addr - img.Offset + offset)
	}
	for _, addr := range a.config.Breakpoints {
		a.cpu.SetBreakpoint(addr)
	}

	log.Printf("loaded %d bytes at %04x, entrypoint %04x", len(img.Instructions), offset, entry)
	return nil
}

// openProgram reads a program image. Starlark scripts are built on the
// fly. Files which are neither are loaded as raw machine code.
func openProgram(file string) (*image.Image, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".star":
		return script.BuildFile(file, true)
	case ".m8":
		return image.Open(file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	img := image.New()
	img.Instructions = data
	return img, nil
}

// printTrace prints instruction trace data.
func (a *App) printTrace(i *cpu.Instruction) {
	var sb strings.Builder
	sb.Grow(80)

	fmt.Fprintf(&sb, "%04x  %-8s  %s", i.IP, hex.EncodeToString(i.Bytes), i)

	// Add source context if it is available.
	if ctx := a.sourceContext(i.IP); ctx != "" {
		pad(&sb, 40)
		sb.WriteString(ctx)
	}

	fmt.Fprintln(a.out, sb.String())
}

// sourceContext returns the script position of the instruction at addr,
// or "" if there is none.
func (a *App) sourceContext(addr uint16) string {
	if a.debugData == nil {
		return ""
	}

	dbg := a.debugData.Find(addr)
	if dbg == nil {
		return ""
	}
	return fmt.Sprintf(" %s:%d:%d", a.debugData.File(dbg.File), dbg.Line, dbg.Col)
}

// printState writes the machine state and any requested memory ranges.
func (a *App) printState(reason string) {
	regs := a.cpu.Registers()
	status := a.cpu.Status()

	fmt.Fprintln(a.out, a.heading(reason))
	fmt.Fprintf(a.out, "PC:%04x SP:%04x steps:%d status:%s\n", a.cpu.PC(), a.cpu.SP(), a.cpu.Steps(), status.String())
	fmt.Fprintln(a.out, regs.String())

	mem := a.cpu.Memory()
	for _, r := range a.config.Dumps {
		fmt.Fprintln(a.out, a.heading(fmt.Sprintf("memory %04x:%d", r.Address, r.Length)))
		p := make([]byte, r.Length)
		mem.Read(r.Address, p)
		fmt.Fprint(a.out, hex.Dump(p))
	}
}

// heading renders a section title, highlighted when writing to a terminal.
func (a *App) heading(s string) string {
	if a.styled {
		return "\x1b[1m" + s + "\x1b[0m"
	}
	return "-- " + s
}

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	fd, ok := w.(*os.File)
	return ok && term.IsTerminal(int(fd.Fd()))
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()
