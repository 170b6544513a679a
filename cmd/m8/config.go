package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/hexaflex/m8/cpu"
	"github.com/hexaflex/m8/translate"
)

// Config defines program configuration.
type Config struct {
	Program     string      // Path to the image, script or raw binary to load.
	Offset      int         // Load address override. -1 uses the program's own offset.
	MaxSteps    uint64      // Step budget. 0 means unlimited.
	Quirks      cpu.Quirks  // Reference-compatible behaviour.
	PrintTrace  bool        // Print instruction trace data?
	Breakpoints []uint16    // Additional breakpoint addresses.
	Dumps       []dumpRange // Memory ranges printed with the final state.
}

// dumpRange defines a memory range to print.
type dumpRange struct {
	Address uint16
	Length  int
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Offset = -1
	c.MaxSteps = 1 << 20

	flag.Usage = func() {
		fmt.Printf("%s [options] <program.m8|program.star|program.bin>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Func("offset", "Load address. Defaults to the offset stored in the image, or 0 for raw binaries.", func(s string) error {
		addr, err := parseAddress(s)
		c.Offset = int(addr)
		return err
	})
	flag.Uint64Var(&c.MaxSteps, "max-steps", c.MaxSteps, "Maximum number of instructions to execute. 0 means unlimited.")
	flag.Func("quirks", "Comma separated quirks to enable: reference, none, flags, index, jnz.", func(s string) (err error) {
		c.Quirks, err = cpu.ParseQuirks(s)
		return
	})
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.Func("break", "Comma separated list of breakpoint addresses.", func(s string) error {
		for _, v := range filteredSplit(s, ",") {
			addr, err := parseAddress(v)
			if err != nil {
				return err
			}
			c.Breakpoints = append(c.Breakpoints, addr)
		}
		return nil
	})
	flag.Func("dump", "Print the memory range addr:len after execution. May be repeated.", func(s string) error {
		r, err := parseDumpRange(s)
		c.Dumps = append(c.Dumps, r)
		return err
	})
	flag.Func("lang", "Message language, e.g. en-US. Defaults to the host locale.", func(s string) error {
		tag, err := parseLanguage(s)
		if err == nil {
			translate.SetLanguage(tag)
		}
		return err
	})
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}

// parseAddress parses a 16-bit address. Accepts the same prefixes as Go
// integer literals, plus a leading '$' for hexadecimal.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}

	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	return uint16(v), nil
}

// parseLanguage parses a BCP 47 language tag.
func parseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, errors.Wrapf(err, "invalid language %q", s)
	}
	return tag, nil
}

// parseDumpRange parses a memory range in the form addr:len.
func parseDumpRange(s string) (dumpRange, error) {
	addr, length, ok := strings.Cut(s, ":")
	if !ok {
		return dumpRange{}, errors.Errorf("invalid memory range %q; expected addr:len", s)
	}

	a, err := parseAddress(addr)
	if err != nil {
		return dumpRange{}, err
	}

	n, err := strconv.ParseUint(strings.TrimSpace(length), 0, 32)
	if err != nil {
		return dumpRange{}, errors.Wrapf(err, "invalid length %q", length)
	}

	if int(a)+int(n) > cpu.MemoryCapacity {
		n = uint64(cpu.MemoryCapacity - int(a))
	}
	return dumpRange{Address: a, Length: int(n)}, nil
}

// filteredSplit splits value by sep and returns the resulting list, minus empty entries.
func filteredSplit(value, sep string) []string {
	out := strings.Split(value, sep)
	for i := 0; i < len(out); i++ {
		out[i] = strings.TrimSpace(out[i])
		if len(out[i]) == 0 {
			copy(out[i:], out[i+1:])
			out = out[:len(out)-1]
			i--
		}
	}
	return out
}
