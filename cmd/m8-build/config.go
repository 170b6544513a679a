package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Input       string // Input script or image file.
	Output      string // Path to store output in.
	DebugBuild  bool   // Include debug symbols in build?
	DumpArchive bool   // Print a human-readable dump of the image and exit.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Output = "out.m8"
	c.DebugBuild = true

	flag.Usage = func() {
		fmt.Printf("%s [options] <input script or image>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file. Empty writes to stdout.")
	flag.BoolVar(&c.DebugBuild, "debug", c.DebugBuild, "Include debug symbols and breakpoints in the build.")
	flag.BoolVar(&c.DumpArchive, "dump-ar", c.DumpArchive, "Print a human-readable version of the compiled image to stdout.")
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

	c.Input = flag.Arg(0)
	return &c
}
