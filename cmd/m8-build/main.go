package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexaflex/m8/image"
	"github.com/hexaflex/m8/script"
)

func main() {
	config := parseArgs()

	img, err := load(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.DumpArchive {
		dumpArchive(img)
		return
	}

	if err := writeImage(config, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load builds the input script. Existing images are loaded as they are,
// which allows them to be dumped.
func load(c *Config) (*image.Image, error) {
	if strings.ToLower(filepath.Ext(c.Input)) == ".m8" {
		return image.Open(c.Input)
	}
	return script.BuildFile(c.Input, c.DebugBuild)
}

// dumpArchive prints a human readable version of the image to stdout.
func dumpArchive(img *image.Image) {
	fmt.Fprintln(os.Stdout, img.String())
}

// writeImage writes the image to the requested output location.
func writeImage(c *Config, img *image.Image) (err error) {
	w, close, err := makeWriter(c)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := close(); err == nil {
			err = cerr
		}
	}()
	return img.Save(w)
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func() error, error) {
	if c.Output == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, err
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, err
	}

	return fd, fd.Close, nil
}
