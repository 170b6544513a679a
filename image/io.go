package image

import (
	"encoding/binary"
	"io"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var endian = binary.LittleEndian

func readU8(r io.Reader) (v uint8) {
	check(binary.Read(r, endian, &v))
	return
}

func readU16(r io.Reader) (v uint16) {
	check(binary.Read(r, endian, &v))
	return
}

func readU32(r io.Reader) (v uint32) {
	check(binary.Read(r, endian, &v))
	return
}

// readBytes reads a u16 length-prefixed byte string.
func readBytes(r io.Reader) []byte {
	return readN(r, int(readU16(r)))
}

// readBlock reads a u32 length-prefixed byte string.
func readBlock(r io.Reader) []byte {
	sz := readU32(r)
	if sz > 0x10000 {
		panic(io.ErrUnexpectedEOF)
	}
	return readN(r, int(sz))
}

func readN(r io.Reader, n int) []byte {
	p := make([]byte, n)
	_, err := io.ReadFull(r, p)
	check(err)
	return p
}

func writeU8(w io.Writer, v uint8) {
	check(binary.Write(w, endian, v))
}

func writeU16(w io.Writer, v uint16) {
	check(binary.Write(w, endian, v))
}

func writeU32(w io.Writer, v uint32) {
	check(binary.Write(w, endian, v))
}

func writeBytes(w io.Writer, p []byte) {
	writeU16(w, uint16(len(p)))
	_, err := w.Write(p)
	check(err)
}

func writeBlock(w io.Writer, p []byte) {
	writeU32(w, uint32(len(p)))
	_, err := w.Write(p)
	check(err)
}
