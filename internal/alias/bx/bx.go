// stand for bytes helper
package bx

import (
	"bytes"
	"encoding/binary"
)

var LE = binary.LittleEndian

// --- LE: At (offset) ---
func U32At(b []byte, off int) uint32       { return LE.Uint32(b[off:]) }
func PutU32At(b []byte, off int, v uint32) { LE.PutUint32(b[off:], v) }

// PutPadded copies s into b[off:off+width] and zero-fills the rest of the field.
// s must already fit; the caller checks lengths.
func PutPadded(b []byte, off, width int, s string) {
	field := b[off : off+width]
	n := copy(field, s)
	clear(field[n:])
}

// Padded returns the field b[off:off+width] cut at its first zero byte.
func Padded(b []byte, off, width int) string {
	field := b[off : off+width]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
