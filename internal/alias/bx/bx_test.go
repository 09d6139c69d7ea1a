package bx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestU32At verifies little-endian layout at an offset.
func TestU32At(t *testing.T) {
	b := make([]byte, 6)
	PutU32At(b, 1, 0x01020304)

	// LE: 04 03 02 01, untouched bytes stay zero
	assert.Equal(t, []byte{0x00, 0x04, 0x03, 0x02, 0x01, 0x00}, b)
	assert.Equal(t, uint32(0x01020304), U32At(b, 1))
}

func TestPadded_RoundTrip(t *testing.T) {
	b := []byte("xxxxxxxxxx")

	PutPadded(b, 2, 6, "abc")
	assert.Equal(t, []byte{'x', 'x', 'a', 'b', 'c', 0, 0, 0, 'x', 'x'}, b)
	assert.Equal(t, "abc", Padded(b, 2, 6))
}

func TestPadded_FullWidth(t *testing.T) {
	b := make([]byte, 4)

	PutPadded(b, 0, 4, "abcd")
	assert.Equal(t, "abcd", Padded(b, 0, 4))

	PutPadded(b, 0, 4, "")
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
	assert.Equal(t, "", Padded(b, 0, 4))
}
