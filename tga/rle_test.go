package tga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single repeat packet of count 3 against a 3-pixel (width 3, height 1)
// image supplies every pixel; a literal packet appended after it is never
// reached once totalPixels is satisfied.
func TestDecodeRLERepeatPacket(t *testing.T) {
	data := []byte{0x82, 0x11, 0x22, 0x33, 0x01, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99}
	raw, err := decodeRLE(data, 3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, []byte{0x11, 0x22, 0x33}, raw[i*3:i*3+3])
	}
}

func TestDecodeRLELiteralPacket(t *testing.T) {
	data := []byte{0x01, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99}
	raw, err := decodeRLE(data, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x44, 0x55, 0x66}, raw[0:3])
	assert.Equal(t, []byte{0x77, 0x88, 0x99}, raw[3:6])
}

func TestDecodeRLEStraddlesRowBoundary(t *testing.T) {
	// One repeat packet of 4 pixels feeding a 2x2 image: the run straddles
	// the row 0 / row 1 boundary in file order.
	data := []byte{0x83, 9, 9, 9}
	raw, err := decodeRLE(data, 3, 4)
	require.NoError(t, err)
	assert.Len(t, raw, 12)
	for i := 0; i < 4; i++ {
		assert.Equal(t, []byte{9, 9, 9}, raw[i*3:i*3+3])
	}
}

func TestDecodeRLEFailsOnTruncatedStream(t *testing.T) {
	data := []byte{0x82, 0x11} // repeat packet promises 3 bytes of color, gives 1
	_, err := decodeRLE(data, 3, 3)
	require.Error(t, err)
}
