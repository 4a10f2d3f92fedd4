package bmp

import (
	"testing"

	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(n int) *pixel.Palette {
	colors := make([]pixel.Color, n)
	for i := range colors {
		colors[i] = pixel.Color{R: uint8(i), G: uint8(i * 2), B: uint8(i * 3), A: 255}
	}
	return pixel.NewColorPalette(colors)
}

// An RLE8 stream of 04 07 00 00 02 09 00 01 produces a first row of four
// copies of palette[7] followed by a second row of two copies of
// palette[9], then ends the image.
func TestDecodeRLE8Scenario(t *testing.T) {
	data := []byte{0x04, 0x07, 0x00, 0x00, 0x02, 0x09, 0x00, 0x01}
	palette := testPalette(10)
	engine, err := transfer.NewPaletteEngine(pixel.RGBA32)
	require.NoError(t, err)

	width, height := int32(4), int32(2)
	outStride := int(width) * 4
	dst := make([]byte, outStride*int(height))

	require.NoError(t, decodeRLE(data, 8, width, height, false, palette, engine, dst, outStride))

	c7, _ := palette.At(7)
	c9, _ := palette.At(9)
	for x := 0; x < 4; x++ {
		off := x * 4
		assert.Equal(t, c7.R, dst[off])
		assert.Equal(t, c7.G, dst[off+1])
		assert.Equal(t, c7.B, dst[off+2])
	}
	for x := 0; x < 2; x++ {
		off := outStride + x*4
		assert.Equal(t, c9.R, dst[off])
		assert.Equal(t, c9.G, dst[off+1])
	}
}

func TestDecodeRLE4PacksTwoIndicesPerByte(t *testing.T) {
	// run of 3 pixels using byte 0x53: indices 5,3,5 (high, low, high...).
	data := []byte{0x03, 0x53, 0x00, 0x01}
	palette := testPalette(16)
	engine, err := transfer.NewPaletteEngine(pixel.RGBA32)
	require.NoError(t, err)

	width, height := int32(3), int32(1)
	outStride := int(width) * 4
	dst := make([]byte, outStride*int(height))

	require.NoError(t, decodeRLE(data, 4, width, height, false, palette, engine, dst, outStride))

	c5, _ := palette.At(5)
	c3, _ := palette.At(3)
	assert.Equal(t, c5.R, dst[0])
	assert.Equal(t, c3.R, dst[4])
	assert.Equal(t, c5.R, dst[8])
}

func TestDecodeRLEAbsoluteModeWithPadding(t *testing.T) {
	// escape (0,3): 3 literal RLE8 indices follow (1,2,3), plus one pad byte
	// since 2+3 is odd, then end of image.
	data := []byte{0x00, 0x03, 0x01, 0x02, 0x03, 0x00, 0x00, 0x01}
	palette := testPalette(8)
	engine, err := transfer.NewPaletteEngine(pixel.RGBA32)
	require.NoError(t, err)

	width, height := int32(3), int32(1)
	outStride := int(width) * 4
	dst := make([]byte, outStride*int(height))

	require.NoError(t, decodeRLE(data, 8, width, height, false, palette, engine, dst, outStride))

	c1, _ := palette.At(1)
	c2, _ := palette.At(2)
	c3, _ := palette.At(3)
	assert.Equal(t, c1.R, dst[0])
	assert.Equal(t, c2.R, dst[4])
	assert.Equal(t, c3.R, dst[8])
}

func TestDecodeRLEDeltaMovesCursor(t *testing.T) {
	data := []byte{0x01, 0x02, 0x00, 0x02, 0x01, 0x01, 0x01, 0x05, 0x00, 0x01}
	palette := testPalette(8)
	engine, err := transfer.NewPaletteEngine(pixel.RGBA32)
	require.NoError(t, err)

	width, height := int32(4), int32(4)
	outStride := int(width) * 4
	dst := make([]byte, outStride*int(height))

	require.NoError(t, decodeRLE(data, 8, width, height, false, palette, engine, dst, outStride))

	c2, _ := palette.At(2)
	c5, _ := palette.At(5)
	assert.Equal(t, c2.R, dst[0])
	off := 1*outStride + 2*4
	assert.Equal(t, c5.R, dst[off])
}

func TestDecodeRLECoordinatesOutOfBoundsFails(t *testing.T) {
	data := []byte{0x05, 0x07}
	palette := testPalette(8)
	engine, err := transfer.NewPaletteEngine(pixel.RGBA32)
	require.NoError(t, err)

	width, height := int32(4), int32(1)
	outStride := int(width) * 4
	dst := make([]byte, outStride*int(height))

	err = decodeRLE(data, 8, width, height, false, palette, engine, dst, outStride)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.BmpRLECoordinatesOutOfBounds))
}
