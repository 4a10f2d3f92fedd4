package bmp

import (
	"testing"

	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowAll(pixel.Tag) bool { return true }

func buildFileHeader(fileSize, dataOffset uint32) []byte {
	b := make([]byte, fileHeaderLen)
	b[0], b[1] = 'B', 'M'
	le32put(b[2:6], fileSize)
	le32put(b[10:14], dataOffset)
	return b
}

func buildV1InfoHeader(width, height int32, depth int, compression Compression) []byte {
	b := make([]byte, 40)
	le32put(b[0:4], 40)
	le32put(b[4:8], uint32(width))
	le32put(b[8:12], uint32(height))
	le16put(b[14:16], uint16(depth))
	le32put(b[16:20], uint32(compression))
	return b
}

// A 2x2 24-bit uncompressed image with a positive height stores its rows
// bottom-up in the file; decoding must flip them back to top-down order.
func TestDecode24BitUncompressedBottomUp(t *testing.T) {
	fh := buildFileHeader(0, 54)
	ih := buildV1InfoHeader(2, 2, 24, CompressionRGB)
	pixels := []byte{
		0x00, 0xFF, 0x00, 0xFF, 0x00, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0x00, 0x00,
	}
	buf := append(append(fh, ih...), pixels...)

	img, err := Decode(source.NewMem(buf), allowAll, 0, nil)
	require.NoError(t, err)
	require.True(t, img.Valid())
	assert.Equal(t, pixel.RGBA32, img.Pixels.Tag())

	dst := img.Pixels.Bytes()
	assert.Equal(t, []byte{255, 255, 255, 255}, dst[0:4])  // (0,0) white
	assert.Equal(t, []byte{0, 0, 255, 255}, dst[4:8])       // (1,0) blue
	assert.Equal(t, []byte{0, 255, 0, 255}, dst[8:12])      // (0,1) green
	assert.Equal(t, []byte{255, 0, 0, 255}, dst[12:16])     // (1,1) red
}

// A data_offset that lands inside the info-header region is malformed
// regardless of how well the header itself parses.
func TestDecodeRejectsDataOffsetInsideInfoHeader(t *testing.T) {
	fh := buildFileHeader(0, 20)
	ih := buildV1InfoHeader(2, 2, 24, CompressionRGB)
	buf := append(fh, ih...)

	_, err := Decode(source.NewMem(buf), allowAll, 0, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.BmpInvalidBytesInInfoHeader))
}

func TestDecodeRejectsZeroDataOffset(t *testing.T) {
	fh := buildFileHeader(0, 0)
	ih := buildV1InfoHeader(2, 2, 24, CompressionRGB)
	buf := append(fh, ih...)

	_, err := Decode(source.NewMem(buf), allowAll, 0, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.BmpInvalidBytesInInfoHeader))
}

func TestDecode8BitIndexedTopDown(t *testing.T) {
	fh := buildFileHeader(0, 14+40+8)
	ih := buildV1InfoHeader(2, -2, 8, CompressionRGB)
	le32put(ih[32:36], 2) // declared color count
	colorTable := []byte{
		0, 0, 255, 0, // B,G,R,x -> red
		255, 0, 0, 0, // B,G,R,x -> blue
	}
	// top-down (negative height): file row order equals destination order.
	pixels := []byte{
		0, 1, 0, 0,
		1, 0, 0, 0,
	}
	buf := append(append(append(fh, ih...), colorTable...), pixels...)

	img, err := Decode(source.NewMem(buf), allowAll, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, pixel.RGBA32, img.Pixels.Tag())

	dst := img.Pixels.Bytes()
	assert.Equal(t, []byte{255, 0, 0, 255}, dst[0:4])   // (0,0) red
	assert.Equal(t, []byte{0, 0, 255, 255}, dst[4:8])   // (1,0) blue
	assert.Equal(t, []byte{0, 0, 255, 255}, dst[8:12])  // (0,1) blue
	assert.Equal(t, []byte{255, 0, 0, 255}, dst[12:16]) // (1,1) red
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	buf := []byte{'B', 'M', 0, 0}
	_, err := Decode(source.NewMem(buf), allowAll, 0, nil)
	require.Error(t, err)
}

func TestDecodeEnforcesMaxAlloc(t *testing.T) {
	fh := buildFileHeader(0, 54)
	ih := buildV1InfoHeader(2, 2, 24, CompressionRGB)
	buf := append(fh, ih...)

	_, err := Decode(source.NewMem(buf), allowAll, 4, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.AllocTooLarge))
}
