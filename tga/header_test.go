package tga

import (
	"testing"

	"github.com/TraceMyers/Blight/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHeader(idLength, colorMapType uint8, imageType ImageType, width, height int, depth int, descriptor uint8) []byte {
	b := make([]byte, headerLen)
	b[0] = idLength
	b[1] = colorMapType
	b[2] = byte(imageType)
	le16put(b[12:14], uint16(width))
	le16put(b[14:16], uint16(height))
	b[16] = byte(depth)
	b[17] = descriptor
	return b
}

func TestParseHeaderParsesFields(t *testing.T) {
	buf := buildHeader(0, 0, TrueColor, 4, 2, 24, 0x20)
	info, err := parseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 2, info.Height)
	assert.Equal(t, 24, info.Depth)
	assert.False(t, info.BottomUp())
}

func TestParseHeaderRejectsUnsupportedImageType(t *testing.T) {
	buf := buildHeader(0, 0, HuffmanDelta, 4, 2, 24, 0)
	_, err := parseHeader(buf)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.TgaImageTypeUnsupported))
}

func TestParseHeaderRejectsZeroDimensions(t *testing.T) {
	buf := buildHeader(0, 0, TrueColor, 0, 2, 24, 0)
	_, err := parseHeader(buf)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.TgaNoData))
}

func TestParseHeaderRejectsColorMapSpecOnNonColorMapImage(t *testing.T) {
	buf := buildHeader(0, 0, TrueColor, 4, 2, 24, 0)
	le16put(buf[5:7], 16) // declares a 16-entry color map
	_, err := parseHeader(buf)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.TgaColorMapDataInNonColorMapImage))
}

func TestInfoBottomUpAndRightToLeft(t *testing.T) {
	info := &Info{Descriptor: 0x00}
	assert.True(t, info.BottomUp())
	assert.False(t, info.RightToLeft())

	info.Descriptor = 0x30
	assert.False(t, info.BottomUp())
	assert.True(t, info.RightToLeft())
}
