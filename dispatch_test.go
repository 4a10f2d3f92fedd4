package blight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TraceMyers/Blight/errs"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	full := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(full, data, 0o644))
	return dir
}

func minimalBmp24(w, h int) []byte {
	rowSize := ((w*24 + 31) / 32) * 4
	dataOffset := 14 + 40
	fileSize := dataOffset + rowSize*h

	buf := make([]byte, fileSize)
	buf[0], buf[1] = 'B', 'M'
	le32put(buf[2:6], uint32(fileSize))
	le32put(buf[10:14], uint32(dataOffset))
	le32put(buf[14:18], 40)
	le32put(buf[18:22], uint32(w))
	le32put(buf[22:26], uint32(h))
	le16put(buf[26:28], 1)
	le16put(buf[28:30], 24)
	return buf
}

func le32put(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func le16put(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func TestLoadInfersAndDecodesBmpByExtension(t *testing.T) {
	dir := writeTempFile(t, "pic.bmp", minimalBmp24(2, 2))
	img, err := Load(dir, "pic.bmp", Infer, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), img.Width)
}

func TestLoadRejectsDisallowedInputFormat(t *testing.T) {
	dir := writeTempFile(t, "pic.bmp", minimalBmp24(2, 2))
	opts := DefaultOptions()
	opts.InputFormatAllowed[Bmp] = false
	_, err := Load(dir, "pic.bmp", Infer, opts)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InputFormatDisallowed))
}

// A ".bmp" file whose content is actually PNG redirects once, then fails
// with UnableToInferFormat because PNG is disallowed in opts.
func TestLoadRedirectsOnExtensionLieThenFailsWithoutPng(t *testing.T) {
	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0, 0, 0, 0, 0}
	dir := writeTempFile(t, "lied.bmp", content)

	opts := DefaultOptions()
	opts.InputFormatAllowed[Png] = false
	_, err := Load(dir, "lied.bmp", Infer, opts)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.UnableToInferFormat))
}

func TestLoadRedirectsOnExtensionLieToPngWhenAllowed(t *testing.T) {
	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0, 0, 0, 0, 0}
	dir := writeTempFile(t, "lied.bmp", content)

	_, err := Load(dir, "lied.bmp", Infer, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.FormatNotImplemented))
}

func TestLoadFailsUnableToInferWithoutExtensionOrMagic(t *testing.T) {
	dir := writeTempFile(t, "mystery.dat", []byte{1, 2, 3, 4})
	_, err := Load(dir, "mystery.dat", Infer, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.UnableToInferFormat))
}
