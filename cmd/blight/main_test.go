package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blight "github.com/TraceMyers/Blight"
)

func writeMinimalBmp24(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	rowSize := ((w*24 + 31) / 32) * 4
	dataOffset := 14 + 40
	fileSize := dataOffset + rowSize*h

	buf := make([]byte, fileSize)
	buf[0], buf[1] = 'B', 'M'
	putUint32LE(buf[2:6], uint32(fileSize))
	putUint32LE(buf[10:14], uint32(dataOffset))
	putUint32LE(buf[14:18], 40)
	putUint32LE(buf[18:22], uint32(w))
	putUint32LE(buf[22:26], uint32(h))
	putUint16LE(buf[26:28], 1)
	putUint16LE(buf[28:30], 24)

	full := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(full, buf, 0o644))
	return full
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putUint16LE(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func discardLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// Covers SPEC_FULL.md's added testable property: convert's exit code is
// non-zero iff Load returns a non-nil error for at least one file.
func TestRunConvertSucceedsOnValidFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeMinimalBmp24(t, dir, "a.bmp", 2, 2)
	b := writeMinimalBmp24(t, dir, "b.bmp", 3, 1)

	err := runConvert([]string{a, b}, blight.DefaultOptions(), discardLogger())
	assert.NoError(t, err)
}

func TestRunConvertFailsIfAnyLoadErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeMinimalBmp24(t, dir, "a.bmp", 2, 2)
	bad := filepath.Join(dir, "bad.bmp")
	require.NoError(t, os.WriteFile(bad, []byte{1, 2, 3}, 0o644))

	err := runConvert([]string{a, bad}, blight.DefaultOptions(), discardLogger())
	assert.Error(t, err)
}

func TestRunConvertRejectsEmptyFileList(t *testing.T) {
	err := runConvert(nil, blight.DefaultOptions(), discardLogger())
	assert.Error(t, err)
}
