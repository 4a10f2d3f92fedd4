package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(BmpInvalidColorDepth, "bmp.readInfoHeader")
	assert.True(t, Is(err, BmpInvalidColorDepth))
	assert.False(t, Is(err, TgaNoData))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(UnexpectedEOF, "source.ReadExact", cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "short read")
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("boom"), UnexpectedEOF))
}

func TestKindStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Kind(9999).String())
}
