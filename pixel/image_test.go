package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageValid(t *testing.T) {
	img := &Image{
		Width:  2,
		Height: 2,
		Alpha:  AlphaNormal,
		Pixels: NewOwning(RGBA32, 2*2*4),
	}
	assert.True(t, img.Valid())
	assert.False(t, img.Empty())
}

func TestImageInvalidSize(t *testing.T) {
	img := &Image{
		Width:  2,
		Height: 2,
		Pixels: NewOwning(RGBA32, 10),
	}
	assert.False(t, img.Valid())
}

func TestImageEmpty(t *testing.T) {
	img := &Image{Pixels: Empty()}
	assert.True(t, img.Empty())
	assert.False(t, img.Valid())
}

func TestImageRejectsNonCanonicalTag(t *testing.T) {
	img := &Image{
		Width:  1,
		Height: 1,
		Pixels: NewOwning(U24RGB, 3),
	}
	assert.False(t, img.Valid())
}
