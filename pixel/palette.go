package pixel

import "errors"

// Color is a decoded RGBA8 palette entry.
type Color struct {
	R, G, B, A uint8
}

// ErrInvalidColorTableIndex is returned when a color-table index read from
// packed pixel data falls outside the palette.
var ErrInvalidColorTableIndex = errors.New("pixel: color table index out of range")

// Palette holds up to 256 entries, either full RGBA8 colors or, when every
// entry happens to satisfy r==g==b, a collapsed greyscale form that stores
// one byte per entry instead of four. BMP color tables collapse this way
// when possible; TGA color maps never collapse.
type Palette struct {
	colors []Color
	greys  []uint8
}

// NewColorPalette wraps entries as a full-color palette.
func NewColorPalette(entries []Color) *Palette {
	return &Palette{colors: entries}
}

// NewGreyPalette wraps entries as a collapsed greyscale palette; alpha for
// every entry reads back as fully opaque.
func NewGreyPalette(entries []uint8) *Palette {
	return &Palette{greys: entries}
}

// Collapsible reports whether every entry satisfies r==g==b, in which case
// the caller should prefer NewGreyPalette.
func Collapsible(entries []Color) bool {
	for _, c := range entries {
		if c.R != c.G || c.G != c.B {
			return false
		}
	}
	return true
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	if p.greys != nil {
		return len(p.greys)
	}
	return len(p.colors)
}

// Grey reports whether the palette was collapsed to single-channel entries.
func (p *Palette) Grey() bool {
	return p != nil && p.greys != nil
}

// At returns the RGBA8 value of entry i, expanding a collapsed greyscale
// entry to r==g==b with full opacity.
func (p *Palette) At(i int) (Color, error) {
	if p == nil || i < 0 || i >= p.Len() {
		return Color{}, ErrInvalidColorTableIndex
	}
	if p.greys != nil {
		v := p.greys[i]
		return Color{R: v, G: v, B: v, A: 255}, nil
	}
	return p.colors[i], nil
}
