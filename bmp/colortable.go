package bmp

import (
	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
)

// hasColorTable reports whether depth implies a color table.
func hasColorTable(depth int) bool {
	switch depth {
	case 1, 4, 8:
		return true
	default:
		return false
	}
}

// colorTableEntryCount honors the declared color count only when it falls
// in [2, 2^depth]; outside that range it falls back to the full 2^depth.
func colorTableEntryCount(declared uint32, depth int) int {
	max := 1 << depth
	if declared >= 2 && int(declared) <= max {
		return int(declared)
	}
	return max
}

// readColorTable reads n entries of 3 (Core) or 4 (V1/V4/V5) bytes each in
// BGR(x) order, collapsing to a greyscale palette when every entry
// satisfies r==g==b.
func readColorTable(buf []byte, n int, variant HeaderVariant) (*pixel.Palette, error) {
	bytesPerEntry := 4
	if variant == VariantCore {
		bytesPerEntry = 3
	}
	if len(buf) < n*bytesPerEntry {
		return nil, errs.New(errs.BmpInvalidColorTable, "bmp.readColorTable")
	}

	entries := make([]pixel.Color, n)
	for i := 0; i < n; i++ {
		e := buf[i*bytesPerEntry : i*bytesPerEntry+bytesPerEntry]
		entries[i] = pixel.Color{R: e[2], G: e[1], B: e[0], A: 255}
	}

	if pixel.Collapsible(entries) {
		greys := make([]uint8, n)
		for i, c := range entries {
			greys[i] = c.R
		}
		return pixel.NewGreyPalette(greys), nil
	}
	return pixel.NewColorPalette(entries), nil
}
