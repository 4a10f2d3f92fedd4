package tga

import (
	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
)

// colorMapEntrySize maps entry bit depth to byte width. Any other declared
// depth is rejected.
func colorMapEntrySize(entryBits uint8) (int, bool) {
	switch entryBits {
	case 15:
		return 2, true
	case 16:
		return 2, true
	case 24:
		return 3, true
	case 32:
		return 4, true
	default:
		return 0, false
	}
}

// readColorMap decodes length entries of entryBits width from buf. Unlike
// BMP's color table, a TGA color map never collapses to greyscale
// (pixel.Palette's doc comment): its entries are always full RGBA8 colors.
func readColorMap(buf []byte, length int, entryBits uint8) (*pixel.Palette, error) {
	size, ok := colorMapEntrySize(entryBits)
	if !ok {
		return nil, errs.New(errs.TgaNonStandardColorDepthUnsupported, "tga.readColorMap")
	}
	if len(buf) < length*size {
		return nil, errs.New(errs.TgaNonStandardColorTableUnsupported, "tga.readColorMap")
	}

	entries := make([]pixel.Color, length)
	for i := 0; i < length; i++ {
		e := buf[i*size : i*size+size]
		entries[i] = decodeColorMapEntry(e, entryBits)
	}
	return pixel.NewColorPalette(entries), nil
}

func decodeColorMapEntry(e []byte, entryBits uint8) pixel.Color {
	switch entryBits {
	case 15:
		w := le16(e)
		return pixel.Color{
			R: uint8((w>>10)&0x1F) << 3,
			G: uint8((w>>5)&0x1F) << 3,
			B: uint8(w&0x1F) << 3,
			A: 255,
		}
	case 16:
		w := le16(e)
		return pixel.Color{
			R: uint8((w>>11)&0x1F) << 3,
			G: uint8((w>>5)&0x3F) << 2,
			B: uint8(w&0x1F) << 3,
			A: 255,
		}
	case 24:
		return pixel.Color{R: e[2], G: e[1], B: e[0], A: 255}
	default: // 32
		return pixel.Color{R: e[2], G: e[1], B: e[0], A: e[3]}
	}
}
