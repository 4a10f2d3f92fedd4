package bmp

import (
	"github.com/TraceMyers/Blight/pixel"
)

// sourceTag selects the pixel tag for the non-palette depths (16/24/32)
// under standard, non-BITFIELDS layouts.
// Depths of 8 or less are index-based and go through the palette path in
// decode.go instead. 16- and 32-bit images with channel masks (a V1 mask
// block, or the masks V4/V5 headers carry inline) use the mask-bearing tags
// (U16_RGBA/U32_RGBA) directly, bypassing this table, since
// their channel widths and positions come from the file rather than a fixed
// convention.
func sourceTag(depth int) (pixel.Tag, bool) {
	switch depth {
	case 16:
		return pixel.U16RGB, true
	case 24:
		return pixel.U24RGB, true
	case 32:
		return pixel.U32RGB, true
	default:
		return pixel.Invalid, false
	}
}
