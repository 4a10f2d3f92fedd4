package transfer

import "github.com/TraceMyers/Blight/pixel"

// SelectOutputTag takes the tag describing the source pixel layout and
// returns the first canonical tag allowed permits, in the preference order
// that layout calls for. It reports false when none of the four canonical
// tags are allowed.
func SelectOutputTag(src pixel.Tag, allowed func(pixel.Tag) bool) (pixel.Tag, bool) {
	var prefs []pixel.Tag
	switch {
	case src.IsColor() && !src.HasAlpha() && src.Size() == 2:
		prefs = []pixel.Tag{pixel.RGB16, pixel.RGBA32, pixel.R8, pixel.R16}
	case src.IsColor():
		prefs = []pixel.Tag{pixel.RGBA32, pixel.RGB16, pixel.R8, pixel.R16}
	case src == pixel.U16R:
		prefs = []pixel.Tag{pixel.R16, pixel.R8, pixel.RGBA32, pixel.RGB16}
	default:
		prefs = []pixel.Tag{pixel.R8, pixel.R16, pixel.RGBA32, pixel.RGB16}
	}
	for _, t := range prefs {
		if allowed(t) {
			return t, true
		}
	}
	return pixel.Invalid, false
}
