package transfer

import (
	"errors"
	"math/bits"

	"github.com/TraceMyers/Blight/pixel"
)

// Masks gives the bit position of each channel within a source pixel word.
// A mask of 0 means the channel is absent from the source.
type Masks struct {
	R, G, B, A uint32
}

// ErrInvalidColorMasks is returned when channel masks overlap or do not fit
// within the declared bit depth.
var ErrInvalidColorMasks = errors.New("transfer: channel masks overlap or exceed bit depth")

// Validate checks that R, G, B, and A are pairwise disjoint and that their
// union fits within depth bits.
func (m Masks) Validate(depth int) error {
	all := []uint32{m.R, m.G, m.B, m.A}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[i]&all[j] != 0 {
				return ErrInvalidColorMasks
			}
		}
	}
	union := m.R | m.G | m.B | m.A
	if union != 0 && bits.Len32(union) > depth {
		return ErrInvalidColorMasks
	}
	return nil
}

// StandardMasks returns the fixed channel positions conventionally
// assigned to a source tag when no explicit BITFIELDS/ALPHABITFIELDS masks
// are present. It is defined only for the source tags that have a
// conventional fixed layout.
func StandardMasks(in pixel.Tag) (Masks, bool) {
	switch in {
	case pixel.U16RGB15:
		return Masks{R: 0x7C00, G: 0x03E0, B: 0x001F}, true
	case pixel.U16RGB:
		return Masks{R: 0xF800, G: 0x07E0, B: 0x001F}, true
	// U24_RGB/U32_RGB(A) store their channels red-first, so red sits in the
	// word's low byte once readWordLE packs the row's first file byte into
	// the word's low bits.
	case pixel.U24RGB:
		return Masks{R: 0x0000FF, G: 0x00FF00, B: 0xFF0000}, true
	case pixel.U32RGB:
		return Masks{R: 0x0000FF, G: 0x00FF00, B: 0xFF0000}, true
	case pixel.U32RGBA:
		return Masks{R: 0x0000FF, G: 0x00FF00, B: 0xFF0000, A: 0xFF000000}, true
	default:
		return Masks{}, false
	}
}

// extractChannel reads the bits of word selected by mask and widens them to
// an 8-bit channel value. A narrower-than-8-bit channel is left-shifted
// into the high bits with the low bits left at zero — it is not
// bit-replicated — and a wider-than-8-bit channel is right-shifted,
// discarding its low bits.
func extractChannel(word uint32, mask uint32) (uint8, bool) {
	if mask == 0 {
		return 0, false
	}
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	v := (word & mask) >> uint(shift)
	switch {
	case width < 8:
		return uint8(v << uint(8-width)), true
	case width > 8:
		return uint8(v >> uint(width-8)), true
	default:
		return uint8(v), true
	}
}
