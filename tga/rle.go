package tga

import (
	"github.com/TraceMyers/Blight/errs"
)

// decodeRLE walks a TGA packet-RLE stream and returns a flat buffer of
// totalPixels pixels of pixelSize bytes each, in file (linear) order. A
// packet's run is not clipped to a row boundary — it may straddle rows —
// and decoding stops purely on packet count against totalPixels, never on
// a row-width count.
func decodeRLE(data []byte, pixelSize, totalPixels int) ([]byte, error) {
	out := make([]byte, totalPixels*pixelSize)
	pos := 0
	written := 0

	for written < totalPixels {
		if pos >= len(data) {
			return nil, errs.New(errs.TgaNoData, "tga.decodeRLE")
		}
		header := data[pos]
		pos++
		count := int(header&0x7F) + 1
		if written+count > totalPixels {
			count = totalPixels - written
		}

		if header&0x80 != 0 {
			// repeat packet: one pixel value repeated count times.
			if pos+pixelSize > len(data) {
				return nil, errs.New(errs.TgaNoData, "tga.decodeRLE")
			}
			px := data[pos : pos+pixelSize]
			pos += pixelSize
			for i := 0; i < count; i++ {
				copy(out[written*pixelSize:written*pixelSize+pixelSize], px)
				written++
			}
		} else {
			// literal packet: count distinct pixel values follow.
			need := count * pixelSize
			if pos+need > len(data) {
				return nil, errs.New(errs.TgaNoData, "tga.decodeRLE")
			}
			copy(out[written*pixelSize:(written+count)*pixelSize], data[pos:pos+need])
			pos += need
			written += count
		}
	}

	return out, nil
}
