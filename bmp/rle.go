package bmp

import (
	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/transfer"
)

// rleCursor walks a byte-pair RLE4/RLE8 stream. pos, row and col track,
// respectively, the read position in
// the compressed stream and the write position in source (file) row order —
// row 0 is always the first row stored in the file, independent of
// BottomUp(). decodeRLE maps (row, col) to a destination row with the same
// bottom-up/top-down rule the uncompressed path uses.
type rleCursor struct {
	data []byte
	pos  int
	col  int32
	row  int32
}

func (c *rleCursor) next() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// rleIndex returns the color-table index a run byte b encodes for the i'th
// pixel of a run, per depth's packing: RLE8 stores one index per byte, RLE4
// packs two 4-bit indices per byte, high nibble first.
func rleIndex(depth int, b byte, i int) int {
	if depth == 4 {
		if i%2 == 0 {
			return int(b >> 4)
		}
		return int(b & 0x0F)
	}
	return int(b)
}

// decodeRLE decodes an RLE4 or RLE8 compressed pixel stream into dst, a
// buffer of height rows of outStride bytes each, using palette and engine to
// turn each decoded index into an out-tagged pixel.
func decodeRLE(data []byte, depth int, width, height int32, bottomUp bool, palette *pixel.Palette, engine *transfer.Engine, dst []byte, outStride int) error {
	c := &rleCursor{data: data}
	outSize := outStride / int(width)

	writeIndex := func(idx int) error {
		if c.col < 0 || c.col >= width || c.row < 0 || c.row >= height {
			return errs.New(errs.BmpRLECoordinatesOutOfBounds, "bmp.decodeRLE")
		}
		destRow := c.row
		if bottomUp {
			destRow = height - 1 - c.row
		}
		off := int(destRow)*outStride + int(c.col)*outSize
		if err := engine.TransferIndex(idx, palette, dst[off:off+outSize]); err != nil {
			if err == pixel.ErrInvalidColorTableIndex {
				return errs.Wrap(errs.InvalidColorTableIndex, "bmp.decodeRLE", err)
			}
			return err
		}
		return nil
	}

	for {
		n, ok := c.next()
		if !ok {
			return errs.New(errs.BmpInvalidRLEData, "bmp.decodeRLE")
		}
		b, ok := c.next()
		if !ok {
			return errs.New(errs.BmpInvalidRLEData, "bmp.decodeRLE")
		}

		if n > 0 {
			// Encoded run: n pixels using the index(es) packed into b.
			for i := 0; i < int(n); i++ {
				if err := writeIndex(rleIndex(depth, b, i)); err != nil {
					return err
				}
				c.col++
			}
			continue
		}

		switch b {
		case 0: // end of row
			c.row++
			c.col = 0
		case 1: // end of image
			return nil
		case 2: // delta: move by (dx, dy)
			dx, ok1 := c.next()
			dy, ok2 := c.next()
			if !ok1 || !ok2 {
				return errs.New(errs.BmpInvalidRLEData, "bmp.decodeRLE")
			}
			c.col += int32(dx)
			c.row += int32(dy)
		default: // absolute mode: b literal indices follow, word-padded
			count := int(b)
			dataBytes := count
			if depth == 4 {
				dataBytes = (count + 1) / 2
			}
			if c.pos+dataBytes > len(c.data) {
				return errs.New(errs.BmpInvalidRLEData, "bmp.decodeRLE")
			}
			lit := c.data[c.pos : c.pos+dataBytes]
			c.pos += dataBytes
			if (2+dataBytes)%2 != 0 {
				if _, ok := c.next(); !ok {
					return errs.New(errs.BmpInvalidRLEData, "bmp.decodeRLE")
				}
			}
			for i := 0; i < count; i++ {
				byteIdx := i
				if depth == 4 {
					byteIdx = i / 2
				}
				if err := writeIndex(rleIndex(depth, lit[byteIdx], i)); err != nil {
					return err
				}
				c.col++
			}
		}
	}
}
