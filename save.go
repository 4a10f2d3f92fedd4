package blight

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
)

// Save writes img to path+filename. Saving is scaffolded but incomplete:
// only the BMP 8-bit color-table path exists, built the same way
// image/writer.go reduces a MegaSD tile's colors with
// quantize.MedianCutQuantizer before writing an indexed format. Every other
// combination of hint and source pixel tag fails with SaveUnsupported.
func Save(path, filename string, img *Image, hint Format, opts Options) error {
	if hint != Bmp || img == nil || !img.Valid() || img.Pixels.Tag() != pixel.RGBA32 {
		return errs.New(errs.SaveUnsupported, "blight.Save")
	}
	return saveBmp8(path, filename, img, opts)
}

// rgbaView adapts an RGBA32 pixel.Container to image.Image so it can be fed
// to quantize.MedianCutQuantizer, the way image/writer.go hands its
// *image.Paletted directly to the same quantizer.
type rgbaView struct {
	w, h int
	buf  []byte
}

func (v *rgbaView) ColorModel() color.Model { return color.RGBAModel }
func (v *rgbaView) Bounds() image.Rectangle { return image.Rect(0, 0, v.w, v.h) }
func (v *rgbaView) At(x, y int) color.Color {
	off := (y*v.w + x) * 4
	return color.RGBA{R: v.buf[off], G: v.buf[off+1], B: v.buf[off+2], A: v.buf[off+3]}
}

func saveBmp8(path, filename string, img *Image, opts Options) error {
	w, h := int(img.Width), int(img.Height)
	view := &rgbaView{w: w, h: h, buf: img.Pixels.Bytes()}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, 256), view)

	indexed := image.NewPaletted(view.Bounds(), palette)
	draw.Draw(indexed, indexed.Bounds(), view, image.Point{}, draw.Src)

	full, err := resolveSavePath(path, filename, opts.LocalPath)
	if err != nil {
		return errs.Wrap(errs.UnexpectedEOF, "blight.saveBmp8", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return errs.Wrap(errs.UnexpectedEOF, "blight.saveBmp8", err)
	}
	defer f.Close()

	return writeBmp8(f, indexed)
}

func writeBmp8(f *os.File, img *image.Paletted) error {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	rowSize := ((w + 3) / 4) * 4
	colorTableLen := 256 * 4
	pixelDataOffset := 14 + 40 + colorTableLen
	fileSize := pixelDataOffset + rowSize*h

	header := make([]byte, 14)
	header[0], header[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(header[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(header[10:14], uint32(pixelDataOffset))
	if _, err := f.Write(header); err != nil {
		return errs.Wrap(errs.UnexpectedEOF, "blight.writeBmp8", err)
	}

	info := make([]byte, 40)
	binary.LittleEndian.PutUint32(info[0:4], 40)
	binary.LittleEndian.PutUint32(info[4:8], uint32(w))
	binary.LittleEndian.PutUint32(info[8:12], uint32(h))
	binary.LittleEndian.PutUint16(info[12:14], 1)
	binary.LittleEndian.PutUint16(info[14:16], 8)
	binary.LittleEndian.PutUint32(info[20:24], uint32(rowSize*h))
	binary.LittleEndian.PutUint32(info[32:36], 256)
	if _, err := f.Write(info); err != nil {
		return errs.Wrap(errs.UnexpectedEOF, "blight.writeBmp8", err)
	}

	table := make([]byte, colorTableLen)
	for i := 0; i < 256; i++ {
		var c color.RGBA
		if i < len(img.Palette) {
			c = colorToRGBA(img.Palette[i])
		}
		table[i*4+0] = c.B
		table[i*4+1] = c.G
		table[i*4+2] = c.R
		table[i*4+3] = 0
	}
	if _, err := f.Write(table); err != nil {
		return errs.Wrap(errs.UnexpectedEOF, "blight.writeBmp8", err)
	}

	row := make([]byte, rowSize)
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			row[x] = img.ColorIndexAt(x, y)
		}
		for x := w; x < rowSize; x++ {
			row[x] = 0
		}
		if _, err := f.Write(row); err != nil {
			return errs.Wrap(errs.UnexpectedEOF, "blight.writeBmp8", err)
		}
	}

	return nil
}

func colorToRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// resolveSavePath mirrors source.resolvePath's join/absolute rule for the
// write side, since that helper isn't exported.
func resolveSavePath(dir, name string, local bool) (string, error) {
	joined := filepath.Join(dir, name)
	if filepath.IsAbs(joined) {
		return joined, nil
	}
	if !local {
		return filepath.Abs(joined)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, joined), nil
}
