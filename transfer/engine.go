// Package transfer implements the Color Transfer Engine: given a source
// pixel tag and a destination pixel tag, it reads one source pixel from a
// byte cursor and writes one destination pixel, applying the channel
// expansion and averaging rules each (source, destination) pair calls for.
//
// image/reader.go's decoder hand-unrolls a single fixed
// nibble-packed-to-RGBA loop because MegaSD has exactly one source layout.
// Blight generalizes the same idea — a small per-channel loop driven by
// precomputed bit positions — across every source/destination pair this
// module supports, using a table of Masks rather than one bespoke loop per
// combination.
package transfer

import (
	"encoding/binary"
	"errors"

	"github.com/TraceMyers/Blight/pixel"
)

// ErrShortBuffer is returned when a source or destination row does not hold
// enough bytes for the requested number of pixels.
var ErrShortBuffer = errors.New("transfer: buffer too short for requested pixel count")

// ErrUnsupportedOutputTag is returned when Engine is asked to write a tag
// that is not one of the four canonical output layouts.
var ErrUnsupportedOutputTag = errors.New("transfer: unsupported output tag")

// ErrUnsupportedInputTag is returned when Engine is asked to read a tag
// that is not a recognized source-only or greyscale layout.
var ErrUnsupportedInputTag = errors.New("transfer: unsupported input tag")

// Engine transfers pixels from one source layout to one destination
// layout. It is immutable once constructed and safe to reuse across rows
// and across images of the same format, the way
// other_examples/jsummers-gobmp reader.go's bitFieldsInfo is computed once
// per image and then reused for every row.
type Engine struct {
	in    pixel.Tag
	out   pixel.Tag
	masks Masks
}

// NewStandard builds an Engine using the fixed, conventional bit positions
// for in's layout. alphaMask supplies 0 when the source has
// no alpha channel, or the channel's bit mask (typically 0xFF000000 for
// 32-bit sources) when it does.
func NewStandard(in, out pixel.Tag, alphaMask uint32) (*Engine, error) {
	if !out.Canonical() {
		return nil, ErrUnsupportedOutputTag
	}
	if in.IsColor() {
		masks, ok := StandardMasks(in)
		if !ok {
			return nil, ErrUnsupportedInputTag
		}
		masks.A = alphaMask
		return &Engine{in: in, out: out, masks: masks}, nil
	}
	switch in {
	case pixel.U8R, pixel.U16R:
		return &Engine{in: in, out: out}, nil
	default:
		return nil, ErrUnsupportedInputTag
	}
}

// NewPaletteEngine builds an Engine for color-table-driven formats, where
// pixels arrive as palette indices rather than packed words. Such an Engine
// only ever drives writeFromColor through TransferIndex/TransferColorTableRow,
// so no source tag is recorded; e.in stays Invalid, which writeFromColor
// does not treat as a 15/16-bit color source (no R8 bias).
func NewPaletteEngine(out pixel.Tag) (*Engine, error) {
	if !out.Canonical() {
		return nil, ErrUnsupportedOutputTag
	}
	return &Engine{out: out}, nil
}

// NewFromInfo builds an Engine using caller-supplied channel masks, the
// path BMP BITFIELDS/ALPHABITFIELDS images take. masks must already be
// validated against the declared bit depth (Masks.Validate).
func NewFromInfo(in, out pixel.Tag, masks Masks) (*Engine, error) {
	if !out.Canonical() {
		return nil, ErrUnsupportedOutputTag
	}
	if !in.IsColor() {
		return nil, ErrUnsupportedInputTag
	}
	return &Engine{in: in, out: out, masks: masks}, nil
}

func readWordLE(b []byte, n int) uint32 {
	switch n {
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	case 3:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	case 4:
		return binary.LittleEndian.Uint32(b)
	default:
		return uint32(b[0])
	}
}

func (e *Engine) decodeColor(word uint32) (r, g, b, a uint8) {
	r, _ = extractChannel(word, e.masks.R)
	g, _ = extractChannel(word, e.masks.G)
	b, _ = extractChannel(word, e.masks.B)
	if av, ok := extractChannel(word, e.masks.A); ok {
		a = av
	} else {
		a = 255
	}
	return
}

func greyOfColor(r, g, b uint8) uint8 {
	return uint8((uint16(r) + uint16(g) + uint16(b)) / 3)
}

func pack565(r, g, b uint8, d []byte) {
	v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	binary.LittleEndian.PutUint16(d, v)
}

// r8Bias is subtracted from the averaged grey value when the source is a
// 15/16-bit color word, preserved from the source this module is grounded
// on: its R8 setFromColor applies this bias unconditionally for 15/16-bit
// inputs, producing a lossy, occasionally-undershooting grey.
const r8Bias = 8

func (e *Engine) writeFromColor(r, g, b, a uint8, d []byte) {
	switch e.out {
	case pixel.RGBA32:
		d[0], d[1], d[2], d[3] = r, g, b, a
	case pixel.RGB16:
		pack565(r, g, b, d)
	case pixel.R8:
		grey := greyOfColor(r, g, b)
		if e.in.Size() == 2 && e.in.IsColor() {
			if grey >= r8Bias {
				grey -= r8Bias
			} else {
				grey = 0
			}
		}
		d[0] = grey
	case pixel.R16:
		grey := greyOfColor(r, g, b)
		binary.LittleEndian.PutUint16(d, uint16(grey)*257)
	}
}

func (e *Engine) writeFromGrey(grey8 uint8, grey16 uint16, d []byte) {
	switch e.out {
	case pixel.RGBA32:
		d[0], d[1], d[2], d[3] = grey8, grey8, grey8, 255
	case pixel.RGB16:
		pack565(grey8, grey8, grey8, d)
	case pixel.R8:
		d[0] = grey8
	case pixel.R16:
		binary.LittleEndian.PutUint16(d, grey16)
	}
}

// transferOne reads one source pixel from src and writes one destination
// pixel into d.
func (e *Engine) transferOne(src, d []byte) {
	if e.in.IsColor() {
		word := readWordLE(src, e.in.Size())
		r, g, b, a := e.decodeColor(word)
		e.writeFromColor(r, g, b, a, d)
		return
	}

	switch e.in {
	case pixel.U8R:
		grey8 := src[0]
		e.writeFromGrey(grey8, uint16(grey8)*257, d)
	case pixel.U16R:
		v16 := binary.LittleEndian.Uint16(src)
		grey8 := byte(v16 >> 8)
		e.writeFromGrey(grey8, v16, d)
	}
}

// TransferRow reads len(dst)/out.Size() source pixels of in.Size() bytes
// each from src and writes them into dst using out's layout.
func (e *Engine) TransferRow(src, dst []byte) error {
	outSize := e.out.Size()
	inSize := e.in.Size()
	n := len(dst) / outSize

	if len(src) < n*inSize {
		return ErrShortBuffer
	}

	for i := 0; i < n; i++ {
		s := src[i*inSize : i*inSize+inSize]
		d := dst[i*outSize : i*outSize+outSize]
		e.transferOne(s, d)
	}
	return nil
}

// TransferColorTableRow reads len(dst)/out.Size() indices of indexType from
// row, high-order index first within a byte, looks each up in palette, and
// writes it into dst using out's layout. An index outside the palette
// fails with pixel.ErrInvalidColorTableIndex.
func (e *Engine) TransferColorTableRow(indexType IndexType, row []byte, palette *pixel.Palette, dst []byte) error {
	outSize := e.out.Size()
	n := len(dst) / outSize

	if indexType.BytesForPixels(n) > len(row) {
		return ErrShortBuffer
	}

	for i := 0; i < n; i++ {
		idx, ok := indexType.unpack(row, i)
		if !ok {
			return ErrShortBuffer
		}
		if err := e.TransferIndex(idx, palette, dst[i*outSize:i*outSize+outSize]); err != nil {
			return err
		}
	}
	return nil
}

// TransferIndex looks idx up in palette and writes the resulting color into
// dst using out's layout. It is the single-pixel primitive
// TransferColorTableRow is built from, and is also used directly by BMP's
// RLE4/RLE8 decoder, which produces indices one at a time rather than as
// packed row bytes.
func (e *Engine) TransferIndex(idx int, palette *pixel.Palette, dst []byte) error {
	c, err := palette.At(idx)
	if err != nil {
		return err
	}
	e.writeFromColor(c.R, c.G, c.B, c.A, dst)
	return nil
}
