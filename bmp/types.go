// Package bmp decodes Windows/OS/2 Bitmap files (Core, V1, V4, V5 info
// header variants) into a pixel.Image.
//
// The header-dispatch shape — read a fixed prefix, branch on a declared
// length field, hand the rest to a variant-specific parser — is grounded on
// other_examples/jsummers-gobmp's decodeInfoHeaderFuncType table, adapted
// here to the closed errs.Kind taxonomy this module uses throughout rather
// than gobmp's two ad hoc string error types.
package bmp

import (
	"github.com/TraceMyers/Blight/transfer"
)

// HeaderVariant names which DIB info-header layout a file declares.
type HeaderVariant int

const (
	VariantCore HeaderVariant = iota // 12-byte BITMAPCOREHEADER
	VariantV1                        // 40-byte BITMAPINFOHEADER
	VariantV4                        // 108-byte BITMAPV4HEADER
	VariantV5                        // 124-byte BITMAPV5HEADER
)

// Compression names the BMP biCompression tag. Only RGB, RLE4, RLE8,
// BITFIELDS, and ALPHABITFIELDS are supported for decoding; the rest are
// recognized so an unsupported-but-valid file fails with a distinct error
// from a malformed one.
type Compression int

const (
	CompressionRGB Compression = iota
	CompressionRLE8
	CompressionRLE4
	CompressionBitfields
	CompressionJPEG
	CompressionPNG
	CompressionAlphaBitfields
	CompressionCMYK
	CompressionCMYKRLE8
	CompressionCMYKRLE4
)

func (c Compression) supported() bool {
	switch c {
	case CompressionRGB, CompressionRLE4, CompressionRLE8, CompressionBitfields, CompressionAlphaBitfields:
		return true
	default:
		return false
	}
}

// CIEXYZ is a fixed-point (FXPT2DOT30) CIE 1931 coordinate, as stored in a
// BITMAPV4HEADER/BITMAPV5HEADER CIEXYZTRIPLE.
type CIEXYZ struct {
	X, Y, Z uint32
}

// CIEXYZTriple is the V4/V5 header's declared color-space primaries.
type CIEXYZTriple struct {
	Red, Green, Blue CIEXYZ
}

// Info is the decoded BMP header state: everything the pixel-transfer phase
// needs to know to read the file's pixel data, plus the color-space
// metadata (ICC profile location, gamma, CIE primaries) that this decoder
// carries for a caller to consume but never applies itself.
type Info struct {
	FileSize   uint32
	DataOffset uint32
	HeaderSize uint32
	Variant    HeaderVariant

	Width  int32
	Height int32
	Depth  int

	Compression Compression
	DataSize    uint32
	ColorCount  uint32

	Masks    transfer.Masks
	HasMasks bool

	ColorSpace    uint32
	CIEXYZ        *CIEXYZTriple
	GammaRed      uint32
	GammaGreen    uint32
	GammaBlue     uint32
	ProfileOffset uint32
	ProfileSize   uint32
}

// FormatName implements pixel.FileInfo.
func (i *Info) FormatName() string { return "BMP" }

// AbsHeight returns the image's height, independent of row direction.
func (i *Info) AbsHeight() int32 {
	if i.Height < 0 {
		return -i.Height
	}
	return i.Height
}

// BottomUp reports whether rows are stored bottom-up in the file. A
// positive height means bottom-up storage; a negative height (the OS/2
// signed-dimension quirk readInfoHeader preserves rather than rejecting)
// means top-down.
func (i *Info) BottomUp() bool {
	return i.Height > 0
}

// RowStride returns the number of bytes between consecutive row starts in
// the pixel data: each row is padded to a 4-byte boundary.
func RowStride(width int32, depth int) uint32 {
	return uint32((int64(width)*int64(depth)+31)/32) * 4
}
