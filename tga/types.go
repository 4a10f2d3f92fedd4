// Package tga decodes Truevision Targa files (V1 and V2) into a pixel.Image.
//
// Where bmp treats its header's declared data_offset as authoritative, tga
// has no such field: pixel data runs from the end of the color map to
// whichever reserved region comes next (or EOF). This module leans on an
// extent.Tracker for exactly that reason — it is the thing that answers
// "where does pixel data end" and rejects files that place two structures
// over the same bytes.
package tga

import (
	"github.com/TraceMyers/Blight/pixel"
)

// FileType records whether a footer was found (V2) or not (V1).
type FileType int

const (
	V1 FileType = iota
	V2
)

// ImageType names the TGA image_type byte. Huffman/quadtree-compressed
// variants (32, 33) and the explicit no-data type (0) have names here, but
// parseHeader rejects them with the same TgaImageTypeUnsupported error as
// any other value outside the six supported types.
type ImageType int

const (
	NoImageData  ImageType = 0
	ColorMap     ImageType = 1
	TrueColor    ImageType = 2
	Greyscale    ImageType = 3
	RleColorMap  ImageType = 9
	RleTrueColor ImageType = 10
	RleGreyscale ImageType = 11
	HuffmanDelta ImageType = 32
	HuffmanQuad  ImageType = 33
)

func (t ImageType) supported() bool {
	switch t {
	case ColorMap, TrueColor, Greyscale, RleColorMap, RleTrueColor, RleGreyscale:
		return true
	default:
		return false
	}
}

func (t ImageType) rle() bool {
	switch t {
	case RleColorMap, RleTrueColor, RleGreyscale:
		return true
	default:
		return false
	}
}

func (t ImageType) colorMapped() bool {
	return t == ColorMap || t == RleColorMap
}

func (t ImageType) trueColor() bool {
	return t == TrueColor || t == RleTrueColor
}

func (t ImageType) greyscale() bool {
	return t == Greyscale || t == RleGreyscale
}

// ColorMapSpec is the header trio's 5-byte color-map specification.
type ColorMapSpec struct {
	FirstIndex uint16
	Length     uint16
	EntryBits  uint8
}

// Footer is the optional 26-byte V2 trailer.
type Footer struct {
	ExtensionAreaOffset  uint32
	DeveloperAreaOffset  uint32
}

// AttributeType names the extension area's alpha semantics.
type AttributeType uint8

const (
	AttrNoAlpha        AttributeType = 0
	AttrUndefAlphaOK   AttributeType = 1
	AttrUndefAlphaIgn  AttributeType = 2
	AttrAlpha          AttributeType = 3
	AttrPremultiplied  AttributeType = 4
)

// ExtensionArea is the optional 495-byte V2 extension block.
type ExtensionArea struct {
	Author               string
	Comments             string
	Day, Month, Year     uint16
	Hour, Minute, Second uint16
	JobName              string
	JobHour, JobMinute, JobSecond uint16
	SoftwareID           string
	SoftwareVersion      uint16
	KeyColor             uint32
	AspectRatioNum       uint16
	AspectRatioDen       uint16
	GammaNum             uint16
	GammaDen             uint16
	ColorCorrectionOffset uint32
	PostageStampOffset   uint32
	ScanlineOffset       uint32
	AttributeType        AttributeType
}

// Info is the decoded TGA header state the pixel-transfer phase needs.
type Info struct {
	FileType FileType
	FileSize uint32

	IDLength     uint8
	ColorMapType uint8
	Type         ImageType
	ColorMapSpec ColorMapSpec

	OriginX, OriginY int16
	Width, Height    int
	Depth            int
	Descriptor       uint8

	Footer    *Footer
	Extension *ExtensionArea

	ScanlineTable        []uint32
	ColorCorrectionTable []pixel.Color

	ImageID []byte
}

// FormatName implements pixel.FileInfo.
func (i *Info) FormatName() string { return "TGA" }

// BottomUp reports whether the file stores rows bottom-to-top, per the
// image descriptor's origin bit (bit 5: 0 = bottom, 1 = top).
func (i *Info) BottomUp() bool {
	return i.Descriptor&0x20 == 0
}

// RightToLeft reports whether the file stores columns right-to-left, per
// the image descriptor's origin bit (bit 4: 0 = left, 1 = right).
func (i *Info) RightToLeft() bool {
	return i.Descriptor&0x10 != 0
}

// AlphaDepth returns the number of attribute (alpha) bits per pixel the
// descriptor declares.
func (i *Info) AlphaDepth() int {
	return int(i.Descriptor & 0x0F)
}

// AlphaMode derives the alpha mode from the extension area's attribute
// type: type 3 with 32-bit pixels yields Normal alpha, type 4 yields
// Premultiplied, anything else None.
func (i *Info) AlphaMode() pixel.AlphaMode {
	if i.Extension == nil || i.Depth != 32 {
		return pixel.AlphaNone
	}
	switch i.Extension.AttributeType {
	case AttrAlpha:
		return pixel.AlphaNormal
	case AttrPremultiplied:
		return pixel.AlphaPremultiplied
	default:
		return pixel.AlphaNone
	}
}
