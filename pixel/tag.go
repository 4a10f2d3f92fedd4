// Package pixel defines the closed set of pixel layouts Blight understands,
// and the buffer type that carries bytes tagged with one of them.
package pixel

// Tag names a pixel layout, either one a decoded Image may carry (the four
// canonical output tags), an auxiliary pass-through layout, or a
// source-only layout describing how bytes sit in a file before transfer.
type Tag int

const (
	Invalid Tag = iota

	// Canonical output tags. A successfully decoded Image carries one of
	// these four and no other.
	RGBA32
	RGB16
	R8
	R16

	// Auxiliary in-memory-only layouts, carried opaquely for pass-through;
	// Blight's transfer engine does not produce these as decode output.
	RGBA128F
	RGBA128
	R32F
	RG64F
	BGR24
	BGR32

	// Source-only tags: how bytes are laid out in a file before transfer.
	U8R
	U16R
	U16RGB   // 5-6-5 packed in one 16-bit word
	U16RGB15 // 5-5-5 packed in one 16-bit word
	U16RGBA  // custom channel masks, always 16-bit wide
	U24RGB
	U32RGB
	U32RGBA
)

func (t Tag) String() string {
	switch t {
	case RGBA32:
		return "RGBA32"
	case RGB16:
		return "RGB16"
	case R8:
		return "R8"
	case R16:
		return "R16"
	case RGBA128F:
		return "RGBA128F"
	case RGBA128:
		return "RGBA128"
	case R32F:
		return "R32F"
	case RG64F:
		return "RG64F"
	case BGR24:
		return "BGR24"
	case BGR32:
		return "BGR32"
	case U8R:
		return "U8_R"
	case U16R:
		return "U16_R"
	case U16RGB:
		return "U16_RGB"
	case U16RGB15:
		return "U16_RGB15"
	case U16RGBA:
		return "U16_RGBA"
	case U24RGB:
		return "U24_RGB"
	case U32RGB:
		return "U32_RGB"
	case U32RGBA:
		return "U32_RGBA"
	default:
		return "Invalid"
	}
}

type tagInfo struct {
	size     int
	isColor  bool
	hasAlpha bool
}

var tagTable = map[Tag]tagInfo{
	RGBA32:   {4, true, true},
	RGB16:    {2, true, false},
	R8:       {1, false, false},
	R16:      {2, false, false},
	RGBA128F: {16, true, true},
	RGBA128:  {16, true, true},
	R32F:     {4, false, false},
	RG64F:    {8, false, false},
	BGR24:    {3, true, false},
	BGR32:    {4, true, false},
	U8R:      {1, false, false},
	U16R:     {2, false, false},
	U16RGB:   {2, true, false},
	U16RGB15: {2, true, false},
	U16RGBA:  {2, true, true},
	U24RGB:   {3, true, false},
	U32RGB:   {4, true, false},
	U32RGBA:  {4, true, true},
}

// Size returns the number of bytes one pixel of this tag occupies.
func (t Tag) Size() int {
	return tagTable[t].size
}

// IsColor reports whether the layout carries chroma (RGB-like) rather than a
// single grey/luminance channel.
func (t Tag) IsColor() bool {
	return tagTable[t].isColor
}

// HasAlpha reports whether the layout carries a dedicated alpha channel.
func (t Tag) HasAlpha() bool {
	return tagTable[t].hasAlpha
}

// Canonical reports whether t is one of the four tags a decoded Image may
// carry.
func (t Tag) Canonical() bool {
	switch t {
	case RGBA32, RGB16, R8, R16:
		return true
	default:
		return false
	}
}

// SourceOnly reports whether t describes an in-file layout rather than an
// in-memory output layout.
func (t Tag) SourceOnly() bool {
	switch t {
	case U8R, U16R, U16RGB, U16RGB15, U16RGBA, U24RGB, U32RGB, U32RGBA:
		return true
	default:
		return false
	}
}
