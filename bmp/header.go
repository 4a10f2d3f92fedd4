package bmp

import (
	"encoding/binary"

	"github.com/TraceMyers/Blight/errs"
)

const fileHeaderLen = 14

func le16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func le32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// readFileHeader parses the 14-byte BITMAPFILEHEADER from buf[0:14].
func readFileHeader(buf []byte) (fileSize, dataOffset uint32, err error) {
	if len(buf) < fileHeaderLen {
		return 0, 0, errs.New(errs.InvalidSizeForFormat, "bmp.readFileHeader")
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		return 0, 0, errs.New(errs.BmpInvalidBytesInFileHeader, "bmp.readFileHeader")
	}
	reserved := le32(buf[6:10])
	if reserved != 0 {
		return 0, 0, errs.New(errs.BmpInvalidBytesInFileHeader, "bmp.readFileHeader")
	}
	fileSize = le32(buf[2:6])
	dataOffset = le32(buf[10:14])
	return fileSize, dataOffset, nil
}

// headerLenToVariant maps the declared DIB header size to the variant it
// selects.
func headerLenToVariant(n uint32) (HeaderVariant, bool) {
	switch n {
	case 12:
		return VariantCore, true
	case 40:
		return VariantV1, true
	case 108:
		return VariantV4, true
	case 124:
		return VariantV5, true
	default:
		return 0, false
	}
}

// readInfoHeader parses the info header payload (buf starts at the info
// header's own first byte, i.e. the header-size field) into info. width and
// height are read as signed integers throughout — including the 16-bit OS/2
// Core fields, which the source this module is grounded on treats as signed
// rather than unsigned, producing row-flipped output for some OS/2 files.
// That behavior is preserved here rather than corrected.
func readInfoHeader(info *Info, buf []byte) error {
	switch info.Variant {
	case VariantCore:
		if len(buf) < 12 {
			return errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.readInfoHeader")
		}
		info.Width = int32(int16(le16(buf[4:6])))
		info.Height = int32(int16(le16(buf[6:8])))
		info.Depth = int(le16(buf[10:12]))
		info.Compression = CompressionRGB
	case VariantV1, VariantV4, VariantV5:
		if len(buf) < 40 {
			return errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.readInfoHeader")
		}
		info.Width = int32(le32(buf[4:8]))
		info.Height = int32(le32(buf[8:12]))
		info.Depth = int(le16(buf[14:16]))
		comp := le32(buf[16:20])
		if comp > 9 {
			return errs.New(errs.BmpInvalidCompression, "bmp.readInfoHeader")
		}
		info.Compression = Compression(comp)
		info.DataSize = le32(buf[20:24])
		info.ColorCount = le32(buf[32:36])

		if info.Variant == VariantV4 || info.Variant == VariantV5 {
			if len(buf) < 108 {
				return errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.readInfoHeader")
			}
			info.Masks.R = le32(buf[40:44])
			info.Masks.G = le32(buf[44:48])
			info.Masks.B = le32(buf[48:52])
			info.Masks.A = le32(buf[52:56])
			info.HasMasks = true
			info.ColorSpace = le32(buf[56:60])
			info.CIEXYZ = &CIEXYZTriple{
				Red:   CIEXYZ{X: le32(buf[60:64]), Y: le32(buf[64:68]), Z: le32(buf[68:72])},
				Green: CIEXYZ{X: le32(buf[72:76]), Y: le32(buf[76:80]), Z: le32(buf[80:84])},
				Blue:  CIEXYZ{X: le32(buf[84:88]), Y: le32(buf[88:92]), Z: le32(buf[92:96])},
			}
			info.GammaRed = le32(buf[96:100])
			info.GammaGreen = le32(buf[100:104])
			info.GammaBlue = le32(buf[104:108])
		}

		if info.Variant == VariantV5 {
			if len(buf) < 124 {
				return errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.readInfoHeader")
			}
			info.ProfileOffset = le32(buf[112:116])
			info.ProfileSize = le32(buf[116:120])
		}
	}

	if info.Width <= 0 || info.Height == 0 {
		return errs.New(errs.BmpInvalidSizeInfo, "bmp.readInfoHeader")
	}

	switch info.Depth {
	case 1, 4, 8, 16, 24, 32:
	default:
		return errs.New(errs.BmpInvalidColorDepth, "bmp.readInfoHeader")
	}

	if !info.Compression.supported() {
		return errs.New(errs.BmpCompressionUnsupported, "bmp.readInfoHeader")
	}

	return nil
}

// needsMaskBlock reports whether a separate 12/16-byte channel-mask block
// follows the info header — true only for V1 headers under BITFIELDS or
// ALPHABITFIELDS, since V4/V5 headers already carry masks inline.
func needsMaskBlock(info *Info) (size int, need bool) {
	if info.Variant != VariantV1 {
		return 0, false
	}
	switch info.Compression {
	case CompressionBitfields:
		return 12, true
	case CompressionAlphaBitfields:
		return 16, true
	default:
		return 0, false
	}
}

func readMaskBlock(info *Info, buf []byte) {
	info.Masks.R = le32(buf[0:4])
	info.Masks.G = le32(buf[4:8])
	info.Masks.B = le32(buf[8:12])
	if len(buf) >= 16 {
		info.Masks.A = le32(buf[12:16])
	}
	info.HasMasks = true
}
