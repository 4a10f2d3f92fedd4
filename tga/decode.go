// decode.go ties together the footer, header, extension, color-map, and
// packet-RLE readers into the full TGA decode path. Unlike BMP, which
// trusts a declared data_offset, TGA has no such field: every region the
// decoder reads is staked out in an extent.Tracker, and pixel data is
// whatever bytes remain between the end of the color map and the next
// reserved region (or EOF).
package tga

import (
	"log"

	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/extent"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/source"
	"github.com/TraceMyers/Blight/transfer"
)

// Decode reads a complete TGA file from src and produces a pixel.Image
// whose output tag is the most-preferred tag allowed permits for this
// file's source layout. logger, if non-nil, receives a line describing the
// file's geometry and image type.
func Decode(src source.Source, allowed func(pixel.Tag) bool, maxAlloc int64, logger *log.Logger) (*pixel.Image, error) {
	if maxAlloc > 0 && src.Size() > maxAlloc {
		return nil, errs.New(errs.AllocTooLarge, "tga.Decode")
	}

	data, err := src.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.UnexpectedEOF, "tga.Decode", err)
	}

	tracker := extent.New(uint32(len(data)))

	footer := probeFooter(data)
	fileType := V1
	if footer != nil {
		fileType = V2
		if err := tracker.TryInsert(uint32(len(data)-footerLen), uint32(len(data))); err != nil {
			return nil, wrapExtentErr(err, "tga.Decode")
		}
	}

	info, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	info.FileType = fileType
	info.FileSize = uint32(len(data))
	info.Footer = footer
	if logger != nil {
		logger.Printf("tga: %dx%d depth=%d type=%d", info.Width, info.Height, info.Depth, info.Type)
	}

	if err := tracker.TryInsert(0, headerLen); err != nil {
		return nil, wrapExtentErr(err, "tga.Decode")
	}

	if footer != nil && footer.ExtensionAreaOffset != 0 {
		begin := footer.ExtensionAreaOffset
		if err := tracker.TryInsert(begin, begin+extensionAreaLen); err != nil {
			return nil, wrapExtentErr(err, "tga.Decode")
		}
		if ea, ok := parseExtensionArea(data, begin); ok {
			info.Extension = ea
			if ea.ScanlineOffset != 0 {
				if table, ok := readScanlineTable(data, ea.ScanlineOffset, info.Height); ok {
					end := ea.ScanlineOffset + uint32(info.Height)*4
					if err := tracker.TryInsert(ea.ScanlineOffset, end); err != nil {
						return nil, wrapExtentErr(err, "tga.Decode")
					}
					info.ScanlineTable = table
				}
			}
			if ea.ColorCorrectionOffset != 0 {
				if table, ok := readColorCorrectionTable(data, ea.ColorCorrectionOffset); ok {
					end := ea.ColorCorrectionOffset + 256*8
					if err := tracker.TryInsert(ea.ColorCorrectionOffset, end); err != nil {
						return nil, wrapExtentErr(err, "tga.Decode")
					}
					info.ColorCorrectionTable = table
				}
			}
		}
	}

	idBegin := uint32(headerLen)
	idEnd := idBegin + uint32(info.IDLength)
	if info.IDLength > 0 {
		if err := tracker.TryInsert(idBegin, idEnd); err != nil {
			return nil, wrapExtentErr(err, "tga.Decode")
		}
		info.ImageID = data[idBegin:idEnd]
	}

	var palette *pixel.Palette
	mapEnd := idEnd
	if info.Type.colorMapped() {
		size, ok := colorMapEntrySize(info.ColorMapSpec.EntryBits)
		if !ok {
			return nil, errs.New(errs.TgaNonStandardColorDepthUnsupported, "tga.Decode")
		}
		mapBegin := idEnd
		mapEnd = mapBegin + uint32(int(info.ColorMapSpec.Length)*size)
		if err := tracker.TryInsert(mapBegin, mapEnd); err != nil {
			return nil, wrapExtentErr(err, "tga.Decode")
		}
		palette, err = readColorMap(data[mapBegin:mapEnd], int(info.ColorMapSpec.Length), info.ColorMapSpec.EntryBits)
		if err != nil {
			return nil, err
		}
	}

	pixelBegin := mapEnd
	pixelEnd := tracker.FirstBeyond(pixelBegin)
	if pixelEnd <= pixelBegin {
		return nil, errs.New(errs.TgaNoData, "tga.Decode")
	}
	if err := tracker.TryInsert(pixelBegin, pixelEnd); err != nil {
		return nil, wrapExtentErr(err, "tga.Decode")
	}
	pixelData := data[pixelBegin:pixelEnd]

	outTag, engine, pixelSize, indexed, err := buildEngine(info, palette, allowed)
	if err != nil {
		return nil, err
	}

	totalPixels := info.Width * info.Height
	var raw []byte
	if info.Type.rle() {
		raw, err = decodeRLE(pixelData, pixelSize, totalPixels)
	} else {
		need := totalPixels * pixelSize
		if len(pixelData) < need {
			err = errs.New(errs.UnexpectedEndOfImageBuffer, "tga.Decode")
		} else {
			raw = pixelData[:need]
		}
	}
	if err != nil {
		return nil, err
	}

	outSize := outTag.Size()
	out := pixel.NewOwning(outTag, totalPixels*outSize)
	dst := out.Bytes()
	if err := transferFlat(engine, raw, pixelSize, dst, outSize, info.Width, info.Height, info.BottomUp(), info.RightToLeft(), indexed, palette); err != nil {
		return nil, err
	}

	alpha := info.AlphaMode()
	switch {
	case !outTag.HasAlpha():
		alpha = pixel.AlphaNone
	case alpha == pixel.AlphaNone:
		alpha = pixel.AlphaNormal
	}
	return &pixel.Image{
		Width:    uint32(info.Width),
		Height:   uint32(info.Height),
		Alpha:    alpha,
		Pixels:   out,
		FileInfo: info,
	}, nil
}

func wrapExtentErr(err error, op string) error {
	if err == extent.ErrUnexpectedEOF {
		return errs.Wrap(errs.UnexpectedEOF, op, err)
	}
	return errs.Wrap(errs.OverlappingData, op, err)
}

// bgrMasks builds the byte-order masks TGA's raw pixel data needs: unlike
// BMP's literal R,G,B byte order, TGA stores true-color pixels B,G,R(,A)
// on disk.
func bgrMasks(depth int, alphaPresent bool) transfer.Masks {
	if depth == 32 {
		m := transfer.Masks{R: 0x00FF0000, G: 0x0000FF00, B: 0x000000FF}
		if alphaPresent {
			m.A = 0xFF000000
		}
		return m
	}
	return transfer.Masks{R: 0xFF0000, G: 0x00FF00, B: 0x0000FF}
}

// buildEngine selects the source layout for this file's image type and
// depth, picks the best output tag allowed permits, and constructs the
// transfer engine between them. It also reports the raw per-pixel byte
// width of the source data (pixelSize) and whether pixels are color-table
// indices.
func buildEngine(info *Info, palette *pixel.Palette, allowed func(pixel.Tag) bool) (pixel.Tag, *transfer.Engine, int, bool, error) {
	switch {
	case info.Type.colorMapped():
		if info.Depth != 8 {
			return pixel.Invalid, nil, 0, false, errs.New(errs.TgaColorTableImageNot8BitColorDepth, "tga.buildEngine")
		}
		outTag, ok := transfer.SelectOutputTag(pixel.RGBA32, allowed)
		if !ok {
			return pixel.Invalid, nil, 0, false, errs.New(errs.NoImageFormatsAllowed, "tga.buildEngine")
		}
		engine, err := transfer.NewPaletteEngine(outTag)
		if err != nil {
			return pixel.Invalid, nil, 0, false, errs.Wrap(errs.NoImageFormatsAllowed, "tga.buildEngine", err)
		}
		return outTag, engine, 1, true, nil

	case info.Type.greyscale():
		var inTag pixel.Tag
		switch info.Depth {
		case 8:
			inTag = pixel.U8R
		case 15, 16:
			inTag = pixel.U16R
		default:
			return pixel.Invalid, nil, 0, false, errs.New(errs.TgaNonStandardColorDepthForPixelFormat, "tga.buildEngine")
		}
		outTag, ok := transfer.SelectOutputTag(inTag, allowed)
		if !ok {
			return pixel.Invalid, nil, 0, false, errs.New(errs.NoImageFormatsAllowed, "tga.buildEngine")
		}
		engine, err := transfer.NewStandard(inTag, outTag, 0)
		if err != nil {
			return pixel.Invalid, nil, 0, false, errs.Wrap(errs.NoImageFormatsAllowed, "tga.buildEngine", err)
		}
		return outTag, engine, inTag.Size(), false, nil

	case info.Type.trueColor():
		alphaPresent := info.AlphaDepth() > 0
		var selTag pixel.Tag
		switch info.Depth {
		case 15:
			selTag = pixel.U16RGB15
		case 16:
			selTag = pixel.U16RGB
		case 24:
			selTag = pixel.U24RGB
		case 32:
			if alphaPresent {
				selTag = pixel.U32RGBA
			} else {
				selTag = pixel.U32RGB
			}
		default:
			return pixel.Invalid, nil, 0, false, errs.New(errs.TgaNonStandardColorDepthForPixelFormat, "tga.buildEngine")
		}

		outTag, ok := transfer.SelectOutputTag(selTag, allowed)
		if !ok {
			return pixel.Invalid, nil, 0, false, errs.New(errs.NoImageFormatsAllowed, "tga.buildEngine")
		}

		var engine *transfer.Engine
		var err error
		switch info.Depth {
		case 15, 16:
			engine, err = transfer.NewStandard(selTag, outTag, 0)
		default:
			engine, err = transfer.NewFromInfo(selTag, outTag, bgrMasks(info.Depth, alphaPresent))
		}
		if err != nil {
			return pixel.Invalid, nil, 0, false, errs.Wrap(errs.NoImageFormatsAllowed, "tga.buildEngine", err)
		}
		return outTag, engine, selTag.Size(), false, nil

	default:
		return pixel.Invalid, nil, 0, false, errs.New(errs.TgaImageTypeUnsupported, "tga.buildEngine")
	}
}

// transferFlat maps a flat, file-order raw pixel buffer into dst, applying
// the image descriptor's origin corner one pixel at a time, since packet
// RLE's runs are not bound to row width.
func transferFlat(
	engine *transfer.Engine,
	raw []byte,
	pixelSize int,
	dst []byte,
	outSize int,
	width, height int,
	bottomUp, rightToLeft bool,
	indexed bool,
	palette *pixel.Palette,
) error {
	for i := 0; i < width*height; i++ {
		row, col := i/width, i%width
		destRow := row
		if bottomUp {
			destRow = height - 1 - row
		}
		destCol := col
		if rightToLeft {
			destCol = width - 1 - col
		}
		dstOff := (destRow*width + destCol) * outSize
		srcOff := i * pixelSize

		var err error
		if indexed {
			err = engine.TransferIndex(int(raw[srcOff]), palette, dst[dstOff:dstOff+outSize])
		} else {
			err = engine.TransferRow(raw[srcOff:srcOff+pixelSize], dst[dstOff:dstOff+outSize])
		}
		if err != nil {
			if err == pixel.ErrInvalidColorTableIndex {
				return errs.Wrap(errs.InvalidColorTableIndex, "tga.transferFlat", err)
			}
			return errs.Wrap(errs.UnexpectedEndOfImageBuffer, "tga.transferFlat", err)
		}
	}
	return nil
}
