// decode.go ties together the header, mask-block, color-table, and RLE
// readers into the full BMP decode path: slurp the file, parse headers,
// select a source tag and output tag, then walk rows in file order writing
// into the destination in bottom-up/top-down order.
package bmp

import (
	"log"

	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/source"
	"github.com/TraceMyers/Blight/transfer"
)

// Decode reads a complete BMP file from src and produces a pixel.Image
// whose output tag is the most-preferred tag allowed permits for this
// file's source layout. maxAlloc, when non-zero, rejects files larger than
// that many bytes before any allocation happens. logger, if non-nil,
// receives a line describing the file's geometry and variant.
func Decode(src source.Source, allowed func(pixel.Tag) bool, maxAlloc int64, logger *log.Logger) (*pixel.Image, error) {
	if maxAlloc > 0 && src.Size() > maxAlloc {
		return nil, errs.New(errs.AllocTooLarge, "bmp.Decode")
	}

	data, err := src.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.UnexpectedEOF, "bmp.Decode", err)
	}

	fileSize, dataOffset, err := readFileHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data) < fileHeaderLen+4 {
		return nil, errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.Decode")
	}

	headerSize := le32(data[fileHeaderLen : fileHeaderLen+4])
	variant, ok := headerLenToVariant(headerSize)
	if !ok {
		return nil, errs.New(errs.BmpInvalidHeaderSizeOrVersionUnsupported, "bmp.Decode")
	}

	info := &Info{FileSize: fileSize, DataOffset: dataOffset, HeaderSize: headerSize, Variant: variant}
	if err := readInfoHeader(info, data[fileHeaderLen:]); err != nil {
		return nil, err
	}

	// A data_offset of 0, or one that lands inside the info-header region,
	// is malformed regardless of how well the header itself parses.
	if info.DataOffset == 0 || info.DataOffset < uint32(fileHeaderLen)+headerSize {
		return nil, errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.Decode")
	}

	cursor := fileHeaderLen + int(headerSize)
	if size, need := needsMaskBlock(info); need {
		if len(data) < cursor+size {
			return nil, errs.New(errs.BmpInvalidBytesInInfoHeader, "bmp.Decode")
		}
		readMaskBlock(info, data[cursor:cursor+size])
		cursor += size
	}
	if info.HasMasks {
		if err := info.Masks.Validate(info.Depth); err != nil {
			return nil, errs.Wrap(errs.BmpInvalidColorMasks, "bmp.Decode", err)
		}
	}

	var palette *pixel.Palette
	if hasColorTable(info.Depth) {
		n := colorTableEntryCount(info.ColorCount, info.Depth)
		palette, err = readColorTable(data[cursor:], n, info.Variant)
		if err != nil {
			return nil, err
		}
	}

	width := info.Width
	height := info.AbsHeight()
	if logger != nil {
		logger.Printf("bmp: %dx%d depth=%d variant=%d compression=%d", width, height, info.Depth, info.Variant, info.Compression)
	}
	rowStride := RowStride(width, info.Depth)
	pixelDataSize := rowStride * uint32(height)

	if int64(info.DataOffset)+int64(pixelDataSize) > int64(len(data)) && info.Compression == CompressionRGB {
		return nil, errs.New(errs.UnexpectedEndOfImageBuffer, "bmp.Decode")
	}
	if int64(info.DataOffset) > int64(len(data)) {
		return nil, errs.New(errs.UnexpectedEOF, "bmp.Decode")
	}
	pixelData := data[info.DataOffset:]

	outTag, engine, err := buildEngine(info, palette, allowed)
	if err != nil {
		return nil, err
	}

	outSize := outTag.Size()
	outStride := int(width) * outSize
	out := pixel.NewOwning(outTag, outStride*int(height))
	dst := out.Bytes()
	bottomUp := info.BottomUp()

	switch info.Compression {
	case CompressionRLE4, CompressionRLE8:
		depth := 8
		if info.Compression == CompressionRLE4 {
			depth = 4
		}
		if err := decodeRLE(pixelData, depth, width, height, bottomUp, palette, engine, dst, outStride); err != nil {
			return nil, err
		}
	default:
		if uint32(len(pixelData)) < pixelDataSize {
			return nil, errs.New(errs.UnexpectedEndOfImageBuffer, "bmp.Decode")
		}
		if err := decodeRows(info, palette, engine, pixelData, dst, rowStride, outStride, width, height, bottomUp); err != nil {
			return nil, err
		}
	}

	alpha := pixel.AlphaNone
	if outTag.HasAlpha() {
		alpha = pixel.AlphaNormal
	}
	return &pixel.Image{
		Width:    uint32(width),
		Height:   uint32(height),
		Alpha:    alpha,
		Pixels:   out,
		FileInfo: info,
	}, nil
}

// buildEngine selects the source tag for this file's depth and color-table
// state, picks the best output tag allowed permits, and constructs the
// transfer engine between them.
func buildEngine(info *Info, palette *pixel.Palette, allowed func(pixel.Tag) bool) (pixel.Tag, *transfer.Engine, error) {
	if hasColorTable(info.Depth) {
		selTag := pixel.RGBA32
		if palette.Grey() {
			selTag = pixel.R8
		}
		outTag, ok := transfer.SelectOutputTag(selTag, allowed)
		if !ok {
			return pixel.Invalid, nil, errs.New(errs.NoImageFormatsAllowed, "bmp.buildEngine")
		}
		engine, err := transfer.NewPaletteEngine(outTag)
		if err != nil {
			return pixel.Invalid, nil, errs.Wrap(errs.NoImageFormatsAllowed, "bmp.buildEngine", err)
		}
		return outTag, engine, nil
	}

	alphaPresent := info.HasMasks && info.Masks.A != 0
	var selTag pixel.Tag
	switch info.Depth {
	case 16:
		if alphaPresent {
			selTag = pixel.U16RGBA
		} else {
			selTag = pixel.U16RGB
		}
	case 32:
		if alphaPresent {
			selTag = pixel.U32RGBA
		} else {
			selTag = pixel.U32RGB
		}
	default:
		selTag = pixel.U24RGB
	}

	outTag, ok := transfer.SelectOutputTag(selTag, allowed)
	if !ok {
		return pixel.Invalid, nil, errs.New(errs.NoImageFormatsAllowed, "bmp.buildEngine")
	}

	if info.HasMasks && info.Depth != 24 {
		inTag := pixel.U16RGBA
		if info.Depth == 32 {
			inTag = pixel.U32RGBA
		}
		engine, err := transfer.NewFromInfo(inTag, outTag, info.Masks)
		if err != nil {
			return pixel.Invalid, nil, errs.Wrap(errs.BmpInvalidColorMasks, "bmp.buildEngine", err)
		}
		return outTag, engine, nil
	}

	inTag, ok := sourceTag(info.Depth)
	if !ok {
		return pixel.Invalid, nil, errs.New(errs.BmpInvalidColorDepth, "bmp.buildEngine")
	}
	engine, err := transfer.NewStandard(inTag, outTag, 0)
	if err != nil {
		return pixel.Invalid, nil, errs.Wrap(errs.BmpInvalidColorMasks, "bmp.buildEngine", err)
	}
	return outTag, engine, nil
}

// decodeRows transfers an uncompressed, row-padded pixel array: indexed rows
// for palette depths, packed-word rows otherwise.
func decodeRows(
	info *Info,
	palette *pixel.Palette,
	engine *transfer.Engine,
	pixelData, dst []byte,
	rowStride uint32,
	outStride int,
	width, height int32,
	bottomUp bool,
) error {
	var indexType transfer.IndexType
	indexed := hasColorTable(info.Depth)
	if indexed {
		switch info.Depth {
		case 1:
			indexType = transfer.IndexU1
		case 4:
			indexType = transfer.IndexU4
		case 8:
			indexType = transfer.IndexU8
		}
	}

	for r := int32(0); r < height; r++ {
		destRow := r
		if bottomUp {
			destRow = height - 1 - r
		}
		row := pixelData[uint32(r)*rowStride : uint32(r)*rowStride+rowStride]
		dstRow := dst[int(destRow)*outStride : int(destRow)*outStride+outStride]

		var err error
		if indexed {
			err = engine.TransferColorTableRow(indexType, row, palette, dstRow)
		} else {
			err = engine.TransferRow(row, dstRow)
		}
		if err != nil {
			if err == pixel.ErrInvalidColorTableIndex {
				return errs.Wrap(errs.InvalidColorTableIndex, "bmp.decodeRows", err)
			}
			return errs.Wrap(errs.UnexpectedEndOfImageBuffer, "bmp.decodeRows", err)
		}
	}
	return nil
}
