package tga

import (
	"github.com/TraceMyers/Blight/errs"
)

const headerLen = 18

// parseHeader reads the 18-byte header trio from buf[0:18]: id_length,
// color_map_type, image_type, the 5-byte color-map spec, and the 10-byte
// image spec.
func parseHeader(buf []byte) (*Info, error) {
	if len(buf) < headerLen {
		return nil, errs.New(errs.InvalidSizeForFormat, "tga.parseHeader")
	}

	info := &Info{
		IDLength:     buf[0],
		ColorMapType: buf[1],
		Type:         ImageType(buf[2]),
		ColorMapSpec: ColorMapSpec{
			FirstIndex: le16(buf[3:5]),
			Length:     le16(buf[5:7]),
			EntryBits:  buf[7],
		},
		OriginX:    int16(le16(buf[8:10])),
		OriginY:    int16(le16(buf[10:12])),
		Width:      int(le16(buf[12:14])),
		Height:     int(le16(buf[14:16])),
		Depth:      int(buf[16]),
		Descriptor: buf[17],
	}

	if !info.Type.supported() {
		return nil, errs.New(errs.TgaImageTypeUnsupported, "tga.parseHeader")
	}
	if info.ColorMapType > 1 {
		return nil, errs.New(errs.TgaFlavorUnsupported, "tga.parseHeader")
	}
	if !info.Type.colorMapped() && info.ColorMapSpec.Length != 0 {
		return nil, errs.New(errs.TgaColorMapDataInNonColorMapImage, "tga.parseHeader")
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, errs.New(errs.TgaNoData, "tga.parseHeader")
	}

	return info, nil
}
