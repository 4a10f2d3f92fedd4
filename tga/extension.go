package tga

import (
	"github.com/TraceMyers/Blight/pixel"
)

const extensionAreaLen = 495

// cstr trims a fixed-width nul-padded field down to its printable prefix.
func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// parseExtensionArea reads the 495-byte extension area at offset. A length
// field other than 495 silently disables extension parsing rather than
// failing the decode — the footer itself remains valid either way.
func parseExtensionArea(data []byte, offset uint32) (*ExtensionArea, bool) {
	if offset == 0 || int64(offset)+extensionAreaLen > int64(len(data)) {
		return nil, false
	}
	buf := data[offset : offset+extensionAreaLen]
	if le16(buf[0:2]) != extensionAreaLen {
		return nil, false
	}

	ea := &ExtensionArea{
		Author:                cstr(buf[2:43]),
		Comments:              cstr(buf[43:324]),
		Month:                 le16(buf[324:326]),
		Day:                   le16(buf[326:328]),
		Year:                  le16(buf[328:330]),
		Hour:                  le16(buf[330:332]),
		Minute:                le16(buf[332:334]),
		Second:                le16(buf[334:336]),
		JobName:               cstr(buf[336:377]),
		JobHour:               le16(buf[377:379]),
		JobMinute:             le16(buf[379:381]),
		JobSecond:             le16(buf[381:383]),
		SoftwareID:            cstr(buf[383:424]),
		SoftwareVersion:       le16(buf[424:426]),
		KeyColor:              le32(buf[426:430]),
		AspectRatioNum:        le16(buf[430:432]),
		AspectRatioDen:        le16(buf[432:434]),
		GammaNum:              le16(buf[434:436]),
		GammaDen:              le16(buf[436:438]),
		ColorCorrectionOffset: le32(buf[438:442]),
		PostageStampOffset:    le32(buf[442:446]),
		ScanlineOffset:        le32(buf[446:450]),
		AttributeType:         AttributeType(buf[450]),
	}
	return ea, true
}

// readScanlineTable reads height little-endian u32 row offsets starting at
// offset.
func readScanlineTable(data []byte, offset uint32, height int) ([]uint32, bool) {
	size := int64(height) * 4
	if offset == 0 || int64(offset)+size > int64(len(data)) {
		return nil, false
	}
	buf := data[offset : int64(offset)+size]
	table := make([]uint32, height)
	for i := 0; i < height; i++ {
		table[i] = le32(buf[i*4 : i*4+4])
	}
	return table, true
}

// readColorCorrectionTable reads 256 ARGB16 entries starting at offset.
// Values are narrowed to 8 bits per channel since pixel.Color is an RGBA8
// type; the correction table itself is never applied to pixel data, only
// carried on Info for a caller that wants it.
func readColorCorrectionTable(data []byte, offset uint32) ([]pixel.Color, bool) {
	const n = 256
	const entryLen = 8 // 4 little-endian u16 channels, ARGB order
	size := int64(n) * entryLen
	if offset == 0 || int64(offset)+size > int64(len(data)) {
		return nil, false
	}
	buf := data[offset : int64(offset)+size]
	table := make([]pixel.Color, n)
	for i := 0; i < n; i++ {
		e := buf[i*entryLen : i*entryLen+entryLen]
		a := le16(e[0:2])
		r := le16(e[2:4])
		g := le16(e[4:6])
		b := le16(e[6:8])
		table[i] = pixel.Color{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
	return table, true
}
