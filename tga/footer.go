package tga

import (
	"encoding/binary"
)

const footerLen = 26

// signature is the literal byte sequence the V2 footer carries in its
// trailing 18 bytes: "TRUEVISION-XFILE." followed by a nul terminator.
var signature = [18]byte{
	'T', 'R', 'U', 'E', 'V', 'I', 'S', 'I', 'O', 'N', '-', 'X', 'F', 'I', 'L', 'E', '.', 0,
}

func le16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func le32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// probeFooter reads the last 26 bytes of data and reports whether they
// carry the V2 signature. A file shorter than footerLen is always V1.
func probeFooter(data []byte) *Footer {
	if len(data) < footerLen {
		return nil
	}
	tail := data[len(data)-footerLen:]
	if [18]byte(tail[8:26]) != signature {
		return nil
	}
	return &Footer{
		ExtensionAreaOffset: le32(tail[0:4]),
		DeveloperAreaOffset: le32(tail[4:8]),
	}
}
