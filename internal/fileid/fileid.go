// Package fileid holds the shared extension and magic-byte tables the
// Format Dispatcher uses to infer a file's raster format, grounded the same
// way jsummers-gobmp registers a magic-string matcher and davehouse-go-targa
// probes its footer signature (other_examples) rather than sniffing content
// through an imported image library.
package fileid

import (
	"path/filepath"
	"strings"

	"github.com/TraceMyers/Blight/source"
)

// Format names a raster format the dispatcher can resolve a file to. The
// zero value, Unknown, means neither stage of inference matched.
type Format int

const (
	Unknown Format = iota
	Bmp
	Png
	Jpg
	Tga
)

func (f Format) String() string {
	switch f {
	case Bmp:
		return "Bmp"
	case Png:
		return "Png"
	case Jpg:
		return "Jpg"
	case Tga:
		return "Tga"
	default:
		return "Unknown"
	}
}

var extensionTable = map[string]Format{
	".bmp":  Bmp,
	".dib":  Bmp,
	".png":  Png,
	".jpg":  Jpg,
	".jpeg": Jpg,
	".tga":  Tga,
	".icb":  Tga,
	".vda":  Tga,
	".vst":  Tga,
	".tpic": Tga,
}

// ByExtension maps the lowercased trailing extension of filename via a
// fixed table, the dispatcher's first inference stage.
func ByExtension(filename string) (Format, bool) {
	f, ok := extensionTable[strings.ToLower(filepath.Ext(filename))]
	return f, ok
}

var pngMagic = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// tgaSignature is the literal byte sequence the TGA footer carries at
// offset 8 of its trailing 26 bytes.
var tgaSignature = [18]byte{'T', 'R', 'U', 'E', 'V', 'I', 'S', 'I', 'O', 'N', '-', 'X', 'F', 'I', 'L', 'E', '.', 0}

// ByContent probes the file's first bytes for the BMP or PNG magic, then
// its last 26 bytes for the TGA footer signature. This is the dispatcher's
// second inference stage, used when the extension is absent or unrecognized.
func ByContent(src source.Source) (Format, bool) {
	size := src.Size()

	if size >= 2 {
		n := int64(8)
		if size < n {
			n = size
		}
		head := make([]byte, n)
		if err := src.ReadAt(head, 0); err == nil {
			if head[0] == 'B' && head[1] == 'M' {
				return Bmp, true
			}
			if n == 8 {
				var probe [8]byte
				copy(probe[:], head)
				if probe == pngMagic {
					return Png, true
				}
			}
		}
	}

	if size >= 26 {
		tail := make([]byte, 18)
		if err := src.ReadAt(tail, size-18); err == nil {
			var probe [18]byte
			copy(probe[:], tail)
			if probe == tgaSignature {
				return Tga, true
			}
		}
	}

	return Unknown, false
}
