/*
Package blight decodes BMP and TGA raster image files into a uniform
in-memory pixel representation.
*/
package blight

import (
	"io"
	"log"

	"github.com/TraceMyers/Blight/internal/fileid"
	"github.com/TraceMyers/Blight/pixel"
)

// Format names a raster format Load can resolve to or decode. Infer asks
// Load to determine the format itself, the way cmd/megasd's cli.Context
// flags default to "let the tool decide" rather than requiring an explicit
// choice.
type Format = fileid.Format

const (
	Infer = fileid.Unknown
	Bmp   = fileid.Bmp
	Png   = fileid.Png
	Jpg   = fileid.Jpg
	Tga   = fileid.Tga
)

// AlphaPolicy governs how Save treats an Image's alpha channel. Both
// policies exist only for the scaffolded Save path; neither affects Load.
type AlphaPolicy int

const (
	PreserveAlpha AlphaPolicy = iota
	DiscardAlpha
)

// Image is Blight's decode result: a width/height pair, an alpha policy,
// a tagged pixel buffer, and whatever format-specific header state the
// decoder recorded. It is the same type the bmp and tga packages build
// directly, the way megasd.go's MegaSD held no type distinct from the
// packages doing its actual work.
type Image = pixel.Image

// Options bundles the policy knobs Load and Save consult: which input
// formats and output pixel tags are permitted, how Save should treat
// alpha, how paths resolve, and where diagnostics go. Passed by value into
// Load, the way cmd/megasd collects cli.Context flags into plain
// arguments before calling into megasd.New.
type Options struct {
	// InputFormatAllowed whitelists formats Load may decode. A missing or
	// false entry disallows that format.
	InputFormatAllowed map[Format]bool

	// OutputTagAllowed whitelists canonical pixel tags Load may produce.
	OutputTagAllowed map[pixel.Tag]bool

	// SaveAlpha governs Save's alpha handling; unused by Load.
	SaveAlpha AlphaPolicy

	// LocalPath resolves path relative to the current working directory
	// instead of treating it as (or making it) absolute outright.
	LocalPath bool

	// AllowRedirect permits a single extension-lied redirect: if decoding
	// under the inferred or hinted format fails because the file's own
	// identity bytes disagree, Load re-infers from content alone and
	// retries once. Defaults to true.
	AllowRedirect bool

	// MaxAllocBytes caps the size of file Load will read into memory.
	// Zero means unlimited.
	MaxAllocBytes int64

	// Logger receives decode diagnostics from Load and both decoders, the
	// way MegaSD.logger is threaded through Scan and ImportXML. Nil is
	// treated as a discarding logger.
	Logger *log.Logger
}

// DefaultOptions returns an Options permitting every input format and
// every canonical output tag, with redirection enabled, no allocation cap,
// and a discarding logger — the permissive default cmd/megasd's cli flags
// fall back to absent an explicit -v or -db override.
func DefaultOptions() Options {
	return Options{
		InputFormatAllowed: map[Format]bool{
			Bmp: true,
			Png: true,
			Jpg: true,
			Tga: true,
		},
		OutputTagAllowed: map[pixel.Tag]bool{
			pixel.RGBA32: true,
			pixel.RGB16:  true,
			pixel.R8:     true,
			pixel.R16:    true,
		},
		SaveAlpha:     PreserveAlpha,
		AllowRedirect: true,
		Logger:        log.New(io.Discard, "", 0),
	}
}
