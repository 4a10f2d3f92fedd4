package blight

import (
	"github.com/TraceMyers/Blight/bmp"
	"github.com/TraceMyers/Blight/errs"
	"github.com/TraceMyers/Blight/internal/fileid"
	"github.com/TraceMyers/Blight/pixel"
	"github.com/TraceMyers/Blight/source"
	"github.com/TraceMyers/Blight/tga"
)

const maxPathLen = 4096

// identityMismatch reports whether err is the kind of early-phase decoder
// failure that means the file's own identity bytes don't match the format
// the dispatcher attempted — the file's extension lied about its contents.
func identityMismatch(err error) bool {
	return errs.Is(err, errs.BmpInvalidBytesInFileHeader) ||
		errs.Is(err, errs.TgaImageTypeUnsupported)
}

// Load opens path+filename, infers or takes the given format hint, and
// decodes it into an Image.
func Load(path, filename string, hint Format, opts Options) (*Image, error) {
	full := path + "/" + filename
	if len(full) > maxPathLen {
		return nil, errs.New(errs.FullPathTooLong, "blight.Load")
	}

	src, err := source.Open(path, filename, opts.LocalPath)
	if err != nil {
		return nil, errs.Wrap(errs.UnexpectedEOF, "blight.Load", err)
	}
	defer src.Close()

	format := hint
	if format == Infer {
		format, err = infer(filename, src)
		if err != nil {
			return nil, err
		}
	}

	img, err := decode(format, src, opts)
	if err == nil {
		return img, nil
	}

	if !opts.AllowRedirect || !identityMismatch(err) {
		return nil, err
	}

	redirected, ok := fileid.ByContent(src)
	if !ok || redirected == format {
		return nil, err
	}
	if !opts.InputFormatAllowed[redirected] {
		return nil, errs.New(errs.UnableToInferFormat, "blight.Load")
	}
	return decode(redirected, src, opts)
}

// InferFormat runs the dispatcher's extension-then-content inference
// without decoding, for callers such as cmd/blight's probe subcommand that
// only want to know what a file is.
func InferFormat(path, filename string, localPath bool) (Format, error) {
	src, err := source.Open(path, filename, localPath)
	if err != nil {
		return Infer, errs.Wrap(errs.UnexpectedEOF, "blight.InferFormat", err)
	}
	defer src.Close()
	return infer(filename, src)
}

// infer resolves a format from the filename's extension first, falling
// back to the file's magic bytes or footer signature when the extension is
// unrecognized.
func infer(filename string, src source.Source) (Format, error) {
	if f, ok := fileid.ByExtension(filename); ok {
		return f, nil
	}
	if f, ok := fileid.ByContent(src); ok {
		return f, nil
	}
	return Infer, errs.New(errs.UnableToInferFormat, "blight.infer")
}

func decode(format Format, src source.Source, opts Options) (*Image, error) {
	if !opts.InputFormatAllowed[format] {
		return nil, errs.New(errs.InputFormatDisallowed, "blight.decode")
	}

	allowed := func(t pixel.Tag) bool { return opts.OutputTagAllowed[t] }

	switch format {
	case Bmp:
		return bmp.Decode(src, allowed, opts.MaxAllocBytes, opts.Logger)
	case Tga:
		return tga.Decode(src, allowed, opts.MaxAllocBytes, opts.Logger)
	case Png, Jpg:
		// Recognized so inference and redirection have somewhere to land,
		// but no decoder exists to call for either format yet.
		return nil, errs.New(errs.FormatNotImplemented, "blight.decode")
	default:
		return nil, errs.New(errs.UnableToInferFormat, "blight.decode")
	}
}
