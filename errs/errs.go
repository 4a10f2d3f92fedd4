// Package errs defines Blight's closed error taxonomy. Callers pattern
// match on Kind, never on a formatted message, the way image/reader.go
// exposes typed errors (errNotEnough, errBadPalette) rather than ad hoc
// fmt.Errorf calls at every failure site.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies a category of failure. The zero Kind is never produced by
// Blight; check for it to detect a bug rather than a decode failure.
type Kind int

const (
	Unknown Kind = iota

	// Path / IO
	FullPathTooLong
	UnexpectedEOF
	PartialRead

	// Policy
	FormatDisabled
	InputFormatDisallowed
	OutputFormatDisallowed
	NoImageFormatsAllowed
	AllocTooLarge
	FormatNotImplemented
	SaveUnsupported

	// Inference
	UnableToInferFormat
	UnableToVerifyFileImageFormat
	InvalidFileExtension

	// Structural
	InvalidSizeForFormat
	OverlappingData
	UnexpectedEndOfImageBuffer
	DimensionTooLarge
	InvalidColorTableIndex

	// BMP-specific
	BmpInvalidBytesInFileHeader
	BmpInvalidBytesInInfoHeader
	BmpInvalidHeaderSizeOrVersionUnsupported
	BmpInvalidSizeInfo
	BmpInvalidColorDepth
	BmpInvalidColorCount
	BmpInvalidColorTable
	BmpColorSpaceUnsupported
	BmpCompressionUnsupported
	BmpInvalidCompression
	BmpInvalidColorMasks
	BmpRLECoordinatesOutOfBounds
	BmpInvalidRLEData

	// TGA-specific
	TgaImageTypeUnsupported
	TgaColorMapDataInNonColorMapImage
	TgaNonStandardColorTableUnsupported
	TgaNonStandardColorDepthUnsupported
	TgaNonStandardColorDepthForPixelFormat
	TgaColorTableImageNot8BitColorDepth
	TgaNoData
	TgaFlavorUnsupported

	// Container
	NotEmptyOnCreate
	InactivePixelTag
	NoImageTypeAttachedToPixelTag
)

var names = map[Kind]string{
	FullPathTooLong:                          "FullPathTooLong",
	UnexpectedEOF:                            "UnexpectedEOF",
	PartialRead:                              "PartialRead",
	FormatDisabled:                           "FormatDisabled",
	InputFormatDisallowed:                    "InputFormatDisallowed",
	OutputFormatDisallowed:                   "OutputFormatDisallowed",
	NoImageFormatsAllowed:                    "NoImageFormatsAllowed",
	AllocTooLarge:                            "AllocTooLarge",
	FormatNotImplemented:                     "FormatNotImplemented",
	SaveUnsupported:                          "SaveUnsupported",
	UnableToInferFormat:                      "UnableToInferFormat",
	UnableToVerifyFileImageFormat:            "UnableToVerifyFileImageFormat",
	InvalidFileExtension:                     "InvalidFileExtension",
	InvalidSizeForFormat:                     "InvalidSizeForFormat",
	OverlappingData:                          "OverlappingData",
	UnexpectedEndOfImageBuffer:               "UnexpectedEndOfImageBuffer",
	DimensionTooLarge:                        "DimensionTooLarge",
	InvalidColorTableIndex:                   "InvalidColorTableIndex",
	BmpInvalidBytesInFileHeader:              "BmpInvalidBytesInFileHeader",
	BmpInvalidBytesInInfoHeader:              "BmpInvalidBytesInInfoHeader",
	BmpInvalidHeaderSizeOrVersionUnsupported: "BmpInvalidHeaderSizeOrVersionUnsupported",
	BmpInvalidSizeInfo:                       "BmpInvalidSizeInfo",
	BmpInvalidColorDepth:                     "BmpInvalidColorDepth",
	BmpInvalidColorCount:                     "BmpInvalidColorCount",
	BmpInvalidColorTable:                     "BmpInvalidColorTable",
	BmpColorSpaceUnsupported:                 "BmpColorSpaceUnsupported",
	BmpCompressionUnsupported:                "BmpCompressionUnsupported",
	BmpInvalidCompression:                    "BmpInvalidCompression",
	BmpInvalidColorMasks:                     "BmpInvalidColorMasks",
	BmpRLECoordinatesOutOfBounds:              "BmpRLECoordinatesOutOfBounds",
	BmpInvalidRLEData:                        "BmpInvalidRLEData",
	TgaImageTypeUnsupported:                  "TgaImageTypeUnsupported",
	TgaColorMapDataInNonColorMapImage:        "TgaColorMapDataInNonColorMapImage",
	TgaNonStandardColorTableUnsupported:      "TgaNonStandardColorTableUnsupported",
	TgaNonStandardColorDepthUnsupported:      "TgaNonStandardColorDepthUnsupported",
	TgaNonStandardColorDepthForPixelFormat:   "TgaNonStandardColorDepthForPixelFormat",
	TgaColorTableImageNot8BitColorDepth:      "TgaColorTableImageNot8BitColorDepth",
	TgaNoData:                                "TgaNoData",
	TgaFlavorUnsupported:                     "TgaFlavorUnsupported",
	NotEmptyOnCreate:                         "NotEmptyOnCreate",
	InactivePixelTag:                         "InactivePixelTag",
	NoImageTypeAttachedToPixelTag:            "NoImageTypeAttachedToPixelTag",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// Error is the concrete type every Blight failure is returned as. Op names
// the operation that failed (e.g. "bmp.readInfoHeader"); Wrapped, when
// present, carries the underlying I/O or validation error.
type Error struct {
	Kind    Kind
	Op      string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New constructs an Error of the given kind.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an Error of the given kind, carrying err as its cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Wrapped: err}
}

// Is reports whether err is, or wraps, a Blight Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
