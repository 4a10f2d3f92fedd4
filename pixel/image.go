package pixel

// AlphaMode describes how the alpha channel of an Image's pixels relates to
// its color channels.
type AlphaMode int

const (
	AlphaNone AlphaMode = iota
	AlphaNormal
	AlphaPremultiplied
)

func (a AlphaMode) String() string {
	switch a {
	case AlphaNormal:
		return "Normal"
	case AlphaPremultiplied:
		return "Premultiplied"
	default:
		return "None"
	}
}

// FileInfo is implemented by format-specific decoded header state (bmp.Info,
// tga.Info) so Image can carry it without pixel importing either decoder
// package.
type FileInfo interface {
	FormatName() string
}

// Image is Blight's uniform in-memory decode result: a width/height pair,
// an alpha policy, a tagged pixel buffer, and whatever format-specific
// header state the decoder recorded along the way.
type Image struct {
	Width    uint32
	Height   uint32
	Alpha    AlphaMode
	Pixels   *Container
	FileInfo FileInfo
}

// Empty reports whether the Image holds no pixel buffer, which is the state
// every failed decode must leave it in.
func (img *Image) Empty() bool {
	return img == nil || !img.Pixels.Active() || img.Pixels.Len() == 0
}

// Valid reports whether the image's invariants hold: its buffer length
// equals width*height*tag.Size(), and its tag is one of the four canonical
// output tags.
func (img *Image) Valid() bool {
	if img.Empty() {
		return false
	}
	tag := img.Pixels.Tag()
	if !tag.Canonical() {
		return false
	}
	want := int(img.Width) * int(img.Height) * tag.Size()
	return img.Pixels.Len() == want
}
