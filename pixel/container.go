package pixel

import "fmt"

// Container is a byte buffer tagged with the pixel layout its bytes follow.
// It is either owning (the buffer belongs to this Container alone) or
// borrowed (a non-owning view over a caller-supplied region). Go's garbage
// collector frees owning buffers; the owning/borrowed distinction instead
// guards against a decoder accidentally growing or aliasing a caller's
// slice across calls.
type Container struct {
	tag    Tag
	bytes  []byte
	owning bool
	active bool
}

// ErrNotEmptyOnCreate mirrors image/reader.go's style of small
// package-level sentinel errors (errNotEnough, errBadPalette).
var ErrNotEmptyOnCreate = fmt.Errorf("pixel: container already has data")

// NewOwning allocates a fresh buffer of n bytes tagged with tag and takes
// ownership of it.
func NewOwning(tag Tag, n int) *Container {
	return &Container{
		tag:    tag,
		bytes:  make([]byte, n),
		owning: true,
		active: true,
	}
}

// Attach wraps buf without copying it; the Container does not own buf and
// must not resize it.
func Attach(tag Tag, buf []byte) *Container {
	return &Container{
		tag:    tag,
		bytes:  buf,
		owning: false,
		active: true,
	}
}

// Empty returns an inactive Container carrying no pixel type and no bytes.
func Empty() *Container {
	return &Container{}
}

// Tag reports the pixel layout of the container's bytes. Calling it on an
// inactive container returns Invalid.
func (c *Container) Tag() Tag {
	if c == nil || !c.active {
		return Invalid
	}
	return c.tag
}

// Bytes returns the underlying buffer. Callers must not retain it past the
// lifetime of the Container when the Container is borrowed.
func (c *Container) Bytes() []byte {
	if c == nil || !c.active {
		return nil
	}
	return c.bytes
}

// Owning reports whether the Container allocated and owns its buffer.
func (c *Container) Owning() bool {
	return c != nil && c.active && c.owning
}

// Active reports whether the container carries a pixel type and bytes.
func (c *Container) Active() bool {
	return c != nil && c.active
}

// Len returns the number of bytes in the container.
func (c *Container) Len() int {
	if c == nil || !c.active {
		return 0
	}
	return len(c.bytes)
}

// Release detaches the container from its buffer. On an owning container
// this simply drops the reference for the garbage collector; on a borrowed
// container it prevents further use of the caller's slice through this
// Container.
func (c *Container) Release() {
	if c == nil {
		return
	}
	c.bytes = nil
	c.tag = Invalid
	c.active = false
	c.owning = false
}
