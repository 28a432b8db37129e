package texture

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// DimensionPolicy identifies how a texture's size is derived.
type DimensionPolicy int

const (
	// DimensionScreen sizes the texture to the current screen resolution. It is resized whenever the resolution changes.
	DimensionScreen DimensionPolicy = iota

	// DimensionFixed sizes the texture to an explicit width and height independent of the screen.
	DimensionFixed
)

// String returns a readable name for the policy.
func (d DimensionPolicy) String() string {
	switch d {
	case DimensionScreen:
		return "screen"
	case DimensionFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// texture is the implementation of the Texture interface.
// It is immutable once NewTexture returns.
type texture struct {
	name   string
	format Format

	dimension     DimensionPolicy
	width, height int

	mipmap bool

	clear      bool
	clearColor *common.ClearColor
}

// Texture describes a declared GPU image resource. Textures are pure declarations: the backend allocates the actual
// GPU memory after the configuration hands the finished graph over.
type Texture interface {
	// Name returns the globally unique texture name. The same string is used as the registry key and as the literal
	// token injected into shader preprocessor defines.
	//
	// Returns:
	//   - string: the texture name
	Name() string

	// Format returns the pixel format of the texture.
	//
	// Returns:
	//   - Format: the pixel format
	Format() Format

	// Dimension returns how the texture's size is derived.
	//
	// Returns:
	//   - DimensionPolicy: DimensionScreen or DimensionFixed
	Dimension() DimensionPolicy

	// Size returns the pixel size of mip level 0 for the given screen resolution.
	// Fixed textures ignore the resolution.
	//
	// Parameters:
	//   - res: the current screen resolution
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size(res common.Resolution) (int, int)

	// Mipmap returns whether the texture carries a full mip chain.
	//
	// Returns:
	//   - bool: true if mip-enabled
	Mipmap() bool

	// MipCount returns the number of mip levels for the given resolution. Textures without mipmaps always have one level,
	// mip-enabled textures have floor(log2(max(width, height))) levels clamped to at least 1.
	//
	// Parameters:
	//   - res: the current screen resolution
	//
	// Returns:
	//   - int: the mip level count
	MipCount(res common.Resolution) int

	// Clear returns whether the texture is cleared at the start of every frame.
	//
	// Returns:
	//   - bool: true if cleared on frame start
	Clear() bool

	// ClearColor returns the clear color, if one was specified.
	//
	// Returns:
	//   - common.ClearColor: the clear value
	//   - bool: true if a clear color was specified
	ClearColor() (common.ClearColor, bool)

	// Descriptor builds the WebGPU texture descriptor the backend uses to allocate this texture.
	//
	// Parameters:
	//   - res: the current screen resolution
	//
	// Returns:
	//   - wgpu.TextureDescriptor: the allocation descriptor
	Descriptor(res common.Resolution) wgpu.TextureDescriptor
}

var _ Texture = &texture{}

// NewTexture creates a new Texture declaration with the given name and options applied.
// The defaults are a screen-relative RGBA8 texture without mipmaps that is not cleared.
//
// Parameters:
//   - name: the globally unique texture name
//   - opts: a variadic list of TextureBuilderOption functions to configure the texture
//
// Returns:
//   - Texture: the texture declaration
func NewTexture(name string, opts ...TextureBuilderOption) Texture {
	t := &texture{
		name:      name,
		format:    FormatRGBA8,
		dimension: DimensionScreen,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *texture) Name() string {
	return t.name
}

func (t *texture) Format() Format {
	return t.format
}

func (t *texture) Dimension() DimensionPolicy {
	return t.dimension
}

func (t *texture) Size(res common.Resolution) (int, int) {
	if t.dimension == DimensionFixed {
		return t.width, t.height
	}
	return res.Width, res.Height
}

func (t *texture) Mipmap() bool {
	return t.mipmap
}

func (t *texture) MipCount(res common.Resolution) int {
	if !t.mipmap {
		return 1
	}
	w, h := t.Size(res)
	return common.MipCount(w, h)
}

func (t *texture) Clear() bool {
	return t.clear
}

func (t *texture) ClearColor() (common.ClearColor, bool) {
	if t.clearColor == nil {
		return common.ClearColor{}, false
	}
	return *t.clearColor, true
}

func (t *texture) Descriptor(res common.Resolution) wgpu.TextureDescriptor {
	w, h := t.Size(res)
	return wgpu.TextureDescriptor{
		Label: t.name,
		Size: wgpu.Extent3D{
			Width:              uint32(max(w, 1)),
			Height:             uint32(max(h, 1)),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(t.MipCount(res)),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        t.format.WGPU(),
		Usage:         DefaultUsage,
	}
}

// Handle is the typed reference returned when a texture is declared. It retains the canonical name so generators can
// emit it into shader defines, while giving Go code a value that can only originate from a successful declaration.
// The zero Handle is invalid.
type Handle struct {
	id   int
	name string
}

// NewHandle creates a handle for the texture declared at the given registry slot.
// Only registries should call this.
//
// Parameters:
//   - id: the registry slot (1-based, 0 is reserved for the invalid handle)
//   - name: the canonical texture name
//
// Returns:
//   - Handle: the handle
func NewHandle(id int, name string) Handle {
	return Handle{id: id, name: name}
}

// ID returns the registry slot of the handle.
func (h Handle) ID() int {
	return h.id
}

// Name returns the canonical texture name exactly as it was declared.
func (h Handle) Name() string {
	return h.name
}

// Valid reports whether the handle was produced by a declaration.
func (h Handle) Valid() bool {
	return h.id > 0
}
