package texture

import "github.com/Carmen-Shannon/oxy-graph/common"

// TextureBuilderOption is a functional option used to configure a Texture during construction.
type TextureBuilderOption func(*texture)

// WithFormat sets the pixel format of the texture.
//
// Parameters:
//   - f: the pixel format
//
// Returns:
//   - TextureBuilderOption: a function that sets the format
func WithFormat(f Format) TextureBuilderOption {
	return func(t *texture) {
		t.format = f
	}
}

// WithFixedSize makes the texture fixed-size instead of screen-relative.
// Panics if either dimension is not positive, matching how the rest of the engine treats malformed declarations built in code.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - TextureBuilderOption: a function that sets a fixed size
func WithFixedSize(width, height int) TextureBuilderOption {
	if width <= 0 || height <= 0 {
		panic("texture: fixed size must be positive")
	}
	return func(t *texture) {
		t.dimension = DimensionFixed
		t.width = width
		t.height = height
	}
}

// WithMipmap sets whether the texture carries a mip chain.
//
// Parameters:
//   - enabled: true to enable mipmaps
//
// Returns:
//   - TextureBuilderOption: a function that sets the mipmap flag
func WithMipmap(enabled bool) TextureBuilderOption {
	return func(t *texture) {
		t.mipmap = enabled
	}
}

// WithClear sets whether the texture is cleared at the start of every frame.
//
// Parameters:
//   - enabled: true to clear on frame start
//
// Returns:
//   - TextureBuilderOption: a function that sets the clear flag
func WithClear(enabled bool) TextureBuilderOption {
	return func(t *texture) {
		t.clear = enabled
	}
}

// WithClearColor sets the value the texture is cleared to. It implies WithClear(true).
//
// Parameters:
//   - c: the RGBA clear value
//
// Returns:
//   - TextureBuilderOption: a function that sets the clear color
func WithClearColor(c common.ClearColor) TextureBuilderOption {
	return func(t *texture) {
		t.clear = true
		t.clearColor = &c
	}
}
