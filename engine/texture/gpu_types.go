package texture

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Format enumerates the pixel formats a declared texture may use.
type Format int

const (
	// FormatRGBA8 is 8 bits per channel unsigned normalized RGBA.
	FormatRGBA8 Format = iota

	// FormatRGBA16 is 16 bits per channel unsigned integer RGBA, used where packed integer data is stored.
	FormatRGBA16

	// FormatRGBA16F is 16 bits per channel half-float RGBA.
	FormatRGBA16F

	// FormatRG11B10F is the packed 11/11/10 bit unsigned float format used for HDR color without alpha.
	FormatRG11B10F

	// FormatRGBA32F is 32 bits per channel float RGBA.
	FormatRGBA32F

	// FormatR32F is a single 32 bit float channel.
	FormatR32F
)

var formatNames = map[Format]string{
	FormatRGBA8:    "RGBA8",
	FormatRGBA16:   "RGBA16",
	FormatRGBA16F:  "RGBA16F",
	FormatRG11B10F: "R11F_G11F_B10F",
	FormatRGBA32F:  "RGBA32F",
	FormatR32F:     "R32F",
}

var formatWGPU = map[Format]wgpu.TextureFormat{
	FormatRGBA8:    wgpu.TextureFormatRGBA8Unorm,
	FormatRGBA16:   wgpu.TextureFormatRGBA16Uint,
	FormatRGBA16F:  wgpu.TextureFormatRGBA16Float,
	FormatRG11B10F: wgpu.TextureFormatRG11B10Ufloat,
	FormatRGBA32F:  wgpu.TextureFormatRGBA32Float,
	FormatR32F:     wgpu.TextureFormatR32Float,
}

// String returns the format's shader-facing name.
func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// WGPU returns the WebGPU texture format backing this format, or wgpu.TextureFormatUndefined for unknown values.
//
// Returns:
//   - wgpu.TextureFormat: the matching WebGPU format
func (f Format) WGPU() wgpu.TextureFormat {
	if wf, ok := formatWGPU[f]; ok {
		return wf
	}
	return wgpu.TextureFormatUndefined
}

// ParseFormat resolves a format by its name, case-insensitively. Both the shader-facing name ("R11F_G11F_B10F")
// and the compact name ("RG11B10F") are accepted.
//
// Parameters:
//   - name: the format name
//
// Returns:
//   - Format: the parsed format
//   - error: error if the name is unknown
func ParseFormat(name string) (Format, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "RG11B10F" {
		return FormatRG11B10F, nil
	}
	for f, fn := range formatNames {
		if fn == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown texture format %q", name)
}

// MarshalText implements encoding.TextMarshaler so formats serialize by name in TOML and YAML.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatNames[f]; !ok {
		return nil, fmt.Errorf("unknown texture format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// DefaultUsage is the usage every declared texture is created with: it is written as a render attachment by one pass
// and sampled by later passes.
const DefaultUsage = wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding
