// package common contains common types that are used throughout this compiler. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types shared by the generators, the graph and the backend hand-off.
package common

import "fmt"

// Resolution is the current display surface size in pixels. Every configuration is built against exactly one Resolution;
// a change of Resolution triggers a full reconfiguration.
type Resolution struct {
	// Width is the surface width in pixels.
	Width int `toml:"width" yaml:"width"`
	// Height is the surface height in pixels.
	Height int `toml:"height" yaml:"height"`
}

// String returns the resolution in WIDTHxHEIGHT form.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Valid reports whether both dimensions are strictly positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// WorldSettings holds the global render settings written once per configuration into the backend's settings sink.
type WorldSettings struct {
	// AmbientOcclusionLevel scales the vanilla ambient occlusion applied to geometry.
	AmbientOcclusionLevel float32 `toml:"ambient_occlusion_level" yaml:"ambientOcclusionLevel"`
	// DisableShade disables the backend's built-in directional face shading.
	DisableShade bool `toml:"disable_shade" yaml:"disableShade"`
	// RenderEntityShadow enables the backend's entity drop shadows.
	RenderEntityShadow bool `toml:"render_entity_shadow" yaml:"renderEntityShadow"`
}

// DefaultWorldSettings returns the settings every stock pipeline configures.
//
// Returns:
//   - WorldSettings: AO level 1.0 with shading disabled and entity shadows enabled
func DefaultWorldSettings() WorldSettings {
	return WorldSettings{
		AmbientOcclusionLevel: 1.0,
		DisableShade:          true,
		RenderEntityShadow:    true,
	}
}

// Vec3 is a three component float vector used for physically-parameterized settings.
type Vec3 [3]float32

// ClearColor is an RGBA clear value in linear float space.
type ClearColor [4]float64
