package atmosphere

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/chewxy/math32"
)

// ErrInvalidSettings is returned when atmosphere settings cannot describe a physical atmosphere.
var ErrInvalidSettings = errors.New("invalid atmosphere settings")

// Define keys of the settings shared by all three LUT programs.
const (
	DefineOrigin               = "def_origin"
	DefineUnitScale            = "def_unitScale"
	DefineGroundAlbedo         = "def_groundAlbedo"
	DefinePlanetRadius         = "def_planetRadius"
	DefineAtmosphereRadius     = "def_atmosphereRadius"
	DefineRayleighScattering   = "def_rayleighScattering"
	DefineRayleighScaleHeight  = "def_rayleighScaleHeight"
	DefineMieScattering        = "def_mieScattering"
	DefineMieAbsorption        = "def_mieAbsorption"
	DefineMieScaleHeight       = "def_mieScaleHeight"
	DefineMieAnisotropy        = "def_mieAnisotropy"
	DefineOzoneAbsorption      = "def_ozoneAbsorption"
	DefineOzoneEnabled         = "def_ozoneEnabled"
	DefineMultipleScattering   = "def_multipleScattering"
	DefineTransmittanceTexture = "def_transmittanceTexture"
	DefineScatteringTexture    = "def_scatteringTexture"
)

// Settings are the physical parameters of one atmosphere. Distances are in kilometres, coefficients are per kilometre
// per wavelength (red, green, blue).
type Settings struct {
	// Origin is the planet centre in world units.
	Origin common.Vec3 `toml:"origin" yaml:"origin"`
	// UnitScale converts world units to kilometres.
	UnitScale float32 `toml:"unit_scale" yaml:"unitScale"`
	// GroundAlbedo is the reflectance of the planet surface.
	GroundAlbedo common.Vec3 `toml:"ground_albedo" yaml:"groundAlbedo"`
	// PlanetRadius is the radius of the planet surface.
	PlanetRadius float32 `toml:"planet_radius" yaml:"planetRadius"`
	// AtmosphereRadius is the radius of the top of the atmosphere.
	AtmosphereRadius float32 `toml:"atmosphere_radius" yaml:"atmosphereRadius"`
	// RayleighScattering is the Rayleigh scattering coefficient at sea level.
	RayleighScattering common.Vec3 `toml:"rayleigh_scattering" yaml:"rayleighScattering"`
	// RayleighScaleHeight is the exponential falloff height of Rayleigh particles.
	RayleighScaleHeight float32 `toml:"rayleigh_scale_height" yaml:"rayleighScaleHeight"`
	// MieScattering is the Mie scattering coefficient at sea level.
	MieScattering common.Vec3 `toml:"mie_scattering" yaml:"mieScattering"`
	// MieAbsorption is the Mie absorption coefficient at sea level.
	MieAbsorption common.Vec3 `toml:"mie_absorption" yaml:"mieAbsorption"`
	// MieScaleHeight is the exponential falloff height of aerosols.
	MieScaleHeight float32 `toml:"mie_scale_height" yaml:"mieScaleHeight"`
	// MieAnisotropy is the Henyey-Greenstein asymmetry parameter, in (-1, 1).
	MieAnisotropy float32 `toml:"mie_anisotropy" yaml:"mieAnisotropy"`
	// OzoneAbsorption is the peak ozone absorption coefficient.
	OzoneAbsorption common.Vec3 `toml:"ozone_absorption" yaml:"ozoneAbsorption"`
	// OzoneEnabled toggles the ozone layer.
	OzoneEnabled bool `toml:"ozone_enabled" yaml:"ozoneEnabled"`
	// MultipleScattering toggles the multiple scattering contribution in the scattering LUT.
	MultipleScattering bool `toml:"multiple_scattering" yaml:"multipleScattering"`
}

// DefaultSettings returns an Earth-like atmosphere with world units in metres.
//
// Returns:
//   - Settings: the default settings
func DefaultSettings() Settings {
	return Settings{
		Origin:              common.Vec3{0, -6360000, 0},
		UnitScale:           0.001,
		GroundAlbedo:        common.Vec3{0.3, 0.3, 0.3},
		PlanetRadius:        6360,
		AtmosphereRadius:    6460,
		RayleighScattering:  common.Vec3{0.005802, 0.013558, 0.0331},
		RayleighScaleHeight: 8,
		MieScattering:       common.Vec3{0.003996, 0.003996, 0.003996},
		MieAbsorption:       common.Vec3{0.0044, 0.0044, 0.0044},
		MieScaleHeight:      1.2,
		MieAnisotropy:       0.8,
		OzoneAbsorption:     common.Vec3{0.00065, 0.001881, 0.000085},
		OzoneEnabled:        true,
		MultipleScattering:  true,
	}
}

// Thickness returns the height of the atmosphere above the planet surface.
func (s Settings) Thickness() float32 {
	return s.AtmosphereRadius - s.PlanetRadius
}

// Validate checks that every value is finite and the geometry is physically meaningful.
//
// Returns:
//   - error: every problem found, joined and wrapping ErrInvalidSettings
func (s Settings) Validate() error {
	var errs []error
	finite := func(name string, v ...float32) {
		for _, f := range v {
			if math32.IsNaN(f) || math32.IsInf(f, 0) {
				errs = append(errs, fmt.Errorf("%s is not finite: %w", name, ErrInvalidSettings))
				return
			}
		}
	}
	finite("origin", s.Origin[:]...)
	finite("unit scale", s.UnitScale)
	finite("ground albedo", s.GroundAlbedo[:]...)
	finite("planet radius", s.PlanetRadius)
	finite("atmosphere radius", s.AtmosphereRadius)
	finite("rayleigh scattering", s.RayleighScattering[:]...)
	finite("rayleigh scale height", s.RayleighScaleHeight)
	finite("mie scattering", s.MieScattering[:]...)
	finite("mie absorption", s.MieAbsorption[:]...)
	finite("mie scale height", s.MieScaleHeight)
	finite("mie anisotropy", s.MieAnisotropy)
	finite("ozone absorption", s.OzoneAbsorption[:]...)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if s.UnitScale <= 0 {
		errs = append(errs, fmt.Errorf("unit scale %v must be positive: %w", s.UnitScale, ErrInvalidSettings))
	}
	if s.PlanetRadius <= 0 {
		errs = append(errs, fmt.Errorf("planet radius %v must be positive: %w", s.PlanetRadius, ErrInvalidSettings))
	}
	if s.Thickness() <= 0 {
		errs = append(errs, fmt.Errorf("atmosphere radius %v must exceed planet radius %v: %w", s.AtmosphereRadius, s.PlanetRadius, ErrInvalidSettings))
	}
	if s.RayleighScaleHeight <= 0 || s.MieScaleHeight <= 0 {
		errs = append(errs, fmt.Errorf("scale heights must be positive: %w", ErrInvalidSettings))
	}
	if math32.Abs(s.MieAnisotropy) >= 1 {
		errs = append(errs, fmt.Errorf("mie anisotropy %v must be in (-1, 1): %w", s.MieAnisotropy, ErrInvalidSettings))
	}
	return errors.Join(errs...)
}

// defineOptions serializes every setting into textual defines.
func (s Settings) defineOptions() pass.PassBuilderOption {
	return pass.WithOptions(
		pass.WithVec3Define(DefineOrigin, s.Origin),
		pass.WithFloatDefine(DefineUnitScale, s.UnitScale),
		pass.WithVec3Define(DefineGroundAlbedo, s.GroundAlbedo),
		pass.WithFloatDefine(DefinePlanetRadius, s.PlanetRadius),
		pass.WithFloatDefine(DefineAtmosphereRadius, s.AtmosphereRadius),
		pass.WithVec3Define(DefineRayleighScattering, s.RayleighScattering),
		pass.WithFloatDefine(DefineRayleighScaleHeight, s.RayleighScaleHeight),
		pass.WithVec3Define(DefineMieScattering, s.MieScattering),
		pass.WithVec3Define(DefineMieAbsorption, s.MieAbsorption),
		pass.WithFloatDefine(DefineMieScaleHeight, s.MieScaleHeight),
		pass.WithFloatDefine(DefineMieAnisotropy, s.MieAnisotropy),
		pass.WithVec3Define(DefineOzoneAbsorption, s.OzoneAbsorption),
		pass.WithBoolDefine(DefineOzoneEnabled, s.OzoneEnabled),
		pass.WithBoolDefine(DefineMultipleScattering, s.MultipleScattering),
	)
}
