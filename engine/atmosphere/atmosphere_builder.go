package atmosphere

import (
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// AtmosphereBuilderOption is a functional option used to configure an atmosphere LUT pipeline.
type AtmosphereBuilderOption func(*config)

type size struct {
	width, height int
}

// config holds the LUT sizes, format and stage placement.
type config struct {
	transmittance, scattering, skyView size
	format                             texture.Format

	lutStage, skyViewStage pass.Stage
}

func defaultConfig() config {
	return config{
		transmittance: size{256, 64},
		scattering:    size{32, 32},
		skyView:       size{200, 200},
		format:        texture.FormatRGBA16F,
		lutStage:      pass.StageSetup,
		skyViewStage:  pass.StagePreRender,
	}
}

// WithTransmittanceSize sets the transmittance LUT size. Defaults to 256x64.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - AtmosphereBuilderOption: a function that sets the size
func WithTransmittanceSize(width, height int) AtmosphereBuilderOption {
	return func(c *config) {
		c.transmittance = size{width, height}
	}
}

// WithScatteringSize sets the scattering LUT size. Defaults to 32x32.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - AtmosphereBuilderOption: a function that sets the size
func WithScatteringSize(width, height int) AtmosphereBuilderOption {
	return func(c *config) {
		c.scattering = size{width, height}
	}
}

// WithSkyViewSize sets the sky-view LUT size. Defaults to 200x200.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - AtmosphereBuilderOption: a function that sets the size
func WithSkyViewSize(width, height int) AtmosphereBuilderOption {
	return func(c *config) {
		c.skyView = size{width, height}
	}
}

// WithFormat sets the pixel format of all three LUTs. Defaults to RGBA16F.
//
// Parameters:
//   - f: the pixel format
//
// Returns:
//   - AtmosphereBuilderOption: a function that sets the format
func WithFormat(f texture.Format) AtmosphereBuilderOption {
	return func(c *config) {
		c.format = f
	}
}

// WithStages sets the stages of the two precomputed LUTs and of the sky-view LUT. The sky-view stage must come after
// the LUT stage.
//
// Parameters:
//   - lut: the stage of the transmittance and scattering passes
//   - skyView: the stage of the sky-view pass
//
// Returns:
//   - AtmosphereBuilderOption: a function that sets the stages
func WithStages(lut, skyView pass.Stage) AtmosphereBuilderOption {
	return func(c *config) {
		c.lutStage = lut
		c.skyViewStage = skyView
	}
}
