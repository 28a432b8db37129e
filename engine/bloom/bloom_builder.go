package bloom

import (
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// BloomBuilderOption is a functional option used to configure the bloom generator.
type BloomBuilderOption func(*config)

// config holds the generator parameters. Every field has a working default.
type config struct {
	prefix string
	format texture.Format
	stage  pass.Stage
}

func defaultConfig() config {
	return config{
		prefix: "bloom",
		format: texture.FormatRG11B10F,
		stage:  pass.StagePostRender,
	}
}

// WithPrefix sets the name prefix of the three bloom textures. Defaults to "bloom", giving "bloomDownsampleTexture",
// "bloomUpsampleTexture" and "bloomMergeTexture".
//
// Parameters:
//   - prefix: the texture name prefix
//
// Returns:
//   - BloomBuilderOption: a function that sets the prefix
func WithPrefix(prefix string) BloomBuilderOption {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithFormat sets the pixel format of the bloom textures. Defaults to the packed 11/11/10 float format.
//
// Parameters:
//   - f: the pixel format
//
// Returns:
//   - BloomBuilderOption: a function that sets the format
func WithFormat(f texture.Format) BloomBuilderOption {
	return func(c *config) {
		c.format = f
	}
}

// WithStage sets the stage every bloom pass is registered into. Defaults to StagePostRender.
//
// Parameters:
//   - s: the stage
//
// Returns:
//   - BloomBuilderOption: a function that sets the stage
func WithStage(s pass.Stage) BloomBuilderOption {
	return func(c *config) {
		c.stage = s
	}
}
