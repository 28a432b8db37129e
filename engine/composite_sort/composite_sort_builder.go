package composite_sort

import (
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// SortBuilderOption is a functional option used to configure the composite sort stage.
type SortBuilderOption func(*config)

type config struct {
	name   string
	format texture.Format
	stage  pass.Stage
}

func defaultConfig() config {
	return config{
		name:   "compositeSortTexture",
		format: texture.FormatRGBA16F,
		stage:  pass.StagePostRender,
	}
}

// WithTextureName sets the name of the resolved output texture. Defaults to "compositeSortTexture".
//
// Parameters:
//   - name: the texture name
//
// Returns:
//   - SortBuilderOption: a function that sets the name
func WithTextureName(name string) SortBuilderOption {
	return func(c *config) {
		c.name = name
	}
}

// WithFormat sets the output format. Defaults to RGBA16F so HDR values survive into bloom.
//
// Parameters:
//   - f: the pixel format
//
// Returns:
//   - SortBuilderOption: a function that sets the format
func WithFormat(f texture.Format) SortBuilderOption {
	return func(c *config) {
		c.format = f
	}
}

// WithStage sets the stage of the sort pass. Defaults to StagePostRender.
//
// Parameters:
//   - s: the stage
//
// Returns:
//   - SortBuilderOption: a function that sets the stage
func WithStage(s pass.Stage) SortBuilderOption {
	return func(c *config) {
		c.stage = s
	}
}
