// Package compositor declares the single terminal pass that writes the finished frame to the display surface.
package compositor

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Program is the fragment program of the final pass.
const Program = "programs/post/final.frag"

// DefineInputTexture names the texture the final pass presents.
const DefineInputTexture = "def_inputTexture"

// CompositorBuilderOption is a functional option used to configure the final pass.
type CompositorBuilderOption func(*config)

type config struct {
	name    string
	program string
	sources []texture.Handle
}

// WithProgram overrides the fragment program of the final pass.
//
// Parameters:
//   - program: the fragment program identifier
//
// Returns:
//   - CompositorBuilderOption: a function that sets the program
func WithProgram(program string) CompositorBuilderOption {
	return func(c *config) {
		c.program = program
	}
}

// WithSource adds a texture the final pass samples. The first source is also exposed as def_inputTexture.
//
// Parameters:
//   - h: the sampled texture
//
// Returns:
//   - CompositorBuilderOption: a function that adds the source
func WithSource(h texture.Handle) CompositorBuilderOption {
	return func(c *config) {
		c.sources = append(c.sources, h)
	}
}

// Setup registers the combination pass in StageFinal. A configuration has at most one; a second call fails with
// graph.ErrMultipleFinalPasses.
//
// Parameters:
//   - ctx: the configuration context
//   - opts: a variadic list of CompositorBuilderOption functions
//
// Returns:
//   - error: graph.ErrMultipleFinalPasses, graph.ErrDanglingReference for foreign sources, or a registration error
func Setup(ctx graph.Context, opts ...CompositorBuilderOption) error {
	cfg := config{name: "Final Pass", program: Program}
	for _, opt := range opts {
		opt(&cfg)
	}

	var passOpts []pass.PassBuilderOption
	for i, h := range cfg.sources {
		if _, ok := ctx.Texture(h); !ok {
			return fmt.Errorf("final pass source %q: %w", h.Name(), graph.ErrDanglingReference)
		}
		if i == 0 {
			passOpts = append(passOpts, pass.WithTextureDefine(DefineInputTexture, h))
		}
		passOpts = append(passOpts, pass.WithRead(h))
	}
	if err := ctx.Register(pass.StageFinal, pass.NewCombination(cfg.name, cfg.program, passOpts...)); err != nil {
		return fmt.Errorf("final pass: %w", err)
	}
	return nil
}
