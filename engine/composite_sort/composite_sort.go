// Package composite_sort declares the transparency resolve stage: a single full-screen pass that merges the opaque
// result with the translucent layers in depth order, before any further post-processing.
package composite_sort

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Program is the fragment program of the sort pass.
const Program = "programs/post/composite_sort.frag"

// Define keys of the sort pass.
const (
	DefineSolidTexture       = "def_solidTexture"
	DefineTranslucentTexture = "def_translucentTexture"
	DefineLayerCount         = "def_layerCount"
)

// LayerDefine returns the define key of an extra translucent layer, e.g. "def_layer0Texture".
func LayerDefine(i int) string {
	return fmt.Sprintf("def_layer%dTexture", i)
}

// Inputs are the textures the sort pass resolves.
type Inputs struct {
	// Solid is the opaque color.
	Solid texture.Handle
	// Translucent is the primary translucent layer.
	Translucent texture.Handle
	// Layers are further translucent layers, blended after Translucent in order.
	Layers []texture.Handle
}

// Sort holds the handle declared by the sort stage.
type Sort struct {
	output texture.Handle
}

// Output returns the resolved color. Pipelines that run the sort stage feed it to bloom instead of the raw albedo.
func (s *Sort) Output() texture.Handle {
	return s.output
}

// Setup declares the non-mipmapped output texture and registers the sort pass.
//
// Parameters:
//   - ctx: the configuration context
//   - in: the textures to resolve
//   - opts: a variadic list of SortBuilderOption functions
//
// Returns:
//   - *Sort: the declared output
//   - error: graph.ErrDanglingReference for foreign inputs, or a declaration/registration error
func Setup(ctx graph.Context, in Inputs, opts ...SortBuilderOption) (*Sort, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	all := append([]texture.Handle{in.Solid, in.Translucent}, in.Layers...)
	for _, h := range all {
		if _, ok := ctx.Texture(h); !ok {
			return nil, fmt.Errorf("composite sort input %q: %w", h.Name(), graph.ErrDanglingReference)
		}
	}

	out, err := ctx.Declare(texture.NewTexture(cfg.name,
		texture.WithFormat(cfg.format),
		texture.WithMipmap(false),
		texture.WithClear(false),
	))
	if err != nil {
		return nil, fmt.Errorf("composite sort: %w", err)
	}

	passOpts := []pass.PassBuilderOption{
		pass.WithTarget(0, out),
		pass.WithTextureDefine(DefineSolidTexture, in.Solid),
		pass.WithTextureDefine(DefineTranslucentTexture, in.Translucent),
		pass.WithIntDefine(DefineLayerCount, len(in.Layers)),
	}
	for i, h := range in.Layers {
		passOpts = append(passOpts, pass.WithTextureDefine(LayerDefine(i), h))
	}
	for _, h := range all {
		passOpts = append(passOpts, pass.WithRead(h))
	}
	if err := ctx.Register(cfg.stage, pass.NewComposite("Composite Sort Pass", Program, passOpts...)); err != nil {
		return nil, fmt.Errorf("composite sort: %w", err)
	}
	return &Sort{output: out}, nil
}
