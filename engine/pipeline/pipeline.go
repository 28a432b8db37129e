// Package pipeline runs the generators selected by a Policy against a fresh configuration context, in dependency order,
// and keeps the last valid graph across reconfigurations.
package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/atmosphere"
	"github.com/Carmen-Shannon/oxy-graph/engine/bloom"
	"github.com/Carmen-Shannon/oxy-graph/engine/composite_sort"
	"github.com/Carmen-Shannon/oxy-graph/engine/compositor"
	"github.com/Carmen-Shannon/oxy-graph/engine/gbuffer"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Configure builds a complete graph for one resolution. Generators run in the order world settings, G-buffer,
// atmospheres, composite sort, bloom, final pass; later generators are wired to handles produced by earlier ones.
// Any error aborts the whole configuration.
//
// Parameters:
//   - res: the screen resolution
//   - p: the pipeline policy
//   - opts: options forwarded to the configuration context
//
// Returns:
//   - *graph.Graph: the validated graph
//   - error: the first generator error, or every validation problem joined
func Configure(res common.Resolution, p Policy, opts ...graph.ContextBuilderOption) (*graph.Graph, error) {
	if res.Width < 0 || res.Height < 0 {
		return nil, fmt.Errorf("resolution %s: %w", res, ErrInvalidPolicy)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ctx := graph.NewContext(res, opts...)
	ctx.SetWorldSettings(p.World)

	gb, err := gbuffer.Setup(ctx, p.Gbuffer)
	if err != nil {
		return nil, err
	}

	for _, a := range p.Atmospheres {
		if _, err := atmosphere.Setup(ctx, a.Name, a.Settings); err != nil {
			return nil, err
		}
	}

	// the texture presented by the final pass is whatever the last enabled stage produced
	color := primaryAlbedo(gb)

	var sorted *composite_sort.Sort
	if p.CompositeSort {
		in := composite_sort.Inputs{
			Solid:       gb.Set(pass.UsageTerrainSolid).Albedo(),
			Translucent: gb.Set(pass.UsageTerrainTranslucent).Albedo(),
		}
		for _, set := range gb.Sets() {
			if set.Usage != pass.UsageTerrainSolid && set.Usage != pass.UsageTerrainTranslucent {
				in.Layers = append(in.Layers, set.Albedo())
			}
		}
		if sorted, err = composite_sort.Setup(ctx, in); err != nil {
			return nil, err
		}
		color = sorted.Output()
	}

	if p.Bloom {
		input := primaryAlbedo(gb)
		if p.BloomInput == BloomInputSort {
			input = sorted.Output()
		}
		b, err := bloom.Setup(ctx, input)
		if err != nil {
			return nil, err
		}
		color = b.Output()
	}

	if err := compositor.Setup(ctx, compositor.WithSource(color)); err != nil {
		return nil, err
	}

	return ctx.Build()
}

// primaryAlbedo returns the solid terrain albedo, or the first category's albedo for policies without solid terrain.
func primaryAlbedo(gb *gbuffer.Gbuffer) texture.Handle {
	if set := gb.Set(pass.UsageTerrainSolid); set != nil {
		return set.Albedo()
	}
	return gb.Sets()[0].Albedo()
}
