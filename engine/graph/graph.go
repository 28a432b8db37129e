package graph

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/registry"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// Graph is the finished, validated set of declarations of one configuration. It is immutable and safe to share between
// goroutines once Build returns it.
type Graph struct {
	res   common.Resolution
	world common.WorldSettings

	textures []texture.Texture
	passes   []registry.Entry

	byName map[string]texture.Texture
	final  pass.Pass
}

func (g *Graph) index() {
	g.byName = make(map[string]texture.Texture, len(g.textures))
	for _, t := range g.textures {
		g.byName[t.Name()] = t
	}
	for _, e := range g.passes {
		if e.Pass.Kind() == pass.KindCombination {
			g.final = e.Pass
		}
	}
}

// Resolution returns the resolution the graph was built for.
func (g *Graph) Resolution() common.Resolution {
	return g.res
}

// WorldSettings returns the settings written into the backend's settings sink.
func (g *Graph) WorldSettings() common.WorldSettings {
	return g.world
}

// Textures returns every declared texture in declaration order.
func (g *Graph) Textures() []texture.Texture {
	return slices.Clone(g.textures)
}

// Texture finds a texture by canonical name.
//
// Parameters:
//   - name: the texture name
//
// Returns:
//   - texture.Texture: the declaration, nil if absent
//   - bool: true if found
func (g *Graph) Texture(name string) (texture.Texture, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// Passes returns every pass in total execution order.
func (g *Graph) Passes() []registry.Entry {
	return slices.Clone(g.passes)
}

// Stage returns the passes of one stage in registration order.
//
// Parameters:
//   - s: the stage
//
// Returns:
//   - []pass.Pass: the passes of the stage
func (g *Graph) Stage(s pass.Stage) []pass.Pass {
	var out []pass.Pass
	for _, e := range g.passes {
		if e.Stage == s {
			out = append(out, e.Pass)
		}
	}
	return out
}

// Final returns the combination pass, nil if the configuration declared none.
func (g *Graph) Final() pass.Pass {
	return g.final
}

// Descriptors returns the WebGPU allocation descriptor of every texture, in declaration order.
//
// Returns:
//   - []wgpu.TextureDescriptor: one descriptor per texture
func (g *Graph) Descriptors() []wgpu.TextureDescriptor {
	out := make([]wgpu.TextureDescriptor, 0, len(g.textures))
	for _, t := range g.textures {
		out = append(out, t.Descriptor(g.res))
	}
	return out
}

// Install hands the graph to a backend: world settings first, then every texture in declaration order, then every pass
// in execution order. The first backend error aborts the install.
//
// Parameters:
//   - b: the backend
//
// Returns:
//   - Bindings: the backend handle of every declared texture
//   - error: the wrapped backend error, if any
func (g *Graph) Install(b Backend) (Bindings, error) {
	if err := b.ApplyWorldSettings(g.world); err != nil {
		return nil, fmt.Errorf("apply world settings: %w", err)
	}
	bindings := make(Bindings, len(g.textures))
	for _, t := range g.textures {
		id, err := b.DeclareTexture(t, t.Descriptor(g.res))
		if err != nil {
			return nil, fmt.Errorf("declare texture %q: %w", t.Name(), err)
		}
		if id == 0 {
			return nil, fmt.Errorf("declare texture %q: backend returned the zero handle", t.Name())
		}
		bindings[t.Name()] = id
	}
	for _, e := range g.passes {
		if err := b.RegisterPass(e.Stage, e.Pass); err != nil {
			return nil, fmt.Errorf("register %s pass %q: %w", e.Stage, e.Pass.Name(), err)
		}
	}
	return bindings, nil
}
