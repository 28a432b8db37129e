// Package gbuffer allocates the deferred-shading G-buffer: one set of screen-sized textures and one object pass per
// geometry usage category, all sharing the same target-slot layout.
package gbuffer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Program identifiers of the G-buffer object passes.
const (
	VertexProgram   = "programs/gbuffer/main.vert"
	FragmentProgram = "programs/gbuffer/main.frag"
)

// DefineTargetCount is the define holding the number of target slots.
const DefineTargetCount = "def_targetCount"

// SlotDefine returns the define key holding the slot index of a channel, e.g. "def_albedoSlot".
func SlotDefine(suffix string) string {
	if suffix == "" {
		return "def_Slot"
	}
	return "def_" + strings.ToLower(suffix[:1]) + suffix[1:] + "Slot"
}

// Set is the texture set of one category, in slot order.
type Set struct {
	Prefix   string
	Usage    pass.Usage
	Textures []texture.Handle

	bySuffix map[string]texture.Handle
}

// Texture returns the handle of a channel by suffix.
//
// Parameters:
//   - suffix: the channel suffix, e.g. Albedo
//
// Returns:
//   - texture.Handle: the channel texture
//   - bool: true if the layout has the channel
func (s *Set) Texture(suffix string) (texture.Handle, bool) {
	h, ok := s.bySuffix[suffix]
	return h, ok
}

// Albedo returns the albedo channel, falling back to slot 0 for layouts without one.
func (s *Set) Albedo() texture.Handle {
	if h, ok := s.bySuffix[Albedo]; ok {
		return h
	}
	return s.Textures[0]
}

// Gbuffer holds every category's texture set, in policy order.
type Gbuffer struct {
	sets    []*Set
	byUsage map[pass.Usage]*Set
}

// Sets returns the category sets in policy order.
func (g *Gbuffer) Sets() []*Set {
	return slices.Clone(g.sets)
}

// Set returns the set of a usage category.
//
// Parameters:
//   - u: the usage
//
// Returns:
//   - *Set: the category set, nil if the policy has no such category
func (g *Gbuffer) Set(u pass.Usage) *Set {
	return g.byUsage[u]
}

// Setup declares a texture per channel for every category and registers one object pass per category binding channel i
// to target slot i.
//
// Parameters:
//   - ctx: the configuration context
//   - p: the allocation policy
//
// Returns:
//   - *Gbuffer: the declared sets
//   - error: ErrInvalidPolicy, or a declaration/registration error
func Setup(ctx graph.Context, p Policy) (*Gbuffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &Gbuffer{byUsage: make(map[pass.Usage]*Set, len(p.Categories))}

	for _, c := range p.Categories {
		set, err := declareSet(ctx, c, p)
		if err != nil {
			return nil, err
		}
		g.sets = append(g.sets, set)
		g.byUsage[c.Usage] = set
	}

	// passes are registered after every texture exists, in category order
	for _, set := range g.sets {
		opts := []pass.PassBuilderOption{pass.WithIntDefine(DefineTargetCount, len(set.Textures))}
		for slot, h := range set.Textures {
			opts = append(opts,
				pass.WithTarget(slot, h),
				pass.WithIntDefine(SlotDefine(p.Layout[slot].Suffix), slot),
			)
		}
		if err := ctx.Register(pass.StageGeometry, pass.NewObject(set.Prefix, set.Usage, VertexProgram, FragmentProgram, opts...)); err != nil {
			return nil, fmt.Errorf("gbuffer %q: %w", set.Prefix, err)
		}
	}
	ctx.Logger().Debug("gbuffer configured", "categories", len(g.sets), "channels", len(p.Layout))
	return g, nil
}

func declareSet(ctx graph.Context, c Category, p Policy) (*Set, error) {
	set := &Set{
		Prefix:   c.Prefix,
		Usage:    c.Usage,
		Textures: make([]texture.Handle, 0, len(p.Layout)),
		bySuffix: make(map[string]texture.Handle, len(p.Layout)),
	}
	for _, ch := range p.Layout {
		opts := []texture.TextureBuilderOption{
			texture.WithFormat(ch.Format),
			texture.WithClear(true),
		}
		if p.ClearColor != nil {
			opts = append(opts, texture.WithClearColor(*p.ClearColor))
		}
		h, err := ctx.Declare(texture.NewTexture(c.Prefix+ch.Suffix+"Texture", opts...))
		if err != nil {
			return nil, fmt.Errorf("gbuffer %q: %w", c.Prefix, err)
		}
		set.Textures = append(set.Textures, h)
		set.bySuffix[ch.Suffix] = h
	}
	return set, nil
}
