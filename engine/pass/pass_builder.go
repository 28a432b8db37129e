package pass

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// PassBuilderOption is a functional option used to configure a Pass during construction.
type PassBuilderOption func(*pass)

// WithTarget binds an output slot to mip level 0 of a texture.
//
// Parameters:
//   - slot: the fragment output index
//   - h: the written texture
//
// Returns:
//   - PassBuilderOption: a function that appends the target
func WithTarget(slot int, h texture.Handle) PassBuilderOption {
	return func(p *pass) {
		p.targets = append(p.targets, Target{Slot: slot, Texture: h.Name()})
	}
}

// WithTargetMip binds an output slot to a specific mip level of a texture.
//
// Parameters:
//   - slot: the fragment output index
//   - h: the written texture
//   - mip: the written mip level
//
// Returns:
//   - PassBuilderOption: a function that appends the target
func WithTargetMip(slot int, h texture.Handle, mip int) PassBuilderOption {
	return func(p *pass) {
		p.targets = append(p.targets, Target{Slot: slot, Texture: h.Name(), Mip: mip, HasMip: true})
	}
}

// WithRead declares that the pass samples every mip level of a texture.
//
// Parameters:
//   - h: the sampled texture
//
// Returns:
//   - PassBuilderOption: a function that appends the read
func WithRead(h texture.Handle) PassBuilderOption {
	return func(p *pass) {
		p.reads = append(p.reads, Read{Texture: h.Name()})
	}
}

// WithReadMip declares that the pass samples a single mip level of a texture.
//
// Parameters:
//   - h: the sampled texture
//   - mip: the sampled mip level
//
// Returns:
//   - PassBuilderOption: a function that appends the read
func WithReadMip(h texture.Handle, mip int) PassBuilderOption {
	return func(p *pass) {
		p.reads = append(p.reads, Read{Texture: h.Name(), Mip: mip, HasMip: true})
	}
}

// WithDefine sets a raw textual preprocessor define. A later define with the same key replaces the earlier one.
//
// Parameters:
//   - key: the define key
//   - value: the textual value substituted into shader source
//
// Returns:
//   - PassBuilderOption: a function that sets the define
func WithDefine(key, value string) PassBuilderOption {
	return func(p *pass) {
		p.setDefine(key, value)
	}
}

// WithIntDefine sets an integer define.
func WithIntDefine(key string, v int) PassBuilderOption {
	return WithDefine(key, FormatInt(v))
}

// WithFloatDefine sets a float define, always emitted with a decimal point.
func WithFloatDefine(key string, v float32) PassBuilderOption {
	return WithDefine(key, FormatFloat(v))
}

// WithBoolDefine sets a boolean define.
func WithBoolDefine(key string, v bool) PassBuilderOption {
	return WithDefine(key, FormatBool(v))
}

// WithVec3Define sets a vector define emitted as a vec3 constructor.
func WithVec3Define(key string, v common.Vec3) PassBuilderOption {
	return WithDefine(key, FormatVec3(v))
}

// WithTextureDefine sets a define whose value is a texture's canonical name and records the reference for validation.
//
// Parameters:
//   - key: the define key
//   - h: the referenced texture
//
// Returns:
//   - PassBuilderOption: a function that sets the define
func WithTextureDefine(key string, h texture.Handle) PassBuilderOption {
	return func(p *pass) {
		p.setDefine(key, h.Name())
		p.textureRefs = append(p.textureRefs, TextureRef{Define: key, Texture: h.Name()})
	}
}

// WithOptions applies a list of options in order. Generators use it to share a common define set between passes.
//
// Parameters:
//   - opts: the options to apply
//
// Returns:
//   - PassBuilderOption: a function that applies every option
func WithOptions(opts ...PassBuilderOption) PassBuilderOption {
	return func(p *pass) {
		for _, opt := range opts {
			opt(p)
		}
	}
}

// setDefine writes a define and drops any texture reference previously recorded under the same key.
func (p *pass) setDefine(key, value string) {
	p.defines[key] = value
	p.textureRefs = slices.DeleteFunc(p.textureRefs, func(r TextureRef) bool {
		return r.Define == key
	})
}
