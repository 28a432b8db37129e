package pass

import (
	"maps"
	"slices"
)

// Kind identifies which of the three pass shapes a Pass is.
type Kind int

const (
	// KindComposite is a full-screen, fragment-only pass that reads and writes named textures.
	KindComposite Kind = iota

	// KindObject is a vertex + fragment pass bound to a geometry Usage that writes a fixed ordered set of target slots.
	KindObject

	// KindCombination is the terminal pass that writes to the display surface instead of a named texture.
	KindCombination
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindComposite:
		return "composite"
	case KindObject:
		return "object"
	case KindCombination:
		return "combination"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Target binds an output slot of a pass to a texture, optionally at a specific mip level.
type Target struct {
	// Slot is the fragment output index.
	Slot int `yaml:"slot"`
	// Texture is the canonical name of the written texture.
	Texture string `yaml:"texture"`
	// Mip is the written mip level. Only meaningful when HasMip is true.
	Mip int `yaml:"mip,omitempty"`
	// HasMip is true when the target names an explicit mip level.
	HasMip bool `yaml:"hasMip,omitempty"`
}

// Level returns the mip level written, 0 when no explicit level was given.
func (t Target) Level() int {
	if !t.HasMip {
		return 0
	}
	return t.Mip
}

// Read declares that a pass samples a texture, optionally at a specific mip level.
type Read struct {
	// Texture is the canonical name of the sampled texture.
	Texture string `yaml:"texture"`
	// Mip is the sampled mip level. Only meaningful when HasMip is true.
	Mip int `yaml:"mip,omitempty"`
	// HasMip is true when the read targets a single mip level.
	HasMip bool `yaml:"hasMip,omitempty"`
}

// TextureRef records a define whose value is a texture name, so the reference can be validated against the registry.
type TextureRef struct {
	// Define is the preprocessor define key.
	Define string `yaml:"define"`
	// Texture is the referenced canonical texture name.
	Texture string `yaml:"texture"`
}

// pass is the implementation of the Pass interface.
type pass struct {
	name string
	kind Kind

	vertexSource, fragmentSource string

	usage   Usage
	targets []Target
	reads   []Read

	defines     map[string]string
	textureRefs []TextureRef
}

// Pass is a declared, immutable unit of GPU work. Passes reference textures purely by name; the typed handles used to
// build them guarantee the names came from declarations.
type Pass interface {
	// Name returns the human readable pass name. Names are not required to be unique.
	//
	// Returns:
	//   - string: the pass name
	Name() string

	// Kind returns the pass shape.
	//
	// Returns:
	//   - Kind: KindComposite, KindObject or KindCombination
	Kind() Kind

	// VertexSource returns the vertex program identifier, empty for composite and combination passes.
	//
	// Returns:
	//   - string: the opaque vertex source identifier
	VertexSource() string

	// FragmentSource returns the fragment program identifier.
	//
	// Returns:
	//   - string: the opaque fragment source identifier
	FragmentSource() string

	// Usage returns the geometry category of an object pass, UsageNone otherwise.
	//
	// Returns:
	//   - Usage: the geometry usage
	Usage() Usage

	// Targets returns the ordered output bindings. The returned slice is a copy.
	//
	// Returns:
	//   - []Target: targets ordered by registration
	Targets() []Target

	// Reads returns the textures this pass samples. The returned slice is a copy.
	//
	// Returns:
	//   - []Read: sampled textures
	Reads() []Read

	// Define returns the value of a preprocessor define.
	//
	// Parameters:
	//   - key: the define key
	//
	// Returns:
	//   - string: the textual value
	//   - bool: true if the define exists
	Define(key string) (string, bool)

	// Defines returns a copy of all preprocessor defines.
	//
	// Returns:
	//   - map[string]string: define key to textual value
	Defines() map[string]string

	// DefineKeys returns the define keys in sorted order, so emitted shader text is deterministic.
	//
	// Returns:
	//   - []string: sorted define keys
	DefineKeys() []string

	// TextureRefs returns the defines whose values are texture names. The returned slice is a copy.
	//
	// Returns:
	//   - []TextureRef: texture-valued defines in registration order
	TextureRefs() []TextureRef
}

var _ Pass = &pass{}

func newPass(name string, kind Kind, opts []PassBuilderOption) *pass {
	p := &pass{
		name:    name,
		kind:    kind,
		defines: make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewComposite creates a full-screen fragment-only pass.
//
// Parameters:
//   - name: the human readable pass name
//   - fragment: the fragment program identifier
//   - opts: a variadic list of PassBuilderOption functions to configure the pass
//
// Returns:
//   - Pass: the composite pass
func NewComposite(name, fragment string, opts ...PassBuilderOption) Pass {
	p := newPass(name, KindComposite, opts)
	p.fragmentSource = fragment
	p.vertexSource = ""
	p.usage = UsageNone
	return p
}

// NewObject creates a geometry pass bound to a usage category.
//
// Parameters:
//   - name: the human readable pass name
//   - usage: the geometry category routed to this pass
//   - vertex: the vertex program identifier
//   - fragment: the fragment program identifier
//   - opts: a variadic list of PassBuilderOption functions to configure the pass
//
// Returns:
//   - Pass: the object pass
func NewObject(name string, usage Usage, vertex, fragment string, opts ...PassBuilderOption) Pass {
	p := newPass(name, KindObject, opts)
	p.usage = usage
	p.vertexSource = vertex
	p.fragmentSource = fragment
	return p
}

// NewCombination creates the terminal pass that writes to the display surface. Any targets supplied through options are
// discarded since a combination pass never writes a named texture.
//
// Parameters:
//   - name: the human readable pass name
//   - fragment: the fragment program identifier
//   - opts: a variadic list of PassBuilderOption functions to configure the pass
//
// Returns:
//   - Pass: the combination pass
func NewCombination(name, fragment string, opts ...PassBuilderOption) Pass {
	p := newPass(name, KindCombination, opts)
	p.fragmentSource = fragment
	p.vertexSource = ""
	p.usage = UsageNone
	p.targets = nil
	return p
}

func (p *pass) Name() string {
	return p.name
}

func (p *pass) Kind() Kind {
	return p.kind
}

func (p *pass) VertexSource() string {
	return p.vertexSource
}

func (p *pass) FragmentSource() string {
	return p.fragmentSource
}

func (p *pass) Usage() Usage {
	return p.usage
}

func (p *pass) Targets() []Target {
	return slices.Clone(p.targets)
}

func (p *pass) Reads() []Read {
	return slices.Clone(p.reads)
}

func (p *pass) Define(key string) (string, bool) {
	v, ok := p.defines[key]
	return v, ok
}

func (p *pass) Defines() map[string]string {
	return maps.Clone(p.defines)
}

func (p *pass) DefineKeys() []string {
	return slices.Sorted(maps.Keys(p.defines))
}

func (p *pass) TextureRefs() []TextureRef {
	return slices.Clone(p.textureRefs)
}
