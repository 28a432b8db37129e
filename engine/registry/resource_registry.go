package registry

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// resourceRegistry is the implementation of the ResourceRegistry interface.
type resourceRegistry struct {
	textures []texture.Texture
	byName   map[string]int
}

// ResourceRegistry is the in-memory store of texture declarations for one configuration, keyed by unique name.
// It is owned by a single configuration and is not safe for concurrent mutation.
type ResourceRegistry interface {
	// Declare adds a texture declaration and returns its handle. The name must be non-empty and not already declared.
	//
	// Parameters:
	//   - t: the texture declaration
	//
	// Returns:
	//   - texture.Handle: the typed handle carrying the canonical name
	//   - error: ErrDuplicateResource or ErrEmptyName, wrapped with the offending name
	Declare(t texture.Texture) (texture.Handle, error)

	// Lookup finds a texture by canonical name.
	//
	// Parameters:
	//   - name: the texture name
	//
	// Returns:
	//   - texture.Texture: the declaration, nil if not found
	//   - bool: true if found
	Lookup(name string) (texture.Texture, bool)

	// Get resolves a handle to its declaration.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - texture.Texture: the declaration, nil if the handle does not belong to this registry
	//   - bool: true if resolved
	Get(h texture.Handle) (texture.Texture, bool)

	// Textures returns all declarations in declaration order. The returned slice is a copy.
	//
	// Returns:
	//   - []texture.Texture: the declarations
	Textures() []texture.Texture

	// Len returns the number of declared textures.
	Len() int
}

var _ ResourceRegistry = &resourceRegistry{}

// NewResourceRegistry creates an empty ResourceRegistry.
//
// Returns:
//   - ResourceRegistry: the registry
func NewResourceRegistry() ResourceRegistry {
	return &resourceRegistry{
		byName: make(map[string]int),
	}
}

func (r *resourceRegistry) Declare(t texture.Texture) (texture.Handle, error) {
	if t == nil || t.Name() == "" {
		return texture.Handle{}, ErrEmptyName
	}
	name := t.Name()
	if _, exists := r.byName[name]; exists {
		return texture.Handle{}, fmt.Errorf("texture %q: %w", name, ErrDuplicateResource)
	}
	r.textures = append(r.textures, t)
	id := len(r.textures)
	r.byName[name] = id
	return texture.NewHandle(id, name), nil
}

func (r *resourceRegistry) Lookup(name string) (texture.Texture, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.textures[id-1], true
}

func (r *resourceRegistry) Get(h texture.Handle) (texture.Texture, bool) {
	if !h.Valid() || h.ID() > len(r.textures) {
		return nil, false
	}
	t := r.textures[h.ID()-1]
	if t.Name() != h.Name() {
		return nil, false
	}
	return t, true
}

func (r *resourceRegistry) Textures() []texture.Texture {
	return slices.Clone(r.textures)
}

func (r *resourceRegistry) Len() int {
	return len(r.textures)
}
