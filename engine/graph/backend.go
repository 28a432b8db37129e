package graph

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/registry"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureID is the backend's handle for an allocated texture. Zero is never a valid handle.
type TextureID uint64

// Bindings maps canonical texture names to the handles the backend returned for them during one install.
type Bindings map[string]TextureID

// Backend is the graphics backend a finished Graph is handed to. The backend allocates textures, links programs and
// executes the passes every frame; none of that happens in this module.
type Backend interface {
	// ApplyWorldSettings writes the global settings sink. Called once per install.
	//
	// Parameters:
	//   - ws: the world settings
	//
	// Returns:
	//   - error: error if the backend rejects the settings
	ApplyWorldSettings(ws common.WorldSettings) error

	// DeclareTexture allocates a texture.
	//
	// Parameters:
	//   - t: the texture declaration
	//   - desc: the WebGPU descriptor for the current resolution
	//
	// Returns:
	//   - TextureID: the backend handle of the allocated texture
	//   - error: error if allocation fails
	DeclareTexture(t texture.Texture, desc wgpu.TextureDescriptor) (TextureID, error)

	// RegisterPass appends a pass to the backend's per-stage execution list.
	//
	// Parameters:
	//   - stage: the stage bucket
	//   - p: the pass
	//
	// Returns:
	//   - error: error if the backend rejects the pass
	RegisterPass(stage pass.Stage, p pass.Pass) error
}

// Recorder is a Backend that records every call of the most recent install. It is used for dry runs and tests.
// ApplyWorldSettings starts a new install and drops the previous one.
type Recorder struct {
	mu sync.Mutex

	World       common.WorldSettings
	Textures    []texture.Texture
	Descriptors []wgpu.TextureDescriptor
	Passes      []registry.Entry
}

var _ Backend = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ApplyWorldSettings(ws common.WorldSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.World = ws
	r.Textures = nil
	r.Descriptors = nil
	r.Passes = nil
	return nil
}

func (r *Recorder) DeclareTexture(t texture.Texture, desc wgpu.TextureDescriptor) (TextureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Textures = append(r.Textures, t)
	r.Descriptors = append(r.Descriptors, desc)
	return TextureID(len(r.Textures)), nil
}

func (r *Recorder) RegisterPass(stage pass.Stage, p pass.Pass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := 0
	for _, e := range r.Passes {
		if e.Stage == stage {
			idx++
		}
	}
	r.Passes = append(r.Passes, registry.Entry{Stage: stage, Index: idx, Pass: p})
	return nil
}

// Reset clears everything recorded so the recorder can receive a reconfiguration.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.World = common.WorldSettings{}
	r.Textures = nil
	r.Descriptors = nil
	r.Passes = nil
}
