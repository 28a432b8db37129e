package graph

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/registry"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// configContext is the implementation of the Context interface.
type configContext struct {
	res   common.Resolution
	world common.WorldSettings

	resources registry.ResourceRegistry
	passes    registry.PassRegistry

	finalName string
	sealed    bool

	logger *slog.Logger
}

// Context is the explicit configuration object passed to every generator. It owns the resource and pass registries for
// the duration of one (re)configuration and is turned into an immutable Graph by Build.
// A Context is single-threaded: it must only be used by the goroutine running the configuration.
type Context interface {
	// Resolution returns the screen resolution this configuration is built against.
	//
	// Returns:
	//   - common.Resolution: the screen resolution
	Resolution() common.Resolution

	// ScreenMipCount returns floor(log2(max(width, height))) of the screen, clamped to at least 1.
	//
	// Returns:
	//   - int: the screen mip count
	ScreenMipCount() int

	// SetWorldSettings records the global settings handed to the backend's settings sink.
	//
	// Parameters:
	//   - ws: the world settings
	SetWorldSettings(ws common.WorldSettings)

	// WorldSettings returns the recorded world settings.
	WorldSettings() common.WorldSettings

	// Declare adds a texture declaration to the resource registry.
	//
	// Parameters:
	//   - t: the texture declaration
	//
	// Returns:
	//   - texture.Handle: the typed handle carrying the canonical name
	//   - error: registry.ErrDuplicateResource, registry.ErrEmptyName or ErrSealed
	Declare(t texture.Texture) (texture.Handle, error)

	// Register appends a pass to a stage. Registering a second combination pass fails immediately with
	// ErrMultipleFinalPasses.
	//
	// Parameters:
	//   - stage: the stage bucket
	//   - p: the pass declaration
	//
	// Returns:
	//   - error: registry.ErrInvalidStage, ErrMultipleFinalPasses or ErrSealed
	Register(stage pass.Stage, p pass.Pass) error

	// Texture resolves a handle against this configuration's resource registry.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - texture.Texture: the declaration
	//   - bool: true if the handle belongs to this configuration
	Texture(h texture.Handle) (texture.Texture, bool)

	// Logger returns the configuration logger generators should log through.
	Logger() *slog.Logger

	// Build validates every declaration and returns the finished Graph. The context is sealed afterwards, whether or not
	// validation succeeded.
	//
	// Returns:
	//   - *Graph: the immutable graph, nil on error
	//   - error: all validation problems joined together
	Build() (*Graph, error)
}

var _ Context = &configContext{}

// NewContext creates an empty configuration context for the given resolution.
//
// Parameters:
//   - res: the screen resolution
//   - opts: a variadic list of ContextBuilderOption functions
//
// Returns:
//   - Context: the configuration context
func NewContext(res common.Resolution, opts ...ContextBuilderOption) Context {
	c := &configContext{
		res:       res,
		resources: registry.NewResourceRegistry(),
		passes:    registry.NewPassRegistry(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "graph", "resolution", res.String())
	return c
}

func (c *configContext) Resolution() common.Resolution {
	return c.res
}

func (c *configContext) ScreenMipCount() int {
	return common.MipCount(c.res.Width, c.res.Height)
}

func (c *configContext) SetWorldSettings(ws common.WorldSettings) {
	c.world = ws
}

func (c *configContext) WorldSettings() common.WorldSettings {
	return c.world
}

func (c *configContext) Declare(t texture.Texture) (texture.Handle, error) {
	if c.sealed {
		return texture.Handle{}, ErrSealed
	}
	h, err := c.resources.Declare(t)
	if err != nil {
		return texture.Handle{}, err
	}
	c.logger.Debug("declared texture", "name", h.Name(), "format", t.Format().String(), "mipmap", t.Mipmap())
	return h, nil
}

func (c *configContext) Register(stage pass.Stage, p pass.Pass) error {
	if c.sealed {
		return ErrSealed
	}
	if p != nil && p.Kind() == pass.KindCombination {
		if c.finalName != "" {
			return fmt.Errorf("pass %q after %q: %w", p.Name(), c.finalName, ErrMultipleFinalPasses)
		}
	}
	if err := c.passes.Register(stage, p); err != nil {
		return err
	}
	if p.Kind() == pass.KindCombination {
		c.finalName = p.Name()
	}
	c.logger.Debug("registered pass", "name", p.Name(), "stage", stage.String(), "kind", p.Kind().String())
	return nil
}

func (c *configContext) Texture(h texture.Handle) (texture.Texture, bool) {
	return c.resources.Get(h)
}

func (c *configContext) Logger() *slog.Logger {
	return c.logger
}

func (c *configContext) Build() (*Graph, error) {
	if c.sealed {
		return nil, ErrSealed
	}
	c.sealed = true

	entries := c.passes.Ordered()
	if err := validate(c.res, c.resources, entries); err != nil {
		return nil, err
	}
	g := &Graph{
		res:      c.res,
		world:    c.world,
		textures: c.resources.Textures(),
		passes:   entries,
	}
	g.index()
	c.logger.Info("graph built", "textures", len(g.textures), "passes", len(g.passes))
	return g, nil
}
