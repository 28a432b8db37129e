package pipeline

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
)

type compiler struct {
	// configMu serializes configurations
	configMu sync.Mutex
	policy   Policy
	res      common.Resolution
	// sized is set by the first Reconfigure
	sized bool

	mu      sync.RWMutex
	current *graph.Graph

	backend  graph.Backend
	profiler *profiler.Profiler
	logger   *slog.Logger
}

// Compiler owns the currently active graph. Every Reconfigure builds a complete new graph from the policy; the active
// graph is replaced only when the new one builds, validates and installs without error.
type Compiler interface {
	// Reconfigure builds a graph for the given resolution.
	// On failure the previously active graph stays current.
	//
	// Parameters:
	//   - res: the new screen resolution
	//
	// Returns:
	//   - *graph.Graph: the new active graph
	//   - error: the configuration or installation error
	Reconfigure(res common.Resolution) (*graph.Graph, error)

	// SetPolicy replaces the policy and reconfigures at the last requested resolution.
	// The policy is kept only if the reconfiguration succeeds. Before the first Reconfigure there is no resolution to
	// build for, so a valid policy is stored and nil is returned for the graph.
	//
	// Parameters:
	//   - p: the new policy
	//
	// Returns:
	//   - *graph.Graph: the new active graph, nil before the first Reconfigure
	//   - error: the validation, configuration or installation error
	SetPolicy(p Policy) (*graph.Graph, error)

	// Policy returns the policy of the active graph.
	Policy() Policy

	// Current returns the active graph, nil before the first successful configuration.
	Current() *graph.Graph

	// Resolution returns the resolution of the last configuration request.
	Resolution() common.Resolution
}

var _ Compiler = &compiler{}

// NewCompiler creates a new Compiler. No graph is built until the first Reconfigure.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Compiler: the newly created compiler instance
func NewCompiler(opts ...CompilerBuilderOption) Compiler {
	c := &compiler{
		policy: DefaultPolicy(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "compiler")
	return c
}

func (c *compiler) Reconfigure(res common.Resolution) (*graph.Graph, error) {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	c.res = res
	c.sized = true
	return c.configure(res, c.policy)
}

func (c *compiler) SetPolicy(p Policy) (*graph.Graph, error) {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	if !c.sized {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		c.policy = p
		return nil, nil
	}
	g, err := c.configure(c.res, p)
	if err != nil {
		return nil, err
	}
	c.policy = p
	return g, nil
}

func (c *compiler) Policy() Policy {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	return c.policy
}

func (c *compiler) Current() *graph.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *compiler) Resolution() common.Resolution {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	return c.res
}

// configure must be called with configMu held.
func (c *compiler) configure(res common.Resolution, p Policy) (*graph.Graph, error) {
	var span *profiler.Span
	if c.profiler != nil {
		span = c.profiler.Begin(res.String())
	}

	g, err := Configure(res, p, graph.WithLogger(c.logger))
	if err == nil && c.backend != nil {
		if _, ierr := g.Install(c.backend); ierr != nil {
			err = fmt.Errorf("install graph: %w", ierr)
			c.restore()
		}
	}
	if span != nil {
		span.End(err)
	}
	if err != nil {
		c.logger.Error("configuration failed, keeping previous graph", "policy", p.Name, "resolution", res.String(), "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.current = g
	c.mu.Unlock()
	c.logger.Info("graph configured", "policy", p.Name, "resolution", res.String(), "textures", len(g.Textures()), "passes", len(g.Passes()))
	return g, nil
}

// restore reinstalls the active graph after a failed install left the backend holding part of a new one.
func (c *compiler) restore() {
	c.mu.RLock()
	prev := c.current
	c.mu.RUnlock()
	if prev == nil {
		return
	}
	if _, err := prev.Install(c.backend); err != nil {
		c.logger.Error("reinstalling previous graph failed", "resolution", prev.Resolution().String(), "error", err)
		return
	}
	c.logger.Warn("previous graph reinstalled", "resolution", prev.Resolution().String())
}
