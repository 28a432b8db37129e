package pipeline

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
)

// CompilerBuilderOption is a functional option for configuring a Compiler.
// Use the With* functions to create options that are applied directly to the compiler instance.
type CompilerBuilderOption func(*compiler)

// WithLogger sets the logger used by the compiler and every configuration context it creates.
//
// Parameters:
//   - l: the logger, ignored if nil
//
// Returns:
//   - CompilerBuilderOption: option function to apply
func WithLogger(l *slog.Logger) CompilerBuilderOption {
	return func(c *compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBackend sets the backend each successfully built graph is installed into.
//
// Parameters:
//   - b: the backend
//
// Returns:
//   - CompilerBuilderOption: option function to apply
func WithBackend(b graph.Backend) CompilerBuilderOption {
	return func(c *compiler) {
		c.backend = b
	}
}

// WithProfiler sets the profiler that measures every configuration.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - CompilerBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) CompilerBuilderOption {
	return func(c *compiler) {
		c.profiler = p
	}
}

// WithPolicy sets the initial policy. Defaults to DefaultPolicy().
//
// Parameters:
//   - p: the policy
//
// Returns:
//   - CompilerBuilderOption: option function to apply
func WithPolicy(p Policy) CompilerBuilderOption {
	return func(c *compiler) {
		c.policy = p
	}
}
