package graph

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// ContextBuilderOption is a functional option applied to a configuration context during NewContext.
type ContextBuilderOption func(*configContext)

// WithLogger sets the logger the context and its generators log through. Defaults to slog.Default().
//
// Parameters:
//   - l: the logger, ignored if nil
//
// Returns:
//   - ContextBuilderOption: a function that sets the logger
func WithLogger(l *slog.Logger) ContextBuilderOption {
	return func(c *configContext) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorldSettings presets the world settings of the context.
//
// Parameters:
//   - ws: the world settings
//
// Returns:
//   - ContextBuilderOption: a function that sets the world settings
func WithWorldSettings(ws common.WorldSettings) ContextBuilderOption {
	return func(c *configContext) {
		c.world = ws
	}
}
