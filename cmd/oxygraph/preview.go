package main

import (
	"os"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
	"github.com/spf13/cobra"
)

func newPreviewCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Open a window and reconfigure the graph on every framebuffer resize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.policy()
			if err != nil {
				return err
			}
			logger := opts.logger(os.Stderr)
			prof := profiler.NewProfiler(logger)
			c := pipeline.NewCompiler(
				pipeline.WithLogger(logger),
				pipeline.WithProfiler(prof),
				pipeline.WithPolicy(p),
				pipeline.WithBackend(graph.NewRecorder()),
			)

			win, err := window.NewWindow(
				window.WithTitle("oxygraph - "+p.Name),
				window.WithSize(opts.resolution()),
			)
			if err != nil {
				return err
			}
			defer win.Close()

			// failures are logged by the compiler and the previous graph stays active
			win.SetResizeCallback(func(res common.Resolution) {
				_, _ = c.Reconfigure(res)
			})
			if _, err := c.Reconfigure(win.Resolution()); err != nil {
				return err
			}
			win.ProcessMessages()

			st := prof.Stats()
			logger.Info("preview closed", "configurations", st.Configurations, "failures", st.Failures, "avg", st.Average())
			return nil
		},
	}
}
