package main

import (
	"errors"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/export"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reconfigure whenever the policy file changes and rewrite the YAML output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.config == "" {
				return errors.New("watch requires --config")
			}
			p, err := config.Load(opts.config)
			if err != nil {
				return err
			}
			logger := opts.logger(os.Stderr)
			c := pipeline.NewCompiler(
				pipeline.WithLogger(logger),
				pipeline.WithProfiler(profiler.NewProfiler(logger)),
				pipeline.WithPolicy(p),
			)
			dump := func() error {
				w, err := output(out, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				defer w.Close()
				return export.Write(w, c.Current())
			}
			if _, err := c.Reconfigure(opts.resolution()); err != nil {
				return err
			}
			if err := dump(); err != nil {
				return err
			}

			w, err := config.NewWatcher(opts.config, func(p pipeline.Policy) error {
				if _, err := c.SetPolicy(p); err != nil {
					return err
				}
				return dump()
			}, config.WithLogger(logger))
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := w.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
