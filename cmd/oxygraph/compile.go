package main

import (
	"os"

	"github.com/Carmen-Shannon/oxy-graph/engine/export"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/spf13/cobra"
)

func newCompileCommand(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Configure one graph and write it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.policy()
			if err != nil {
				return err
			}
			logger := opts.logger(os.Stderr)
			g, err := pipeline.Configure(opts.resolution(), p, graph.WithLogger(logger))
			if err != nil {
				return err
			}
			w, err := output(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer w.Close()
			return export.Write(w, g)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
