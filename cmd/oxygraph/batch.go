package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/spf13/cobra"
)

func newBatchCommand(opts *options) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch WIDTHxHEIGHT...",
		Short: "Configure one graph per resolution concurrently and report each result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.policy()
			if err != nil {
				return err
			}
			resolutions := make([]common.Resolution, 0, len(args))
			for _, a := range args {
				res, err := parseResolution(a)
				if err != nil {
					return err
				}
				resolutions = append(resolutions, res)
			}

			logger := opts.logger(os.Stderr)
			var errs []error
			for _, r := range pipeline.CompileAll(p, resolutions, workers, graph.WithLogger(logger)) {
				if r.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tFAIL\t%v\n", r.Resolution, r.Err)
					errs = append(errs, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tok\t%d textures\t%d passes\n",
					r.Resolution, len(r.Graph.Textures()), len(r.Graph.Passes()))
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "maximum concurrent configurations")
	return cmd
}

// parseResolution reads "WIDTHxHEIGHT".
func parseResolution(s string) (common.Resolution, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return common.Resolution{}, fmt.Errorf("resolution %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return common.Resolution{}, fmt.Errorf("resolution %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return common.Resolution{}, fmt.Errorf("resolution %q: %w", s, err)
	}
	return common.Resolution{Width: w, Height: h}, nil
}
