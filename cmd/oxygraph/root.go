package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	preset  string
	config  string
	width   int
	height  int
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "oxygraph",
		Short:        "Configure deferred shading render graphs",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.preset, "preset", "p", config.DefaultPreset, "stock policy to start from")
	pf.StringVarP(&opts.config, "config", "c", "", "TOML policy file, overrides --preset")
	pf.IntVar(&opts.width, "width", 1920, "screen width in pixels")
	pf.IntVar(&opts.height, "height", 1080, "screen height in pixels")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log generator details")

	root.AddCommand(
		newCompileCommand(opts),
		newBatchCommand(opts),
		newWatchCommand(opts),
		newPreviewCommand(opts),
		newPresetsCommand(),
	)
	return root
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *options) resolution() common.Resolution {
	return common.Resolution{Width: o.width, Height: o.height}
}

func (o *options) policy() (pipeline.Policy, error) {
	if o.config != "" {
		return config.Load(o.config)
	}
	return pipeline.Preset(o.preset)
}

// output opens path for writing, or returns stdout for "" and "-".
func output(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
