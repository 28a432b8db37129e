package main

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/spf13/cobra"
)

func newPresetsCommand() *cobra.Command {
	var dump string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the stock policies, or print one as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dump != "" {
				p, err := pipeline.Preset(dump)
				if err != nil {
					return err
				}
				data, err := config.Encode(p)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			presets := pipeline.Presets()
			names := make([]string, 0, len(presets))
			for name := range presets {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				p := presets[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tcategories=%d channels=%d atmospheres=%d sort=%t bloom=%t\n",
					name, len(p.Gbuffer.Categories), len(p.Gbuffer.Layout), len(p.Atmospheres), p.CompositeSort, p.Bloom)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dump, "dump", "", "print the named preset as a TOML policy file")
	return cmd
}
