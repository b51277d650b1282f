package cmd

import (
	"fmt"

	"capnarrative/internal/renderer"
	"capnarrative/internal/source"
	"capnarrative/internal/textview"

	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "describe <source>",
		Short: "Print the one-line description of a CapabilityStatement",
		Long: `Print the display string of a CapabilityStatement: its title, or its
name when no title is set. Sources are the same as for 'capnarrative render'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := source.Open(cmd.Context(), args[0], sourceOptions(cmd))
			if err != nil {
				return err
			}

			if plain {
				r := renderer.NewCapabilityStatementRenderer(renderer.NewRenderingContext(cfg.Rendering.Prefix))
				fmt.Fprintln(cmd.OutOrStdout(), r.Display(cs))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), textview.Summary(cs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the display string, without styling or counts")
	return cmd
}
