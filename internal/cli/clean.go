package cli

import (
	"github.com/spf13/cobra"

	"github.com/duplexsheet/duplexsheet/pkg/pipeline"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
)

// cleanCommand creates the clean command, which removes previous output.
func (c *CLI) cleanCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove sheets, PDF and manifest of a previous run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			removed, err := sink.Clean(opts.OutputDir)
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				printInfo("Nothing to remove in %s", opts.OutputDir)
				return nil
			}
			printSuccess("Removed %s from %s", plural(len(removed), "file"), opts.OutputDir)
			for _, name := range removed {
				printDetail("%s", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", pipeline.DefaultOutputDir, "output directory")
	return cmd
}
