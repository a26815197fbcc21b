package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
)

// previewCommand creates the preview command, an interactive page browser.
func (c *CLI) previewCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the packed pages in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, _, err := c.packInput(cmd.Context(), runner, opts)
			if errors.Is(err, errors.ErrCodeNoInput) {
				printWarning("Nothing to process: %s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPageModel(res, opts.Geometry()), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd, false)
	return cmd
}
