package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/pipeline"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
)

// Plan output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// planCommand creates the plan command, which packs without writing files.
func (c *CLI) planCommand() *cobra.Command {
	var flags optionFlags
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how the input images would be packed",
		Long: `Plan loads and packs the input images exactly like render, then prints
every placement instead of writing sheets. Use --format json or yaml for a
machine-readable manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePlanFormat(format); err != nil {
				return err
			}
			opts, err := c.loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, skipped, err := c.packInput(cmd.Context(), runner, opts)
			if errors.Is(err, errors.ErrCodeNoInput) {
				printWarning("Nothing to process: %s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}
			return writePlan(format, res, skipped, opts)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")
	return cmd
}

func validatePlanFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text', 'json' or 'yaml')", format)
}

// packInput loads and packs the input directory behind a spinner. It returns
// an ErrCodeNoInput error when nothing could be placed.
func (c *CLI) packInput(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (layout.Result, []pipeline.Skipped, error) {
	spinner := newSpinnerWithContext(ctx, "Loading images from "+opts.InputDir+"...")
	spinner.Start()
	items, skipped, err := runner.Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		return layout.Result{}, nil, err
	}
	if len(items) == 0 {
		return layout.Result{}, skipped, errors.New(errors.ErrCodeNoInput, "no usable images in %s", opts.InputDir)
	}

	res := runner.Plan(ctx, items, opts)
	if len(res.Pages) == 0 {
		return res, skipped, errors.New(errors.ErrCodeNoInput, "every image is wider than the printable area")
	}
	return res, skipped, nil
}

func writePlan(format string, res layout.Result, skipped []pipeline.Skipped, opts pipeline.Options) error {
	if format == formatText {
		printPlan(res, skipped, opts)
		return nil
	}

	m := sink.BuildManifest(res, opts.Geometry(),
		sink.WithDPI(opts.Resolution()),
		sink.WithSkipped(pipeline.SkippedFiles(skipped)),
		sink.WithPrintOrder(),
	)
	var (
		data []byte
		err  error
	)
	if format == formatJSON {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

// printPlan renders the packing as a table, one line per placed image.
func printPlan(res layout.Result, skipped []pipeline.Skipped, opts pipeline.Options) {
	g := opts.Geometry()

	printKeyValue("Page", fmt.Sprintf("%g x %g mm (%d x %d px @ %d dpi)", opts.PageWidthMM, opts.PageHeightMM, g.PageWidth, g.PageHeight, opts.DPI))
	printKeyValue("Printable", fmt.Sprintf("%d x %d px", g.ContentWidth(), g.ContentHeight()))
	printKeyValue("Spacing", fmt.Sprintf("%d px", g.Spacing))
	printNewline()

	fmt.Println(planTable(res, g).Render())
	printNewline()

	for _, s := range skipped {
		printWarning("Skipped %s: %s", s.File, errors.UserMessage(s.Err))
	}
	for _, it := range res.Rejected {
		printWarning("Rejected %s: %s", it.ID, errors.UserMessage(pipeline.Rejection(it, g)))
	}
	printStats(len(res.Items()), len(res.Pages), len(skipped), len(res.Rejected))
	printNextStep("Write the sheets", "duplexsheet render")
}

func planTable(res layout.Result, g layout.Geometry) *table.Table {
	var rows [][]string
	for pi, p := range res.Pages {
		placements := layout.Place(p, g)
		k := 0
		for ri, r := range p.Rows {
			for range r.Items {
				pl := placements[k]
				k++
				rows = append(rows, []string{
					fmt.Sprint(pi + 1),
					fmt.Sprint(ri + 1),
					pl.Item.ID,
					fmt.Sprintf("%dx%d", pl.Item.Width, pl.Item.Height),
					fmt.Sprintf("%d,%d", pl.X, pl.Y),
					fmt.Sprintf("%d,%d", pl.BackX, pl.Y),
				})
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Row", "Image", "Size", "Front", "Back").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col <= 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col >= 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
}
