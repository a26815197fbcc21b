package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/pipeline"
	"github.com/duplexsheet/duplexsheet/pkg/source"
)

// renderCommand creates the render command, which runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Pack the input images and write front/back sheets",
		Long: `Render packs every image in the input directory into rows and pages and
writes layout_sheet_NN_front.png and layout_sheet_NN_back.png for each page.

Print all fronts, put the stack back into the tray, then print the backs in
reverse order. Previous layout_sheet_* files in the output directory are
removed first.`,
		Example: `  duplexsheet render
  duplexsheet render -i artwork -o sheets --paper letter --dpi 600
  duplexsheet render --margin 10 --spacing 5 --scale 0.5 --pdf`,
		Args: cobra.NoArgs,
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
			return c.runRender(cmd, runner, opts)
		},
	}

	flags.register(cmd, true)
	return cmd
}

// runRender executes the pipeline and reports the outcome. An empty or
// unusable input directory is reported as a warning, not as a failure.
func (c *CLI) runRender(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	res, err := runner.Execute(cmd.Context(), opts)
	if errors.Is(err, errors.ErrCodeNoInput) {
		if res != nil {
			printProblems(res)
		}
		printWarning("Nothing to process: %s", errors.UserMessage(err))
		printDetail("Put %s files into %s and run again", extensionList(), opts.InputDir)
		return nil
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %s", plural(len(res.Layout.Pages), "page")))

	printProblems(res)
	printSuccess("Wrote %s to %s", plural(len(res.Files), "sheet file"), StyleHighlight.Render(opts.OutputDir))
	printStats(res.Stats.Loaded, len(res.Layout.Pages), len(res.Skipped), len(res.Layout.Rejected))
	for _, f := range res.Files {
		printFile(f)
	}
	if res.PDF != "" {
		printFile(res.PDF)
	}
	if res.Manifest != "" {
		printFile(res.Manifest)
	}

	printNewline()
	printPrintOrder(res.PrintOrder())
	printNewline()
	printInfo("Print all fronts first, then put the stack back and print the backs in the order above")
	if res.PDF == "" {
		printNextStep("Single print-ready file", "duplexsheet render --pdf")
	}
	return nil
}

// printProblems reports skipped and rejected inputs.
// extensionList renders the accepted extensions as ".png, .jpg or .webp".
func extensionList() string {
	exts := source.Extensions()
	if len(exts) < 2 {
		return strings.Join(exts, "")
	}
	return strings.Join(exts[:len(exts)-1], ", ") + " or " + exts[len(exts)-1]
}

func printProblems(res *pipeline.Result) {
	for _, s := range res.Skipped {
		printWarning("Skipped %s: %s", s.File, errors.UserMessage(s.Err))
	}
	for _, it := range res.Layout.Rejected {
		printWarning("Rejected %s: %s", it.ID, errors.UserMessage(pipeline.Rejection(it, res.Geometry)))
	}
}
