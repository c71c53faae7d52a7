package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/autodoc/pkg/preview"
	"github.com/ormasoftchile/autodoc/pkg/report"
)

var previewNoPager bool

var previewCmd = &cobra.Command{
	Use:   "preview [playbook.yml]",
	Short: "Render the report in the terminal without writing it",
	Long: `Render the playbook report as styled terminal output.

On a terminal the report opens in a scrollable pager (q to quit).
Otherwise, or with --no-pager, the rendered text is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	b, err := report.Build(report.Options{
		PlaybookPath: args[0],
		Select:       cfg.Select,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	md, err := report.RenderString(b.Name, b.Plays)
	if err != nil {
		return err
	}
	out, err := preview.Render(md, cfg.Preview.Style, cfg.Preview.Width)
	if err != nil {
		return err
	}
	if previewNoPager || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	return preview.Run(b.Name, out)
}

func init() {
	previewCmd.Flags().BoolVar(&previewNoPager, "no-pager", false, "Print instead of opening the pager")
	previewCmd.Flags().String("style", "", "glamour style: auto, dark, light or notty")
	previewCmd.Flags().Int("width", 0, "Word-wrap width (0 disables wrapping)")
	_ = v.BindPFlag("preview.style", previewCmd.Flags().Lookup("style"))
	_ = v.BindPFlag("preview.width", previewCmd.Flags().Lookup("width"))
}
