package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/user/vascope/pkg/config"
	"github.com/user/vascope/pkg/pipeline"
	"github.com/user/vascope/pkg/render"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Mark this period's findings New or Existing against the previous period",
	Long: `Finds the prior and current workbooks in --dir by their period tags, collects
every plugin/host/protocol/port seen in the prior workbook and labels each
finding of the current workbook. The annotated copy gets a Status column
after Name and a leading RecurrenceSummary tab. The current workbook is
never modified.`,
	Example: `  vascope compare --dir reports --prior-tag Q3 --current-tag Q4
  vascope compare --prior VA_Q3.xlsx --current VA_Q4.xlsx -o out/final.xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		prior, _ := cmd.Flags().GetString("prior")
		current, _ := cmd.Flags().GetString("current")

		status := pterm.Info.WithWriter(cmd.ErrOrStderr())
		p := &pipeline.ComparePipeline{Config: cfg.Compare, Prior: prior, Current: current}
		res, err := p.Run(cmd.Context(), func(s string) { status.Println(s) })
		if err != nil {
			return err
		}

		if len(res.SkippedSheets) > 0 {
			pterm.Warning.WithWriter(cmd.ErrOrStderr()).Printfln("Sheets skipped for missing columns: %v", res.SkippedSheets)
		}
		if err := render.New(format).Summary(cmd.OutOrStdout(), res.Summary); err != nil {
			return err
		}
		pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("%d domains written to %s (run %s)", len(res.Domains), res.Output, res.ID)
		return nil
	},
}

func init() {
	d := config.Default().Compare
	f := compareCmd.Flags()
	f.StringP("dir", "d", d.Dir, "Directory holding the period workbooks")
	f.String("prior-tag", d.PriorTag, "Tag in the prior workbook's file name")
	f.String("current-tag", d.CurrentTag, "Tag in the current workbook's file name")
	f.StringP("output", "o", d.Output, "Annotated workbook path")
	f.String("prior", "", "Prior workbook path (overrides --prior-tag)")
	f.String("current", "", "Current workbook path (overrides --current-tag)")
	f.StringP("format", "f", string(render.FormatTable), "Console output: table, json or yaml")

	_ = v.BindPFlag("compare.dir", f.Lookup("dir"))
	_ = v.BindPFlag("compare.prior_tag", f.Lookup("prior-tag"))
	_ = v.BindPFlag("compare.current_tag", f.Lookup("current-tag"))
	_ = v.BindPFlag("compare.output", f.Lookup("output"))

	rootCmd.AddCommand(compareCmd)
}
