package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/user/vascope/pkg/config"
	"github.com/user/vascope/pkg/pipeline"
	"github.com/user/vascope/pkg/render"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [files...]",
	Short: "Aggregate a batch of scan exports into a risk-ranked CSV report",
	Long: `Loads every export matching --pattern in --input-dir (or the files given as
arguments), removes duplicate findings by name, host and port, keeps the
configured risks and writes one row per finding and host with the total
across hosts.`,
	Example: `  vascope summary --input-dir scans --pattern 'dusit*.csv'
  vascope summary a.csv b.csv --risks Critical,High --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(name)
		if err != nil {
			return err
		}

		status := pterm.Info.WithWriter(cmd.ErrOrStderr())
		p := &pipeline.SummaryPipeline{Config: cfg.Summary, Files: args}
		res, err := p.Run(cmd.Context(), func(s string) { status.Println(s) })
		if err != nil {
			return err
		}

		if err := render.New(format).Report(cmd.OutOrStdout(), res.Rows); err != nil {
			return err
		}
		pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("%d rows written to %s (run %s)", len(res.Rows), res.Output, res.ID)
		return nil
	},
}

func init() {
	d := config.Default().Summary
	f := summaryCmd.Flags()
	f.StringP("input-dir", "d", d.InputDir, "Directory searched for exports")
	f.StringP("pattern", "p", d.Pattern, "Glob matched inside the input directory")
	f.StringP("output", "o", d.Output, "CSV report path")
	f.StringSlice("risks", d.Risks, "Risk values kept in the report (case-sensitive)")
	f.StringP("format", "f", string(render.FormatTable), "Console output: table, json or yaml")

	_ = v.BindPFlag("summary.input_dir", f.Lookup("input-dir"))
	_ = v.BindPFlag("summary.pattern", f.Lookup("pattern"))
	_ = v.BindPFlag("summary.output", f.Lookup("output"))
	_ = v.BindPFlag("summary.risks", f.Lookup("risks"))

	rootCmd.AddCommand(summaryCmd)
}
