package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/user/vascope/pkg/config"
	"github.com/user/vascope/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vascope",
	Short: "Vulnerability scan export reporter",
	Long: `vascope turns vulnerability scan exports into reports.

  summary   deduplicated, risk-ranked counts across a batch of CSV exports
  compare   marks every finding of this period's workbook New or Existing
            against the previous period and adds a RecurrenceSummary tab`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

var (
	DebugMode bool
	cfgFile   string

	// v collects defaults, the config file, VASCOPE_* variables and flags
	v   = config.New()
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./vascope.yaml or ~/.vascope/vascope.yaml)")
}

func initConfig() error {
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	logger.DebugEnabled = DebugMode
	if _, err := logger.Init(c.Log); err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugf("Using config file %s", used)
	}
	cfg = c
	return nil
}
