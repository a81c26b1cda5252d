package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/vascope/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (inputs, outputs, logging)",
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("locate home directory: %w", err)
			}
			path = p
		}

		if err := config.SaveConfig(config.Default(), path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Prints the configuration after defaults, the config file and VASCOPE_* environment variables are applied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		if used := v.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	initConfigCmd.Flags().String("path", "", "Destination file (default ~/.vascope/vascope.yaml)")
	initConfigCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(initConfigCmd)
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
