package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forceConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to --config",
	Long: `Writes the configuration currently in effect (defaults, then the
existing file, environment and flags) to the path given by --config.
An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(configPath, forceConfig); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Encode(cmd.OutOrStdout())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceConfig, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
