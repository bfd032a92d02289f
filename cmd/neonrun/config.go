package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Print the built-in configuration or the one a play session would use.

Config files are looked up in this order:
  --config PATH
  ~/.neonrun/configs/runner.yaml
  ./configs/runner.yaml
  built-in defaults

A file only needs the keys it changes.

Examples:
  neonrun config default > ~/.neonrun/configs/runner.yaml
  neonrun config show --difficulty hard`,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		//nolint:errcheck // Nothing useful to do if stdout is gone
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved config",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

func init() {
	addConfigFlags(configShowCmd)

	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}
