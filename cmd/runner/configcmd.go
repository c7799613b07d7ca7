package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the runner configuration as YAML after applying --config and
--difficulty. The output is a complete file that can be edited and passed
back with --config.

Examples:
  runner config > my-runner.yaml
  runner config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger(os.Stderr, "runner")
		if err != nil {
			return err
		}
		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}
		data, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
