// runner is a lane-based endless runner for the terminal.
//
// Usage:
//
//	runner play             - Play in this terminal
//	runner serve            - Start SSH server for remote play
//	runner sim              - Run a headless autopilot simulation
//	runner frames <file>    - Summarise a recorded frame file
//	runner config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless runner in your terminal",
	Long: `Runner is a three-lane endless runner. Dodge barriers, collect coins
and grab power-ups while the world speeds up.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless autopilot simulation
  frames   - Summarise a recorded frame file
  config   - Print the effective configuration

Examples:
  runner play
  runner play --difficulty hard
  runner serve --ssh :2222
  runner sim --duration 120 --frames run.mp`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(framesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig resolves the runner config from --config and --difficulty.
// Layers that exist but cannot be used are reported as warnings.
func loadConfig(logger *log.Logger) (config.RunnerConfig, error) {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	l, err := config.Load(flagConfig)
	if err != nil {
		return l.Config, err
	}
	for _, skipped := range l.Skipped {
		logger.Warn("ignoring config", "error", skipped)
	}
	logger.Debug("config loaded", "source", l.Source, "difficulty", preset)

	cfg := l.Config
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, nil
}
