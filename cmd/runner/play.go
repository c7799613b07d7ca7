package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var (
	flagWatch   bool
	flagMute    bool
	flagDemo    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Left/A, Right/D   - Change lane
  Up/W/Space        - Jump
  Down/S            - Roll
  Mouse drag        - Swipe in any direction
  Enter             - Start
  P/Esc             - Pause
  R                 - Restart (after game over)
  V                 - Watch an ad to revive (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, gentle ramp
  normal - Default speed formula
  hard   - Fast start, steep ramp
  fixed  - No ramp, stays at the base speed

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./my-runner.yaml --watch
  runner play --demo --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change (applies on next run)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "runner")
	if err != nil {
		return err
	}

	// Config warnings go to stderr before the alt screen takes over.
	startup, err := newLogger(os.Stderr, "runner")
	if err != nil {
		return err
	}
	runnerCfg, err := loadConfig(startup)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Runner: runnerCfg,
		Logger: logger,
		Demo:   flagDemo,
	}

	if !flagMute {
		sm := audio.NewSoundManager(logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer sm.Cleanup()
			opts.Audio = sm
		}
	}

	if flagWatch {
		if flagConfig == "" {
			return errors.New("--watch requires --config")
		}
		w, err := config.NewWatcher(flagConfig)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	return tui.Run(cfg, opts)
}
