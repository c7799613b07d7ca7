package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

var (
	flagFramesEvery int
	flagFramesShow  int
)

var framesCmd = &cobra.Command{
	Use:   "frames <file>",
	Short: "Summarise a recorded frame file",
	Long: `Read a snapshot stream written by 'runner sim --frames' and print a
line per sampled frame. --show draws one frame as text.

Examples:
  runner frames run.mp
  runner frames run.mp --every 30
  runner frames run.mp --show 600`,
	Args: cobra.ExactArgs(1),
	RunE: runFrames,
}

func init() {
	framesCmd.Flags().IntVar(&flagFramesEvery, "every", 60, "Print every Nth frame")
	framesCmd.Flags().IntVar(&flagFramesShow, "show", -1, "Draw this frame index instead of the summary")
}

func runFrames(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	frames, err := runner.ReadFrames(f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if flagFramesShow >= 0 {
		if flagFramesShow >= len(frames) {
			return fmt.Errorf("frame %d out of range (file has %d)", flagFramesShow, len(frames))
		}
		screen := core.NewScreen(80, 24)
		runner.DrawSnapshot(screen, frames[flagFramesShow])
		fmt.Fprintln(out, screen.String())
		return nil
	}

	every := max(flagFramesEvery, 1)
	for i, s := range frames {
		if i%every != 0 && i != len(frames)-1 {
			continue
		}
		fmt.Fprintf(out, "%6d  t=%7.2fs  lane=%+d  score=%6d  coins=%4d  speed=%5.2f  entities=%3d  %s\n",
			s.Tick, s.RunTime, s.Player.Lane, s.Score, s.Coins, s.Speed, len(s.Entities), s.Phase)
	}
	fmt.Fprintf(out, "%d frames\n", len(frames))
	return nil
}
