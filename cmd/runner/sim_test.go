package main

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() (simResult, []runner.Snapshot) {
		var buf bytes.Buffer
		g := runner.New(config.DefaultRunnerConfig(), runner.WithSeed(99))
		res, err := simulate(g, runner.NewAutopilot(), 1200, 1.0/60, 1, runner.NewFrameWriter(&buf))
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		frames, err := runner.ReadFrames(&buf)
		if err != nil {
			t.Fatalf("ReadFrames: %v", err)
		}
		return res, frames
	}

	a, framesA := run()
	b, framesB := run()
	if a != b {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
	if len(framesA) != len(framesB) || len(framesA) == 0 {
		t.Fatalf("frame counts %d and %d", len(framesA), len(framesB))
	}
	last := framesA[len(framesA)-1]
	if last.Tick != a.Ticks || last.Score != a.Score {
		t.Errorf("last frame tick=%d score=%d, result ticks=%d score=%d", last.Tick, last.Score, a.Ticks, a.Score)
	}
	if a.Ticks == 0 || a.Score <= 0 {
		t.Errorf("run made no progress: %+v", a)
	}
}

func TestSimulateRespectsReviveBudget(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyHard)

	for seed := int64(1); seed <= 5; seed++ {
		g := runner.New(cfg, runner.WithSeed(seed))
		const steps = 60 * 120
		res, err := simulate(g, runner.NewAutopilot(), steps, 1.0/60, 2, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Revives > 2 {
			t.Errorf("seed %d: %d revives, budget 2", seed, res.Revives)
		}
		if res.Crashed && res.Ticks < steps && res.Revives != 2 {
			t.Errorf("seed %d: stopped after a crash with %d revives left", seed, 2-res.Revives)
		}
	}
}

var errDisk = errors.New("disk full")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errDisk }

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestFlushAndCloseReportsErrors(t *testing.T) {
	t.Run("flush error", func(t *testing.T) {
		w := bufio.NewWriter(failWriter{})
		w.WriteString("frame")
		c := &closer{}
		if err := flushAndClose(w, c); !errors.Is(err, errDisk) {
			t.Errorf("err = %v, want %v", err, errDisk)
		}
		if !c.closed {
			t.Error("file left open after a flush error")
		}
	})

	t.Run("close error", func(t *testing.T) {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		w.WriteString("frame")
		if err := flushAndClose(w, &closer{err: errDisk}); !errors.Is(err, errDisk) {
			t.Errorf("err = %v, want %v", err, errDisk)
		}
		if buf.String() != "frame" {
			t.Errorf("flushed %q, want %q", buf.String(), "frame")
		}
	})

	t.Run("buffered frames reach the file", func(t *testing.T) {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		g := runner.New(config.DefaultRunnerConfig(), runner.WithSeed(3))
		res, err := simulate(g, runner.NewAutopilot(), 120, 1.0/60, 0, runner.NewFrameWriter(w))
		if err != nil {
			t.Fatal(err)
		}
		if err := flushAndClose(w, &closer{}); err != nil {
			t.Fatalf("flushAndClose: %v", err)
		}
		frames, err := runner.ReadFrames(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if uint64(len(frames)) != res.Ticks {
			t.Errorf("read %d frames, simulated %d ticks", len(frames), res.Ticks)
		}
	})
}

func TestSimulateHonoursLongSteps(t *testing.T) {
	g := runner.New(config.DefaultRunnerConfig(), runner.WithSeed(5))
	res, err := simulate(g, runner.NewAutopilot(), 10, 0.5, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Crashed {
		t.Fatal("obstacles cannot reach the player within 5 s")
	}
	if res.RunTime < 4.999 || res.RunTime > 5.001 {
		t.Errorf("RunTime = %v, want 5 for 10 steps of 0.5", res.RunTime)
	}
}
