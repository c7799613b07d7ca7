package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func TestSnapshotCopiesState(t *testing.T) {
	g, _, _ := newTestGame(3)
	g.Start()
	g.Enqueue(core.CommandMoveRight)
	g.Tick(frame)
	coin, _ := g.World().Place(KindCoin, -1, -40)
	g.Player().ActivatePowerUp(KindPowerUpMagnet, 4)

	s := g.Snapshot()

	if s.Phase != PhaseRunning || s.Tick != 1 {
		t.Errorf("Phase/Tick = %v/%d, want Running/1", s.Phase, s.Tick)
	}
	if s.Player.Lane != 1 {
		t.Errorf("Player.Lane = %d, want 1", s.Player.Lane)
	}
	if s.Player.Timers.Magnet != 4 {
		t.Errorf("magnet timer = %v, want 4", s.Player.Timers.Magnet)
	}
	if s.Player.Height != 1 {
		t.Errorf("Player.Height = %v, want 1", s.Player.Height)
	}

	found := false
	for _, e := range s.Entities {
		if e.ID == coin.ID {
			found = true
			if e.Kind != KindCoin || e.Lane != -1 || e.Z != -40 || e.Opacity != 1 {
				t.Errorf("coin view = %+v", e)
			}
		}
	}
	if !found {
		t.Fatal("placed coin missing from snapshot")
	}

	// Mutating the snapshot must not reach the world.
	s.Entities[0].Z = 999
	for _, e := range g.World().Coins() {
		if e.Pos.Z() == 999 {
			t.Error("snapshot shares memory with the world")
		}
	}
}

func TestFrameStream(t *testing.T) {
	g, _, _ := newTestGame(4)
	g.Start()

	var buf bytes.Buffer
	fw := NewFrameWriter(&buf)
	var written []Snapshot
	for i := 0; i < 3; i++ {
		for j := 0; j < 40; j++ {
			g.Tick(frame)
		}
		s := g.Snapshot()
		written = append(written, s)
		if err := fw.Write(s); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if fw.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", fw.Frames())
	}

	frames, err := ReadFrames(&buf)
	if err != nil {
		t.Fatalf("ReadFrames: %v", err)
	}
	if len(frames) != len(written) {
		t.Fatalf("read %d frames, want %d", len(frames), len(written))
	}
	for i := range frames {
		if frames[i].Tick != written[i].Tick || frames[i].Score != written[i].Score ||
			len(frames[i].Entities) != len(written[i].Entities) {
			t.Errorf("frame %d = tick %d score %d, want tick %d score %d",
				i, frames[i].Tick, frames[i].Score, written[i].Tick, written[i].Score)
		}
	}
}

func TestReadFramesRejectsGarbage(t *testing.T) {
	if _, err := ReadFrames(strings.NewReader("\xc1\xc1\xc1")); err == nil {
		t.Error("ReadFrames accepted garbage")
	}
	frames, err := ReadFrames(bytes.NewReader(nil))
	if err != nil || len(frames) != 0 {
		t.Errorf("empty stream = %d frames, %v", len(frames), err)
	}
}

func TestRenderDrawsScene(t *testing.T) {
	g, _, _ := newTestGame(5)
	dst := core.NewScreen(60, 30)

	g.Render(dst)
	if !strings.Contains(dst.String(), "Press Enter to start") {
		t.Error("idle screen missing start prompt")
	}

	g.Start()
	g.World().Place(KindObstacleTall, -1, -30)
	g.World().Place(KindCoin, 1, -20)
	g.Render(dst)
	out := dst.String()

	for _, r := range []rune{GlyphPlayer, GlyphTall, GlyphCoin, GlyphRoadEdge} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("frame missing %q", r)
		}
	}
	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}

	g.TogglePause()
	g.Render(dst)
	if !strings.Contains(dst.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
	g.TogglePause()

	g.World().Place(KindObstacleTall, 0, 0)
	g.Tick(frame)
	g.Render(dst)
	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}
