package runner

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

type recAudio struct {
	cues []Cue
}

func (a *recAudio) Play(c Cue) { a.cues = append(a.cues, c) }

func (a *recAudio) count(c Cue) int {
	n := 0
	for _, x := range a.cues {
		if x == c {
			n++
		}
	}
	return n
}

type recUI struct {
	scores []int
	coins  []int
	shown  [][2]int
	hidden int
}

func (u *recUI) ScoreChanged(s int) { u.scores = append(u.scores, s) }
func (u *recUI) CoinsChanged(c int) { u.coins = append(u.coins, c) }
func (u *recUI) GameOverShown(s, c int) { u.shown = append(u.shown, [2]int{s, c}) }
func (u *recUI) GameOverHidden() { u.hidden++ }

func newTestGame(seed int64) (*Game, *recAudio, *recUI) {
	a := &recAudio{}
	u := &recUI{}
	g := New(config.DefaultRunnerConfig(), WithSeed(seed), WithAudio(a), WithUI(u))
	return g, a, u
}

func TestIdleGameIgnoresEverything(t *testing.T) {
	g, a, u := newTestGame(1)

	g.Tick(frame)
	g.Enqueue(core.CommandJump)
	g.Revive()
	g.GameOver()
	g.TogglePause()

	if g.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want Idle", g.Phase())
	}
	if g.Ticks() != 0 || g.RawScore() != 0 {
		t.Error("idle game advanced")
	}
	if len(a.cues) != 0 || len(u.shown) != 0 || u.hidden != 0 {
		t.Error("idle game notified collaborators")
	}
}

// Scenario A: a clean run accrues score and keeps running.
func TestRunAccruesScore(t *testing.T) {
	g, _, u := newTestGame(1)
	g.Start()

	expected := 0.0
	runTime := 0.0
	for i := 0; i < 90; i++ {
		g.Tick(frame)
		runTime += frame
		expected += frame * 10 * (10 + runTime/5)
	}

	if g.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, want Running", g.Phase())
	}
	if math.Abs(g.RawScore()-expected) > 1e-9 {
		t.Errorf("score = %v, want %v", g.RawScore(), expected)
	}
	if g.Score() <= 0 {
		t.Error("score did not increase")
	}
	for i := 1; i < len(u.scores); i++ {
		if u.scores[i] < u.scores[i-1] {
			t.Fatalf("score notifications went backwards: %v", u.scores)
		}
	}
	if last := u.scores[len(u.scores)-1]; last != g.Score() {
		t.Errorf("last reported score = %d, want %d", last, g.Score())
	}
}

// Scenario B: an obstacle on the player ends the run and freezes it.
func TestCollisionEndsRun(t *testing.T) {
	g, a, u := newTestGame(1)
	g.Start()
	g.Tick(frame)
	g.World().Place(KindObstacleTall, 0, 0)

	g.Tick(frame)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("Phase = %v, want GameOver", g.Phase())
	}
	if a.count(CueCrash) != 1 {
		t.Errorf("crash cues = %d, want 1", a.count(CueCrash))
	}
	if len(u.shown) != 1 || u.shown[0] != [2]int{g.Score(), 0} {
		t.Errorf("game over notifications = %v", u.shown)
	}

	score, runTime, ticks := g.RawScore(), g.RunTime(), g.Ticks()
	g.Enqueue(core.CommandMoveLeft)
	for i := 0; i < 30; i++ {
		g.Tick(frame)
	}
	if g.RawScore() != score || g.RunTime() != runTime || g.Ticks() != ticks {
		t.Error("ticks after game over changed the run")
	}
	if g.Player().Lane() != 0 {
		t.Error("command accepted after game over")
	}

	g.GameOver()
	if a.count(CueCrash) != 1 {
		t.Error("second GameOver notified again")
	}
}

// Scenario C: the magnet pulls a distant coin in until it is collected.
func TestMagnetPullsCoin(t *testing.T) {
	g, a, _ := newTestGame(1)
	g.Start()
	g.Player().ActivatePowerUp(KindPowerUpMagnet, 10)
	coin, _ := g.World().Place(KindCoin, 1, -10)

	dist := func() (float64, bool) {
		i := g.World().coins.indexOf(coin.ID)
		if i < 0 {
			return 0, false
		}
		return g.World().Coins()[i].Pos.Sub(g.Player().Position()).Len(), true
	}

	prev, _ := dist()
	if prev <= 2 || prev >= 15 {
		t.Fatalf("coin starts %v away, want between pickup range and magnet radius", prev)
	}

	collected := false
	for i := 0; i < 120; i++ {
		g.Tick(frame)
		d, ok := dist()
		if !ok {
			collected = true
			break
		}
		if d >= prev {
			t.Fatalf("tick %d: distance %v did not decrease from %v", i, d, prev)
		}
		prev = d
	}

	if !collected {
		t.Fatal("coin was never collected")
	}
	if g.Coins() != 1 || a.count(CueCoin) != 1 {
		t.Errorf("coins = %d, coin cues = %d; want 1, 1", g.Coins(), a.count(CueCoin))
	}
}

// Scenario D: revive clears hazards strictly inside the window.
func TestReviveClearsNearbyHazards(t *testing.T) {
	g, _, u := newTestGame(1)
	g.Start()
	g.World().Place(KindObstacleTall, 0, 0)
	g.Tick(frame)
	if g.Phase() != PhaseGameOver {
		t.Fatal("setup: expected a crash")
	}

	w := g.World()
	w.obstacles.clear()
	w.powerUps.clear()
	edgeFar, _ := w.Place(KindObstacleTall, 0, -20)
	edgeNear, _ := w.Place(KindObstacleTall, 0, 20)
	w.Place(KindObstacleTall, 0, -19.99)
	w.Place(KindObstacleLow, 0, 0)
	w.Place(KindPowerUpHoverboard, 1, 10)

	g.Revive()

	if g.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, want Running", g.Phase())
	}
	if !g.Player().Invincible() {
		t.Error("revive should grant invincibility")
	}
	if got := g.Player().Timers().InvincibleMS; got != 2000 {
		t.Errorf("InvincibleMS = %v, want 2000", got)
	}
	got := ids(w.Obstacles())
	if len(got) != 2 || got[0] != edgeFar.ID || got[1] != edgeNear.ID {
		t.Errorf("obstacles after revive = %v, want only those exactly 20 units away", got)
	}
	if len(w.PowerUps()) != 0 {
		t.Error("power-up inside the window survived revive")
	}
	if u.hidden != 2 {
		t.Errorf("GameOverHidden calls = %d, want 2 (start and revive)", u.hidden)
	}
	if g.Revives() != 1 {
		t.Errorf("Revives = %d, want 1", g.Revives())
	}

	g.Tick(frame)
	if g.Phase() != PhaseRunning {
		t.Error("revived player crashed immediately")
	}
}

func TestReviveWhileRunningIsNoop(t *testing.T) {
	g, _, u := newTestGame(1)
	g.Start()
	g.World().Place(KindObstacleTall, 1, -15)

	g.Revive()
	g.Revive()

	if g.Player().Invincible() {
		t.Error("revive while running granted invincibility")
	}
	if len(g.World().Obstacles()) != 1 {
		t.Error("revive while running cleared obstacles")
	}
	if g.Revives() != 0 || u.hidden != 1 {
		t.Error("revive while running was counted")
	}
}

func TestTickIgnoresBadDelta(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	g.Tick(0.1)
	score, runTime := g.RawScore(), g.RunTime()

	for _, dt := range []float64{0, -1, -0.016, math.NaN(), math.Inf(-1), math.Inf(1)} {
		g.Tick(dt)
	}
	if g.RawScore() != score || g.RunTime() != runTime || g.Ticks() != 1 {
		t.Error("invalid delta advanced the run")
	}
}

func TestTickHonoursLongDelta(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	g.Tick(0.5)

	if got := g.RunTime(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("RunTime = %v, want 0.5", got)
	}
	// 0.5 s at speed(0.5) = 10 + 0.5/5, 10 points per unit.
	if got := g.RawScore(); math.Abs(got-50.5) > 1e-9 {
		t.Errorf("RawScore = %v, want 50.5", got)
	}

	// Score accrues as the sum of dt * 10 * speed(runTime) per tick.
	want := g.RawScore()
	for _, dt := range []float64{0.5, 0.3, 1.2} {
		g.Tick(dt)
		want += dt * 10 * g.Speed()
	}
	if got := g.RawScore(); math.Abs(got-want) > 1e-9 {
		t.Errorf("RawScore = %v, want %v", got, want)
	}
}

func TestFrameClampsWallClockStall(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	t0 := time.Unix(1000, 0)

	g.Frame(t0)
	if g.Ticks() != 0 {
		t.Fatal("first frame after start should not tick")
	}
	g.Frame(t0.Add(5 * time.Second))
	if got := g.RunTime(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("stalled frame advanced %v, want clamp to 0.25", got)
	}
}

func TestCommandsDrainOncePerTick(t *testing.T) {
	g, a, _ := newTestGame(1)
	g.Start()

	g.Enqueue(core.CommandMoveLeft)
	g.Enqueue(core.CommandJump)
	g.Enqueue(core.CommandJump)
	g.Enqueue(core.CommandNone)
	if g.Player().Lane() != 0 {
		t.Fatal("commands applied before the tick")
	}

	g.Tick(frame)

	if g.Player().Lane() != -1 {
		t.Errorf("Lane = %d, want -1", g.Player().Lane())
	}
	if g.Player().State() != Jumping {
		t.Errorf("State = %v, want Jumping", g.Player().State())
	}
	if a.count(CueJump) != 1 {
		t.Errorf("jump cues = %d, want 1", a.count(CueJump))
	}

	g.Enqueue(core.CommandRoll)
	g.Tick(frame)
	if a.count(CueRoll) != 0 || g.Player().Rolling() {
		t.Error("roll accepted in the air")
	}
}

func TestCoinPickupOnePerTick(t *testing.T) {
	g, a, u := newTestGame(1)
	g.Start()
	g.World().Place(KindCoin, 0, 0)
	g.World().Place(KindCoin, 0, 0.05)

	g.Tick(frame)
	if g.Coins() != 1 {
		t.Fatalf("coins after first tick = %d, want 1", g.Coins())
	}
	if got := len(g.World().Particles()); got != 5 {
		t.Errorf("particles = %d, want a burst of 5", got)
	}

	g.Tick(frame)
	if g.Coins() != 2 {
		t.Errorf("coins after second tick = %d, want 2", g.Coins())
	}
	if a.count(CueCoin) != 2 {
		t.Errorf("coin cues = %d, want 2", a.count(CueCoin))
	}
	if len(u.coins) != 3 || u.coins[1] != 1 || u.coins[2] != 2 {
		t.Errorf("coin notifications = %v, want [0 1 2]", u.coins)
	}
}

func TestPowerUpPickupActivates(t *testing.T) {
	g, a, _ := newTestGame(1)
	g.Start()
	g.World().Place(KindPowerUpJetpack, 0, 0)

	g.Tick(frame)

	if !g.Player().JetpackActive() {
		t.Error("jetpack not activated")
	}
	if got := g.Player().Timers().Jetpack; got != 6 {
		t.Errorf("jetpack timer = %v, want 6", got)
	}
	if len(g.World().PowerUps()) != 0 {
		t.Error("collected power-up still in the world")
	}
	if a.count(CuePowerUp) != 1 {
		t.Errorf("power-up cues = %d, want 1", a.count(CuePowerUp))
	}
}

func TestPauseSuspendsTicks(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	g.Tick(frame)

	g.TogglePause()
	if !g.Paused() {
		t.Fatal("TogglePause did not pause")
	}
	ticks := g.Ticks()
	g.Enqueue(core.CommandMoveRight)
	g.Tick(frame)
	if g.Ticks() != ticks {
		t.Error("paused game ticked")
	}

	g.TogglePause()
	g.Tick(frame)
	if g.Ticks() != ticks+1 {
		t.Error("resumed game did not tick")
	}
	if g.Player().Lane() != 0 {
		t.Error("command queued during pause was applied")
	}
}

func TestFrameDiscardsPausedTime(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	t0 := time.Unix(1000, 0)
	step := 16 * time.Millisecond

	g.Frame(t0)
	g.Frame(t0.Add(step))
	g.TogglePause()
	g.Frame(t0.Add(10 * time.Second))
	g.TogglePause()
	g.Frame(t0.Add(10*time.Second + step))
	g.Frame(t0.Add(10*time.Second + 2*step))

	if got := g.RunTime(); got > 0.05 {
		t.Errorf("RunTime = %v, paused wall time leaked into the run", got)
	}
	if g.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", g.Ticks())
	}
}

func TestStartResetsRun(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()
	for i := 0; i < 200; i++ {
		g.Tick(frame)
	}
	g.World().Place(KindObstacleTall, 0, 0)
	g.Tick(frame)

	g.Start()

	if g.Phase() != PhaseRunning || g.RawScore() != 0 || g.Coins() != 0 || g.RunTime() != 0 {
		t.Error("Start did not reset the run state")
	}
	w := g.World()
	if n := len(w.Obstacles()) + len(w.Coins()) + len(w.PowerUps()) + len(w.Scenery()); n != 0 {
		t.Errorf("Start left %d entities", n)
	}
	if g.Speed() != 10 {
		t.Errorf("Speed = %v, want base 10", g.Speed())
	}
}

func TestReconfigureAppliesOnStart(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Start()

	cfg := config.DefaultRunnerConfig()
	cfg.Physics.BaseSpeed = 20
	g.Reconfigure(cfg)
	if g.Speed() != 10 {
		t.Error("reconfigure changed the running run")
	}

	g.Start()
	if g.Speed() != 20 {
		t.Errorf("Speed after restart = %v, want 20", g.Speed())
	}
}

func TestDeterminism(t *testing.T) {
	g1, _, _ := newTestGame(7)
	g2, _, _ := newTestGame(7)
	g1.Start()
	g2.Start()

	for i := 0; i < 600; i++ {
		if i%45 == 0 {
			g1.Enqueue(core.CommandJump)
			g2.Enqueue(core.CommandJump)
		}
		g1.Tick(frame)
		g2.Tick(frame)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Phase != s2.Phase {
		t.Fatalf("runs diverged: %+v vs %+v", s1.Tick, s2.Tick)
	}
	if len(s1.Entities) != len(s2.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(s1.Entities), len(s2.Entities))
	}
	for i := range s1.Entities {
		if s1.Entities[i] != s2.Entities[i] {
			t.Fatalf("entity %d differs: %+v vs %+v", i, s1.Entities[i], s2.Entities[i])
		}
	}
}
