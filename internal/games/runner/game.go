package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Phase is the lifecycle phase of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Game is the orchestrator: it owns the run state, sequences the player and
// the world every tick, resolves collisions and pickups and notifies the
// audio and UI collaborators.
type Game struct {
	cfg     config.RunnerConfig
	pending *config.RunnerConfig // Applied on the next Start
	rng     *rand.Rand
	player  *Player
	world   *World
	audio   Audio
	ui      UI

	queue core.CommandQueue
	clock core.FrameClock

	phase     Phase
	paused    bool
	score     float64
	coins     int
	runTime   float64
	ticks     uint64
	revives   int
	lastScore int // Last whole score reported to the UI
}

// Option configures a Game.
type Option func(*Game)

// WithAudio sets the audio collaborator.
func WithAudio(a Audio) Option {
	return func(g *Game) {
		if a != nil {
			g.audio = a
		}
	}
}

// WithUI sets the UI collaborator.
func WithUI(u UI) Option {
	return func(g *Game) {
		if u != nil {
			g.ui = u
		}
	}
}

// WithSeed seeds the world's random source.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates an idle game. Without WithSeed the world is seeded from the
// wall clock.
func New(cfg config.RunnerConfig, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg,
		audio: NopAudio{},
		ui:    NopUI{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.player = NewPlayer(cfg)
	g.world = NewWorld(cfg, g.rng)
	return g
}

// Reconfigure stages a configuration for the next Start. The current run
// keeps its tuning.
func (g *Game) Reconfigure(cfg config.RunnerConfig) {
	g.pending = &cfg
}

// Start begins a fresh run from any phase.
func (g *Game) Start() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
		g.player.cfg = g.cfg
		g.world.configure(g.cfg)
	}
	g.player.Reset()
	g.world.Reset()
	g.score = 0
	g.coins = 0
	g.runTime = 0
	g.ticks = 0
	g.revives = 0
	g.lastScore = 0
	g.paused = false
	g.queue.Clear()
	g.clock.Reset()
	g.phase = PhaseRunning

	g.ui.GameOverHidden()
	g.ui.ScoreChanged(0)
	g.ui.CoinsChanged(0)
}

// Enqueue buffers a command for the next tick. Commands arriving while the
// run is not live are dropped.
func (g *Game) Enqueue(c core.Command) {
	if g.phase != PhaseRunning || g.paused {
		return
	}
	g.queue.Push(c)
}

// Frame advances the run by the wall time elapsed since the previous frame.
// A stall longer than the configured maximum frame delta is simulated as
// that maximum.
func (g *Game) Frame(now time.Time) {
	if g.phase != PhaseRunning || g.paused {
		g.clock.Reset()
		return
	}
	dt := g.clock.Delta(now)
	if limit := g.cfg.Physics.MaxFrameDelta; limit > 0 && dt > limit {
		dt = limit
	}
	g.Tick(dt)
}

// Tick advances the run by exactly dt seconds. It is a no-op unless running,
// and for non-positive, NaN or infinite dt.
func (g *Game) Tick(dt float64) {
	if g.phase != PhaseRunning || g.paused {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}

	g.applyCommands()

	g.runTime += dt
	speed := g.player.Speed(g.runTime)
	g.world.Advance(dt, speed)
	g.player.Advance(dt)
	g.ticks++

	g.score += dt * g.cfg.Scoring.PointsPerUnit * speed
	if s := int(math.Floor(g.score)); s != g.lastScore {
		g.lastScore = s
		g.ui.ScoreChanged(s)
	}

	g.resolve(dt)
}

func (g *Game) applyCommands() {
	for _, c := range g.queue.Drain() {
		switch c {
		case core.CommandMoveLeft:
			g.player.MoveLeft()
		case core.CommandMoveRight:
			g.player.MoveRight()
		case core.CommandJump:
			if g.player.Jump() {
				g.audio.Play(CueJump)
			}
		case core.CommandRoll:
			if g.player.Roll() {
				g.audio.Play(CueRoll)
			}
		}
	}
}

// resolve applies, in priority order: a fatal collision, one coin pickup,
// one power-up pickup and the magnet pull.
func (g *Game) resolve(dt float64) {
	if g.player.CheckCollision(g.world.Obstacles()) {
		g.GameOver()
		return
	}

	if i := g.player.CheckCoinCollection(g.world.Coins()); i >= 0 {
		pos := g.world.Coins()[i].Pos
		g.world.RemoveCoin(i)
		g.world.EmitCoinBurst(pos)
		g.coins++
		g.audio.Play(CueCoin)
		g.ui.CoinsChanged(g.coins)
	}

	if i := g.player.CheckPowerUpCollection(g.world.PowerUps()); i >= 0 {
		kind := g.world.PowerUps()[i].Kind
		g.world.RemovePowerUp(i)
		g.player.ActivatePowerUp(kind, g.duration(kind))
		g.audio.Play(CuePowerUp)
	}

	if g.player.MagnetActive() {
		pu := g.cfg.PowerUps
		g.world.AttractCoins(g.player.Position(), pu.MagnetRadius, pu.MagnetPullSpeed*dt)
	}
}

func (g *Game) duration(kind Kind) float64 {
	switch kind {
	case KindPowerUpMagnet:
		return g.cfg.PowerUps.MagnetSeconds
	case KindPowerUpJetpack:
		return g.cfg.PowerUps.JetpackSeconds
	case KindPowerUpHoverboard:
		return g.cfg.PowerUps.HoverboardSeconds
	default:
		return 0
	}
}

// GameOver ends a running run and notifies the collaborators.
func (g *Game) GameOver() {
	if g.phase != PhaseRunning {
		return
	}
	g.phase = PhaseGameOver
	g.paused = false
	g.queue.Clear()
	g.audio.Play(CueCrash)
	g.ui.GameOverShown(g.Score(), g.coins)
}

// Revive resumes a finished run: hazards around the player are cleared and a
// short invincibility is granted. It is a no-op outside GameOver, so a
// duplicate reward cannot grant twice.
func (g *Game) Revive() {
	if g.phase != PhaseGameOver {
		return
	}
	g.world.ClearNearbyObstacles(g.player.Position().Z())
	g.player.MakeInvincible(g.cfg.Player.ReviveInvincibilityMS)
	g.queue.Clear()
	g.clock.Reset()
	g.revives++
	g.phase = PhaseRunning
	g.ui.GameOverHidden()
}

// TogglePause suspends or resumes a running run. Resuming discards the wall
// time spent paused.
func (g *Game) TogglePause() {
	if g.phase != PhaseRunning {
		return
	}
	g.paused = !g.paused
	g.queue.Clear()
	g.clock.Reset()
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase { return g.phase }

// Paused reports whether a running run is suspended.
func (g *Game) Paused() bool { return g.paused }

// Score returns the whole score.
func (g *Game) Score() int { return int(math.Floor(g.score)) }

// RawScore returns the unrounded score.
func (g *Game) RawScore() float64 { return g.score }

// Coins returns the coins collected this run.
func (g *Game) Coins() int { return g.coins }

// RunTime returns the simulated seconds of the current run.
func (g *Game) RunTime() float64 { return g.runTime }

// Speed returns the current forward speed.
func (g *Game) Speed() float64 { return g.player.Speed(g.runTime) }

// Ticks returns how many ticks the current run has simulated.
func (g *Game) Ticks() uint64 { return g.ticks }

// Revives returns how many times the current run was revived.
func (g *Game) Revives() int { return g.revives }

// Player returns the player.
func (g *Game) Player() *Player { return g.player }

// World returns the world.
func (g *Game) World() *World { return g.world }

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig { return g.cfg }
