package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// AdDuration is how long the simulated rewarded ad plays before the revive.
const AdDuration = 3 * time.Second

// Options configure a Model.
type Options struct {
	Runner  config.RunnerConfig
	Audio   runner.Audio    // Nil plays nothing
	Watcher *config.Watcher // Nil disables hot reload
	Logger  *log.Logger
	Demo    bool // Let the autopilot play
}

// Model is the Bubble Tea model for a single runner session.
type Model struct {
	game      *runner.Game
	hud       *HUD
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	config    core.RuntimeConfig
	watcher   *config.Watcher
	logger    *log.Logger
	autopilot *runner.Autopilot
	swipe     *swipeTracker
	adUntil   time.Time // Zero when no ad is playing
	now       time.Time
	quitting  bool
}

// NewModel creates a new model. The run starts idle.
func NewModel(cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	hud := &HUD{}
	game := runner.New(opts.Runner,
		runner.WithSeed(cfg.Seed),
		runner.WithAudio(opts.Audio),
		runner.WithUI(hud),
	)

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:    game,
		hud:     hud,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		keys:    DefaultKeyMap(),
		help:    h,
		config:  cfg,
		watcher: opts.Watcher,
		logger:  logger,
		swipe:   &swipeTracker{},
	}
	if opts.Demo {
		m.autopilot = runner.NewAutopilot()
		game.Start()
	}
	return m
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if c, ok := m.swipe.observe(msg); ok && !m.adPlaying() {
			m.game.Enqueue(c)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case configMsg:
		m.game.Reconfigure(config.RunnerConfig(msg))
		m.logger.Info("config reloaded, applies on next run", "path", m.watcher.Path())
		return m, watchCmd(m.watcher)

	case configErrMsg:
		m.logger.Warn("config reload failed", "error", msg.err)
		return m, watchCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case m.adPlaying():
		return m, nil
	}

	switch m.game.Phase() {
	case runner.PhaseIdle:
		if key.Matches(msg, k.Start) {
			m.game.Start()
		}
	case runner.PhaseGameOver:
		switch {
		case key.Matches(msg, k.Restart), key.Matches(msg, k.Start):
			m.game.Start()
		case key.Matches(msg, k.Revive):
			m.adUntil = m.now.Add(AdDuration)
		}
	case runner.PhaseRunning:
		if key.Matches(msg, k.Pause) {
			m.game.TogglePause()
			return m, nil
		}
		if c, ok := k.Command(msg); ok {
			m.game.Enqueue(c)
		}
	}
	return m, nil
}

// handleTick advances the ad countdown or the run.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now

	if m.adPlaying() {
		if !now.Before(m.adUntil) {
			m.adUntil = time.Time{}
			m.game.Revive()
		}
		return m, tickCmd(m.config.TickRate)
	}

	if m.autopilot != nil {
		switch m.game.Phase() {
		case runner.PhaseRunning:
			for _, c := range m.autopilot.Decide(m.game.Snapshot()) {
				m.game.Enqueue(c)
			}
		case runner.PhaseGameOver:
			m.game.Start()
		}
	}

	m.game.Frame(now)
	return m, tickCmd(m.config.TickRate)
}

func (m Model) adPlaying() bool {
	return !m.adUntil.IsZero()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.adPlaying() {
		m.drawAd()
	} else if m.hud.BestScore > 0 && m.game.Phase() == runner.PhaseGameOver {
		best := fmt.Sprintf(" Best: %d ", m.hud.BestScore)
		m.screen.DrawTextCentered(m.screen.Height()/2+3, best)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// drawAd draws the simulated ad overlay.
func (m Model) drawAd() {
	left := math.Ceil(m.adUntil.Sub(m.now).Seconds())
	title := "Simulated Ad"
	sub := fmt.Sprintf("Reward in %.0f...", math.Max(left, 0))

	w := max(len(title), len(sub)) + 6
	h := 5
	r := core.NewRect((m.screen.Width()-w)/2, (m.screen.Height()-h)/2, w, h)
	m.screen.DrawRect(r, ' ')
	m.screen.DrawBox(r)
	m.screen.DrawTextColored(r.X+(w-len(title))/2, r.Y+1, title, core.ColorBrightYellow)
	m.screen.DrawText(r.X+(w-len(sub))/2, r.Y+3, sub)
}

// Game exposes the running game.
func (m Model) Game() *runner.Game { return m.game }

// HUD exposes the UI collaborator state.
func (m Model) HUD() *HUD { return m.hud }

// Run starts the Bubble Tea program with a new model.
func Run(cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
