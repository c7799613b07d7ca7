package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// KeyMap defines the key bindings for a run.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Roll    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Revive  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Roll, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Roll},
		{k.Start, k.Pause, k.Restart, k.Revive, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		Roll: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "roll"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Revive: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "watch ad to revive"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command translates a key press into a player command.
func (k KeyMap) Command(msg tea.KeyMsg) (core.Command, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.CommandMoveLeft, true
	case key.Matches(msg, k.Right):
		return core.CommandMoveRight, true
	case key.Matches(msg, k.Jump):
		return core.CommandJump, true
	case key.Matches(msg, k.Roll):
		return core.CommandRoll, true
	}
	return core.CommandNone, false
}

// Terminal cells are roughly twice as tall as they are wide; a drag is
// converted to pixels with these factors before swipe classification.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// swipeTracker turns a mouse drag into a swipe gesture.
type swipeTracker struct {
	active bool
	x, y   int
}

// observe feeds a mouse event and returns a command when a drag completes.
func (s *swipeTracker) observe(msg tea.MouseMsg) (core.Command, bool) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return core.CommandNone, false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		s.active = true
		s.x, s.y = msg.X, msg.Y
	case tea.MouseActionRelease:
		if !s.active {
			return core.CommandNone, false
		}
		s.active = false
		dx := float64(msg.X-s.x) * cellWidthPx
		dy := float64(msg.Y-s.y) * cellHeightPx
		return core.ClassifySwipe(dx, dy)
	}
	return core.CommandNone, false
}
