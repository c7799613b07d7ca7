package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// HUD tracks what the UI collaborator has been told. It is shared by pointer
// so the Bubble Tea model can be copied freely.
type HUD struct {
	Score      int
	Coins      int
	GameOver   bool
	FinalScore int
	FinalCoins int
	BestScore  int
}

func (h *HUD) ScoreChanged(score int) { h.Score = score }

func (h *HUD) CoinsChanged(coins int) { h.Coins = coins }

func (h *HUD) GameOverShown(score, coins int) {
	h.GameOver = true
	h.FinalScore = score
	h.FinalCoins = coins
	h.BestScore = max(h.BestScore, score)
}

func (h *HUD) GameOverHidden() { h.GameOver = false }

// EventLogger reports audio cues and UI notifications to a logger. Used for
// headless runs.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an event logger writing to logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

func (e *EventLogger) Play(cue runner.Cue) {
	e.logger.Debug("sound", "cue", cue)
}

func (e *EventLogger) ScoreChanged(int) {}

func (e *EventLogger) CoinsChanged(coins int) {
	e.logger.Debug("coin collected", "coins", coins)
}

func (e *EventLogger) GameOverShown(score, coins int) {
	e.logger.Info("game over", "score", score, "coins", coins)
}

func (e *EventLogger) GameOverHidden() {
	e.logger.Debug("run resumed")
}

// teeAudio forwards cues to several collaborators.
type teeAudio []runner.Audio

func (t teeAudio) Play(cue runner.Cue) {
	for _, a := range t {
		a.Play(cue)
	}
}

// TeeAudio combines audio collaborators; nil entries are skipped.
func TeeAudio(outs ...runner.Audio) runner.Audio {
	var t teeAudio
	for _, a := range outs {
		if a != nil {
			t = append(t, a)
		}
	}
	if len(t) == 0 {
		return runner.NopAudio{}
	}
	return t
}
