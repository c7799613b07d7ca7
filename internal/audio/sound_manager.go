// Package audio plays the runner's sound cues through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

const (
	sampleRate = beep.SampleRate(44100)
	baseGain   = 0.1
)

// Voices returns the tones that make up a cue.
func Voices(c runner.Cue) []Tone {
	switch c {
	case runner.CueJump:
		return []Tone{{Wave: Sine, From: 300, To: 600, Duration: 100 * time.Millisecond, Gain: baseGain, Envelope: Fade}}
	case runner.CueRoll:
		return []Tone{{Wave: Triangle, From: 150, To: 150, Duration: 100 * time.Millisecond, Gain: baseGain}}
	case runner.CueCoin:
		return []Tone{
			{Wave: Sine, From: 1200, To: 1200, Duration: 100 * time.Millisecond, Gain: baseGain},
			{Wave: Sine, From: 1600, To: 1600, Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond, Gain: baseGain},
		}
	case runner.CueCrash:
		return []Tone{
			{Wave: Sawtooth, From: 100, To: 100, Duration: 300 * time.Millisecond, Gain: baseGain},
			{Wave: Square, From: 80, To: 80, Duration: 300 * time.Millisecond, Gain: baseGain},
		}
	case runner.CuePowerUp:
		return []Tone{
			{Wave: Square, From: 400, To: 800, Duration: 150 * time.Millisecond, Gain: baseGain / 2},
			{Wave: Sine, From: 800, To: 1200, Duration: 150 * time.Millisecond, Delay: 100 * time.Millisecond, Gain: baseGain},
		}
	default:
		return nil
	}
}

// SoundManager implements runner.Audio on top of a beep mixer.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	logger      *log.Logger
}

// NewSoundManager creates a sound manager. Nothing is played until
// Initialize succeeds.
func NewSoundManager(logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio ready", "rate", int(sampleRate))
	return nil
}

// Play mixes in the tones of a cue. Silently ignored when uninitialised or
// muted.
func (sm *SoundManager) Play(c runner.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	voices := Voices(c)
	if len(voices) == 0 {
		return
	}
	speaker.Lock()
	for _, v := range voices {
		sm.mixer.Add(v.Streamer(sampleRate))
	}
	speaker.Unlock()
}

// SetMuted toggles output without tearing down the speaker.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Muted reports whether output is muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Cleanup drops every playing sound.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Render synthesises a cue offline into a mono buffer.
func Render(c runner.Cue, sr beep.SampleRate) []float64 {
	voices := Voices(c)
	n := 0
	for _, v := range voices {
		n = max(n, sr.N(v.Delay)+sr.N(v.Duration))
	}

	out := make([]float64, n)
	buf := make([][2]float64, n)
	for _, v := range voices {
		clear(buf)
		s := v.Streamer(sr)
		filled := 0
		for filled < n {
			k, ok := s.Stream(buf[filled:])
			filled += k
			if !ok || k == 0 {
				break
			}
		}
		for i := 0; i < filled; i++ {
			out[i] += buf[i][0]
		}
	}
	return out
}
