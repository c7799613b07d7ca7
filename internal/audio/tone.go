package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform is the oscillator shape of a tone.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square
)

// Envelope is the gain curve of a tone.
type Envelope int

const (
	// Decay falls exponentially from Gain to a tenth of it.
	Decay Envelope = iota
	// Fade falls linearly from Gain to silence.
	Fade
)

// Tone is one oscillator voice. The frequency slides linearly from From to
// To over Duration; Delay postpones its start.
type Tone struct {
	Wave     Waveform
	From     float64 // Hz
	To       float64 // Hz
	Duration time.Duration
	Delay    time.Duration
	Gain     float64
	Envelope Envelope
}

// Streamer returns the tone as a beep streamer, preceded by its delay. The
// oscillator is shaped by the envelope, then scaled by Gain.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	osc := newOscillator(sr, t)
	voice := withGain(&shaper{streamer: osc, curve: t.Envelope, total: osc.total}, t.Gain)
	if t.Delay <= 0 {
		return voice
	}
	return beep.Seq(beep.Silence(sr.N(t.Delay)), voice)
}

// oscillator synthesises the waveform of a Tone at unit amplitude.
type oscillator struct {
	tone  Tone
	sr    beep.SampleRate
	pos   int
	total int
	phase float64 // In cycles
}

func newOscillator(sr beep.SampleRate, t Tone) *oscillator {
	return &oscillator{tone: t, sr: sr, total: sr.N(t.Duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		progress := float64(o.pos) / float64(o.total)
		freq := o.tone.From + (o.tone.To-o.tone.From)*progress
		o.phase += freq / float64(o.sr)
		o.phase -= math.Floor(o.phase)

		v := oscillate(o.tone.Wave, o.phase)
		samples[i][0] = v
		samples[i][1] = v
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error {
	return nil
}

// at returns the envelope's relative gain at progress in [0, 1].
func (e Envelope) at(progress float64) float64 {
	switch e {
	case Fade:
		return 1 - progress
	default:
		return math.Pow(0.1, progress)
	}
}

// shaper applies an Envelope across the first total samples of a stream.
type shaper struct {
	streamer beep.Streamer
	curve    Envelope
	pos      int
	total    int
}

func (s *shaper) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := s.curve.at(min(float64(s.pos)/float64(max(s.total, 1)), 1))
		samples[i][0] *= vol
		samples[i][1] *= vol
		s.pos++
	}
	return n, ok
}

func (s *shaper) Err() error { return s.streamer.Err() }

// withGain scales a stream linearly. Zero or negative gain is silent.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// oscillate returns the waveform value at phase in [0, 1).
func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	case Sawtooth:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
