package runner

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EntityView is a read-only copy of an entity for renderers.
type EntityView struct {
	ID      uint64  `msgpack:"id"`
	Kind    Kind    `msgpack:"kind"`
	Lane    int     `msgpack:"lane"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Z       float64 `msgpack:"z"`
	W       float64 `msgpack:"w"`
	H       float64 `msgpack:"h"`
	D       float64 `msgpack:"d"`
	Spin    float64 `msgpack:"spin,omitempty"`
	Opacity float64 `msgpack:"opacity"`
}

// PlayerView is a read-only copy of the player state.
type PlayerView struct {
	Lane     int           `msgpack:"lane"`
	X        float64       `msgpack:"x"`
	Y        float64       `msgpack:"y"`
	Z        float64       `msgpack:"z"`
	State    VerticalState `msgpack:"state"`
	Rolling  bool          `msgpack:"rolling"`
	Pulse    float64       `msgpack:"pulse"`
	Timers   Timers        `msgpack:"timers"`
	Height   float64       `msgpack:"height"` // Current hitbox height
	Airborne bool          `msgpack:"airborne"`
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Tick     uint64       `msgpack:"tick"`
	Phase    Phase        `msgpack:"phase"`
	Paused   bool         `msgpack:"paused"`
	Score    int          `msgpack:"score"`
	Coins    int          `msgpack:"coins"`
	Speed    float64      `msgpack:"speed"`
	RunTime  float64      `msgpack:"run_time"`
	Revives  int          `msgpack:"revives"`
	Player   PlayerView   `msgpack:"player"`
	Entities []EntityView `msgpack:"entities"`
}

// Snapshot copies the current run state. Entities are ordered scenery,
// obstacles, power-ups, coins, particles.
func (g *Game) Snapshot() Snapshot {
	p := g.player
	pos := p.Position()
	box := p.Box()
	s := Snapshot{
		Tick:    g.ticks,
		Phase:   g.phase,
		Paused:  g.paused,
		Score:   g.Score(),
		Coins:   g.coins,
		Speed:   g.Speed(),
		RunTime: g.runTime,
		Revives: g.revives,
		Player: PlayerView{
			Lane:     p.Lane(),
			X:        pos.X(),
			Y:        pos.Y(),
			Z:        pos.Z(),
			State:    p.State(),
			Rolling:  p.Rolling(),
			Pulse:    p.Pulse(),
			Timers:   p.Timers(),
			Height:   box.Size().Y(),
			Airborne: p.Airborne(),
		},
	}

	w := g.world
	n := w.scenery.len() + w.obstacles.len() + w.powerUps.len() + w.coins.len() + w.particles.len()
	s.Entities = make([]EntityView, 0, n)
	for _, group := range [][]Entity{w.Scenery(), w.Obstacles(), w.PowerUps(), w.Coins(), w.Particles()} {
		for i := range group {
			s.Entities = append(s.Entities, viewOf(&group[i]))
		}
	}
	return s
}

func viewOf(e *Entity) EntityView {
	return EntityView{
		ID:      e.ID,
		Kind:    e.Kind,
		Lane:    e.Lane,
		X:       e.Pos.X(),
		Y:       e.Pos.Y(),
		Z:       e.Pos.Z(),
		W:       e.Size.X(),
		H:       e.Size.Y(),
		D:       e.Size.Z(),
		Spin:    e.Spin,
		Opacity: e.Opacity(),
	}
}

// FrameWriter streams snapshots as consecutive msgpack values.
type FrameWriter struct {
	enc *msgpack.Encoder
	n   int
}

// NewFrameWriter creates a writer encoding to w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{enc: msgpack.NewEncoder(w)}
}

// Write encodes one snapshot.
func (fw *FrameWriter) Write(s Snapshot) error {
	if err := fw.enc.Encode(&s); err != nil {
		return fmt.Errorf("runner: encode frame %d: %w", fw.n, err)
	}
	fw.n++
	return nil
}

// Frames returns how many snapshots were written.
func (fw *FrameWriter) Frames() int { return fw.n }

// ReadFrames decodes every snapshot in r until end of input.
func ReadFrames(r io.Reader) ([]Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	var frames []Snapshot
	for {
		var s Snapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("runner: decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, s)
	}
}
