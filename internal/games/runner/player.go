package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// VerticalState describes the player's vertical motion.
type VerticalState int

const (
	Grounded VerticalState = iota
	Jumping
	Falling
	Flying // Jetpack hover
)

// String returns the name of the state.
func (s VerticalState) String() string {
	switch s {
	case Grounded:
		return "Grounded"
	case Jumping:
		return "Jumping"
	case Falling:
		return "Falling"
	case Flying:
		return "Flying"
	default:
		return "Unknown"
	}
}

const (
	minLane = -1
	maxLane = 1
)

// Player is the runner's avatar: lane position, vertical motion and the
// countdown timers of every timed effect.
type Player struct {
	cfg config.RunnerConfig

	lane     int
	pos      mgl64.Vec3 // Box centre; z stays 0
	vy       float64
	vertical VerticalState

	rollMS       float64
	invincibleMS float64
	jetpackS     float64
	hoverboardS  float64
	magnetS      float64
}

// NewPlayer creates a player standing in the centre lane.
func NewPlayer(cfg config.RunnerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset returns the player to the centre lane on the ground with every
// timer cleared.
func (p *Player) Reset() {
	p.lane = 0
	p.pos = mgl64.Vec3{0, p.cfg.Physics.GroundY, 0}
	p.vy = 0
	p.vertical = Grounded
	p.rollMS = 0
	p.invincibleMS = 0
	p.jetpackS = 0
	p.hoverboardS = 0
	p.magnetS = 0
}

// MoveLeft shifts the target lane one to the left. Returns false at the edge.
func (p *Player) MoveLeft() bool {
	if p.lane <= minLane {
		return false
	}
	p.lane--
	return true
}

// MoveRight shifts the target lane one to the right. Returns false at the edge.
func (p *Player) MoveRight() bool {
	if p.lane >= maxLane {
		return false
	}
	p.lane++
	return true
}

// Jump launches the player when grounded. Returns whether a jump started.
func (p *Player) Jump() bool {
	if p.vertical != Grounded {
		return false
	}
	p.vy = p.cfg.Physics.JumpImpulse
	p.vertical = Jumping
	return true
}

// Roll squashes the player's hitbox for a short time. Grounded only.
func (p *Player) Roll() bool {
	if p.vertical != Grounded {
		return false
	}
	p.rollMS = p.cfg.Player.RollMS
	return true
}

// Advance integrates one tick of dt seconds.
func (p *Player) Advance(dt float64) {
	if !(dt > 0) {
		return
	}

	// Lateral: exponential approach toward the target lane.
	target := float64(p.lane) * p.cfg.Player.LaneWidth
	f := math.Min(1, dt*p.cfg.Player.LateralRate)
	p.pos[0] += (target - p.pos[0]) * f

	switch {
	case p.jetpackS > 0:
		p.vertical = Flying
		p.vy = 0
		h := math.Min(1, dt*p.cfg.PowerUps.HoverRate)
		p.pos[1] += (p.cfg.PowerUps.HoverHeight - p.pos[1]) * h
		p.jetpackS = math.Max(0, p.jetpackS-dt)
		if p.jetpackS == 0 {
			p.vertical = Falling
		}
	case p.vertical != Grounded:
		p.vy += p.cfg.Physics.Gravity * dt
		p.pos[1] += p.vy * dt
		if p.vy < 0 {
			p.vertical = Falling
		}
		if p.pos[1] <= p.cfg.Physics.GroundY {
			p.pos[1] = p.cfg.Physics.GroundY
			p.vy = 0
			p.vertical = Grounded
		}
	}

	ms := dt * 1000
	p.rollMS = math.Max(0, p.rollMS-ms)
	p.invincibleMS = math.Max(0, p.invincibleMS-ms)
	p.hoverboardS = math.Max(0, p.hoverboardS-dt)
	p.magnetS = math.Max(0, p.magnetS-dt)
}

// Box returns the player's bounding box. While rolling the box is half
// height with the feet kept on the same level.
func (p *Player) Box() core.Box3 {
	s := p.cfg.Player.Size
	if p.Rolling() {
		c := mgl64.Vec3{p.pos.X(), p.pos.Y() - s/4, p.pos.Z()}
		return core.BoxAt(c, mgl64.Vec3{s, s / 2, s})
	}
	return core.BoxAt(p.pos, mgl64.Vec3{s, s, s})
}

// CheckCollision reports whether the player hits any obstacle.
//
// Invincibility and the jetpack make the player untouchable. An active
// hoverboard absorbs the first hit: it is consumed, grants a short
// invincibility and the hit is not reported.
func (p *Player) CheckCollision(obstacles []Entity) bool {
	if p.Invincible() || p.JetpackActive() {
		return false
	}
	box := p.Box().Expand(-p.cfg.Player.CollisionShrink)
	for i := range obstacles {
		if !box.Intersects(obstacles[i].Box()) {
			continue
		}
		if p.HoverboardActive() {
			p.hoverboardS = 0
			p.MakeInvincible(p.cfg.PowerUps.ShieldInvincibilityMS)
			return false
		}
		return true
	}
	return false
}

// CheckCoinCollection returns the index of the first coin within reach, or
// -1. With the magnet active reach is a centre distance; otherwise it is an
// overlap of the slightly enlarged player box.
func (p *Player) CheckCoinCollection(coins []Entity) int {
	if p.MagnetActive() {
		r := p.cfg.PowerUps.MagnetPickupRange
		for i := range coins {
			if coins[i].Pos.Sub(p.pos).Len() < r {
				return i
			}
		}
		return -1
	}
	box := p.Box().Expand(p.cfg.Player.CoinReach)
	for i := range coins {
		if box.Intersects(coins[i].Box()) {
			return i
		}
	}
	return -1
}

// CheckPowerUpCollection returns the index of the first overlapping
// power-up, or -1.
func (p *Player) CheckPowerUpCollection(powerUps []Entity) int {
	box := p.Box()
	for i := range powerUps {
		if box.Intersects(powerUps[i].Box()) {
			return i
		}
	}
	return -1
}

// ActivatePowerUp starts or refreshes a timed effect. Non power-up kinds and
// non-positive durations are ignored.
func (p *Player) ActivatePowerUp(kind Kind, seconds float64) {
	if !(seconds > 0) {
		return
	}
	switch kind {
	case KindPowerUpMagnet:
		p.magnetS = seconds
	case KindPowerUpJetpack:
		p.jetpackS = seconds
		p.vertical = Flying
		p.vy = 0
		p.rollMS = 0
	case KindPowerUpHoverboard:
		p.hoverboardS = seconds
	}
}

// MakeInvincible grants invincibility for ms milliseconds. A shorter grant
// never cuts an active one short.
func (p *Player) MakeInvincible(ms float64) {
	if ms > p.invincibleMS {
		p.invincibleMS = ms
	}
}

// Speed returns the forward speed after runTime seconds of simulated play.
func (p *Player) Speed(runTime float64) float64 {
	return p.cfg.Physics.Speed(runTime)
}

// Pulse returns the blink level in [0, 1] while invincible, 1 otherwise.
func (p *Player) Pulse() float64 {
	if p.invincibleMS <= 0 {
		return 1
	}
	return math.Sin(p.invincibleMS/50)*0.5 + 0.5
}

// Lane returns the target lane (-1, 0 or 1).
func (p *Player) Lane() int { return p.lane }

// Position returns the box centre.
func (p *Player) Position() mgl64.Vec3 { return p.pos }

// VerticalVelocity returns the current vertical velocity.
func (p *Player) VerticalVelocity() float64 { return p.vy }

// State returns the vertical state.
func (p *Player) State() VerticalState { return p.vertical }

// Airborne reports whether the player is off the ground.
func (p *Player) Airborne() bool { return p.vertical != Grounded }

func (p *Player) Rolling() bool { return p.rollMS > 0 }
func (p *Player) Invincible() bool { return p.invincibleMS > 0 }
func (p *Player) JetpackActive() bool { return p.jetpackS > 0 }
func (p *Player) HoverboardActive() bool { return p.hoverboardS > 0 }
func (p *Player) MagnetActive() bool { return p.magnetS > 0 }

// Timers returns the remaining time of every effect.
func (p *Player) Timers() Timers {
	return Timers{
		RollMS:       p.rollMS,
		InvincibleMS: p.invincibleMS,
		Jetpack:      p.jetpackS,
		Hoverboard:   p.hoverboardS,
		Magnet:       p.magnetS,
	}
}

// Timers holds remaining effect durations. Effects are in seconds, the
// roll and invincibility in milliseconds.
type Timers struct {
	RollMS       float64 `msgpack:"roll_ms"`
	InvincibleMS float64 `msgpack:"invincible_ms"`
	Jetpack      float64 `msgpack:"jetpack"`
	Hoverboard   float64 `msgpack:"hoverboard"`
	Magnet       float64 `msgpack:"magnet"`
}
