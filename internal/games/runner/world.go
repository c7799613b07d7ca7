package runner

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Motion of spawned entities.
const (
	bobAmplitude = 0.2
	bobRate      = 5.0 // rad/s
	coinSpinRate = 5.0
	itemSpinRate = 2.0
	coinY        = 1.0
)

var (
	sizeLow      = mgl64.Vec3{2, 1, 0.5}
	sizeTall     = mgl64.Vec3{2, 4, 1}
	sizeFloating = mgl64.Vec3{2, 2, 2}
	sizeCoin     = mgl64.Vec3{1, 1, 0.1}
	sizeParticle = mgl64.Vec3{0.2, 0.2, 0.2}
)

// World owns every entity ahead of and around the player. It spawns
// obstacles, coins, power-ups and scenery on countdown timers, moves them
// toward the player at the current speed and culls what has passed.
type World struct {
	cfg       config.RunnerWorld
	laneWidth float64
	baseSpeed float64
	rng       *rand.Rand

	obstacles store
	coins     store
	powerUps  store
	scenery   store
	particles store

	spawnTimer      float64
	spawnInterval   float64
	sceneryTimer    float64
	sceneryInterval float64
	clock           float64 // Drives the floating bob
	nextID          uint64
}

// NewWorld creates an empty world drawing randomness from rng.
func NewWorld(cfg config.RunnerConfig, rng *rand.Rand) *World {
	w := &World{rng: rng}
	w.configure(cfg)
	w.Reset()
	return w
}

func (w *World) configure(cfg config.RunnerConfig) {
	w.cfg = cfg.World
	w.laneWidth = cfg.Player.LaneWidth
	w.baseSpeed = cfg.Physics.BaseSpeed
}

// Reset removes every entity and restarts the spawn timers.
func (w *World) Reset() {
	w.obstacles.clear()
	w.coins.clear()
	w.powerUps.clear()
	w.scenery.clear()
	w.particles.clear()
	w.spawnTimer = 0
	w.spawnInterval = w.cfg.ObstacleInterval
	w.sceneryTimer = 0
	w.sceneryInterval = w.cfg.SceneryInterval
	w.clock = 0
}

// Advance runs the spawn countdowns, moves every entity dt*speed toward the
// player and removes entities beyond their cull threshold.
func (w *World) Advance(dt, speed float64) {
	if !(dt > 0) {
		return
	}
	w.clock += dt

	w.spawnTimer += dt
	if w.spawnTimer > w.spawnInterval {
		w.SpawnObstacle()
		w.spawnTimer = 0
		w.spawnInterval = math.Max(w.cfg.MinObstacleInterval,
			w.cfg.ObstacleInterval-(speed-w.baseSpeed)*w.cfg.IntervalPerSpeed)
	}

	w.sceneryTimer += dt
	if w.sceneryTimer > w.sceneryInterval {
		w.SpawnSideScenery()
		w.sceneryTimer = 0
		if speed > 0 {
			w.sceneryInterval = core.ClampF(w.cfg.SceneryDistance/speed,
				w.cfg.MinSceneryInterval, w.cfg.MaxSceneryInterval)
		}
	}

	step := speed * dt
	cull := func(e *Entity) bool { return e.Pos.Z() <= w.cfg.CullZ }

	w.obstacles.each(func(e *Entity) {
		e.Pos[2] += step
		if e.Float {
			e.Pos[1] = e.BaseY + math.Sin(w.clock*bobRate+e.Phase)*bobAmplitude
		}
	})
	w.obstacles.retain(cull)

	w.coins.each(func(e *Entity) {
		e.Pos[2] += step
		e.Spin += dt * coinSpinRate
	})
	w.coins.retain(cull)

	w.powerUps.each(func(e *Entity) {
		e.Pos[2] += step
		e.Spin += dt * itemSpinRate
	})
	w.powerUps.retain(cull)

	w.scenery.each(func(e *Entity) { e.Pos[2] += step })
	w.scenery.retain(func(e *Entity) bool { return e.Pos.Z() <= w.cfg.SceneryCullZ })

	w.advanceParticles(dt)
}

// SpawnObstacle places a random obstacle in a random lane at the spawn
// distance, occasionally followed by a coin run in another lane. A small
// fraction of spawns produce a power-up instead.
func (w *World) SpawnObstacle() {
	if w.rng.Float64() < w.cfg.PowerUpChance {
		w.SpawnPowerUp()
		return
	}

	lane := w.randomLane()
	kind := KindObstacleFloating
	switch r := w.rng.Float64(); {
	case r < w.cfg.LowChance:
		kind = KindObstacleLow
	case r < w.cfg.LowChance+w.cfg.TallChance:
		kind = KindObstacleTall
	}
	w.Place(kind, lane, w.cfg.SpawnZ)

	if w.rng.Float64() < w.cfg.CoinRunChance {
		w.SpawnCoin(lane)
	}
}

// SpawnPowerUp places a random power-up in a random lane at the spawn
// distance.
func (w *World) SpawnPowerUp() {
	lane := w.randomLane()
	kind := KindPowerUpHoverboard
	switch r := w.rng.Float64(); {
	case r < 1.0/3:
		kind = KindPowerUpMagnet
	case r < 2.0/3:
		kind = KindPowerUpJetpack
	}
	w.Place(kind, lane, w.cfg.SpawnZ)
}

// SpawnCoin places a run of coins in a random lane other than excludedLane.
// Returns the lane used.
func (w *World) SpawnCoin(excludedLane int) int {
	lanes := make([]int, 0, 3)
	for l := minLane; l <= maxLane; l++ {
		if l != excludedLane {
			lanes = append(lanes, l)
		}
	}
	lane := lanes[w.rng.Intn(len(lanes))]

	n := w.cfg.CoinRunMin
	if span := w.cfg.CoinRunMax - w.cfg.CoinRunMin; span > 0 {
		n += w.rng.Intn(span + 1)
	}
	for i := 0; i < n; i++ {
		w.Place(KindCoin, lane, w.cfg.SpawnZ-float64(i)*w.cfg.CoinSpacing)
	}
	return lane
}

// SpawnSideScenery places a tree or a house well outside the lanes on a
// random side of the road.
func (w *World) SpawnSideScenery() {
	side := -1.0
	if w.rng.Float64() > 0.5 {
		side = 1
	}
	x := side * (8 + w.rng.Float64()*15)

	e := Entity{ID: w.newID(), Pos: mgl64.Vec3{x, 0, w.cfg.SpawnZ}}
	if w.rng.Float64() < 0.6 {
		e.Kind = KindSceneryTree
		e.Size = mgl64.Vec3{6, 7, 6}
		e.Pos[1] = 3.5
	} else {
		e.Kind = KindSceneryHouse
		wide := 1 + w.rng.Float64()*0.5
		tall := 1 + w.rng.Float64()
		e.Size = mgl64.Vec3{4 * wide, 4 * tall, 4}
		e.Pos[1] = 2 * tall
	}
	w.scenery.add(e)
}

// Place adds a lane-bound entity of the given kind at depth z and returns a
// copy of it. Scenery and particle kinds are rejected with ok false.
func (w *World) Place(kind Kind, lane int, z float64) (e Entity, ok bool) {
	lane = core.Clamp(lane, minLane, maxLane)
	e = Entity{
		ID:   w.newID(),
		Kind: kind,
		Lane: lane,
	}
	x := float64(lane) * w.laneWidth

	switch kind {
	case KindObstacleLow:
		e.Pos, e.Size = mgl64.Vec3{x, 0.5, z}, sizeLow
	case KindObstacleTall:
		e.Pos, e.Size = mgl64.Vec3{x, 2, z}, sizeTall
	case KindObstacleFloating:
		e.Pos, e.Size = mgl64.Vec3{x, 3, z}, sizeFloating
		e.Float = true
		e.BaseY = 3
		e.Phase = w.rng.Float64() * 2 * math.Pi
	case KindCoin:
		e.Pos, e.Size = mgl64.Vec3{x, coinY, z}, sizeCoin
	case KindPowerUpMagnet:
		e.Pos, e.Size = mgl64.Vec3{x, 1.0, z}, mgl64.Vec3{1.3, 0.8, 0.3}
	case KindPowerUpJetpack:
		e.Pos, e.Size = mgl64.Vec3{x, 1.1, z}, mgl64.Vec3{0.8, 1.2, 0.5}
	case KindPowerUpHoverboard:
		e.Pos, e.Size = mgl64.Vec3{x, 0.6, z}, mgl64.Vec3{1.5, 0.2, 0.8}
	default:
		return Entity{}, false
	}

	switch {
	case kind.IsObstacle():
		w.obstacles.add(e)
	case kind == KindCoin:
		w.coins.add(e)
	default:
		w.powerUps.add(e)
	}
	return e, true
}

// RemoveCoin removes the coin at index i. Stale indices are ignored.
func (w *World) RemoveCoin(i int) bool {
	return w.coins.removeAt(i)
}

// RemovePowerUp removes the power-up at index i. Stale indices are ignored.
func (w *World) RemovePowerUp(i int) bool {
	return w.powerUps.removeAt(i)
}

// RemoveByID removes the lane-bound entity with the given ID from whichever
// collection holds it.
func (w *World) RemoveByID(id uint64) bool {
	for _, s := range []*store{&w.obstacles, &w.coins, &w.powerUps} {
		if i := s.indexOf(id); i >= 0 {
			return s.removeAt(i)
		}
	}
	return false
}

// ClearNearbyObstacles removes obstacles and power-ups strictly within the
// clear radius of playerZ along the depth axis. Returns how many were
// removed.
func (w *World) ClearNearbyObstacles(playerZ float64) int {
	r := w.cfg.ClearRadius
	far := func(e *Entity) bool {
		z := e.Pos.Z()
		return !(z > playerZ-r && z < playerZ+r)
	}
	return w.obstacles.retain(far) + w.powerUps.retain(far)
}

// AttractCoins moves every coin within radius of target up to step units
// toward it without overshooting.
func (w *World) AttractCoins(target mgl64.Vec3, radius, step float64) {
	if !(step > 0) {
		return
	}
	w.coins.each(func(e *Entity) {
		d := target.Sub(e.Pos)
		dist := d.Len()
		if dist <= 0 || dist >= radius {
			return
		}
		if step >= dist {
			e.Pos = target
			return
		}
		e.Pos = e.Pos.Add(d.Mul(step / dist))
	})
}

// Obstacles returns the live obstacles. The slice is only valid until the
// next mutating call.
func (w *World) Obstacles() []Entity { return w.obstacles.view() }

// Coins returns the live coins.
func (w *World) Coins() []Entity { return w.coins.view() }

// PowerUps returns the live power-ups.
func (w *World) PowerUps() []Entity { return w.powerUps.view() }

// Scenery returns the live scenery.
func (w *World) Scenery() []Entity { return w.scenery.view() }

// Particles returns the live particles.
func (w *World) Particles() []Entity { return w.particles.view() }

// Intervals returns the current obstacle and scenery spawn intervals.
func (w *World) Intervals() (obstacle, scenery float64) {
	return w.spawnInterval, w.sceneryInterval
}

func (w *World) randomLane() int {
	return w.rng.Intn(maxLane-minLane+1) + minLane
}

func (w *World) newID() uint64 {
	w.nextID++
	return w.nextID
}
