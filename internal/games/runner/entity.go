// Package runner implements the lane-based endless runner simulation: the
// player state machine, the world generator/recycler, and the per-tick
// orchestration that resolves collisions and pickups and derives the score.
//
// The package is host-agnostic. It never reads the wall clock, draws to a
// terminal or plays sound directly; hosts feed it elapsed time and commands
// and receive notifications through the Audio and UI interfaces.
package runner

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Kind identifies what an entity is.
type Kind int

const (
	KindObstacleLow      Kind = iota // Ground barrier, can be jumped
	KindObstacleTall                 // Tall barrier, must change lanes
	KindObstacleFloating             // Floating block, stay low under it
	KindCoin
	KindPowerUpMagnet
	KindPowerUpJetpack
	KindPowerUpHoverboard
	KindSceneryTree
	KindSceneryHouse
	KindParticle
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacleLow:
		return "ObstacleLow"
	case KindObstacleTall:
		return "ObstacleTall"
	case KindObstacleFloating:
		return "ObstacleFloating"
	case KindCoin:
		return "Coin"
	case KindPowerUpMagnet:
		return "Magnet"
	case KindPowerUpJetpack:
		return "Jetpack"
	case KindPowerUpHoverboard:
		return "Hoverboard"
	case KindSceneryTree:
		return "Tree"
	case KindSceneryHouse:
		return "House"
	case KindParticle:
		return "Particle"
	default:
		return "Unknown"
	}
}

// IsObstacle reports whether the kind ends a run on contact.
func (k Kind) IsObstacle() bool {
	return k >= KindObstacleLow && k <= KindObstacleFloating
}

// IsPowerUp reports whether the kind is a collectible power-up.
func (k Kind) IsPowerUp() bool {
	return k >= KindPowerUpMagnet && k <= KindPowerUpHoverboard
}

// IsScenery reports whether the kind is decorative roadside scenery.
func (k Kind) IsScenery() bool {
	return k == KindSceneryTree || k == KindSceneryHouse
}

// Entity is a spatial record tracked by the World.
// Pos is the box centre; x is the lateral offset, y the height and z the
// depth (the player stands at z = 0 and entities travel toward +z).
type Entity struct {
	ID   uint64
	Kind Kind
	Lane int // -1, 0 or 1 for lane-bound kinds
	Pos  mgl64.Vec3
	Size mgl64.Vec3

	// Floating obstacles bob around BaseY with a per-entity phase.
	Float bool
	BaseY float64
	Phase float64

	Spin float64 // Cosmetic rotation in radians

	// Particles only.
	Velocity mgl64.Vec3
	Life     float64
	MaxLife  float64
}

// Box returns the entity's axis-aligned bounding box.
func (e *Entity) Box() core.Box3 {
	return core.BoxAt(e.Pos, e.Size)
}

// Opacity returns the fade level of a particle in [0, 1]; other kinds are
// fully opaque.
func (e *Entity) Opacity() float64 {
	if e.Kind != KindParticle || e.MaxLife <= 0 {
		return 1
	}
	return core.ClampF(e.Life/e.MaxLife, 0, 1)
}

// Distance returns how far ahead of the player (at z = 0) the entity is.
// Negative once it has passed.
func (e *Entity) Distance() float64 {
	return -e.Pos.Z()
}
