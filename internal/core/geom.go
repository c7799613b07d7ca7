// Package core provides fundamental types and utilities shared by the runner
// simulation and its hosts. It contains no Bubble Tea dependencies to keep the
// game logic pure and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box in world space.
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAt returns the box centred on center with full extents size.
func BoxAt(center, size mgl64.Vec3) Box3 {
	half := size.Mul(0.5)
	return Box3{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects reports whether two boxes overlap. Touching faces count as an
// overlap, matching the forgiving pickup tests built on top of it.
func (b Box3) Intersects(other Box3) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < other.Min[i] || other.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Expand grows the box by d on every side. A negative d shrinks it.
func (b Box3) Expand(d float64) Box3 {
	delta := mgl64.Vec3{d, d, d}
	return Box3{Min: b.Min.Sub(delta), Max: b.Max.Add(delta)}
}

// Center returns the midpoint of the box.
func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the full extents of the box.
func (b Box3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Rect is an integer rectangle in screen cells, used for overlays.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Clamp restricts an int to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Approach moves current toward target by at most step and never overshoots.
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}
