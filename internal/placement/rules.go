// Package placement turns raw floor points into legal item positions.
package placement

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultLimit is the half-width of the reference room: items stay within |x| <= 9 and |z| <= 9.
const DefaultLimit = 9

// Rules snaps candidate positions to a grid and keeps them inside the room.
// Grid <= 0 disables snapping.
type Rules struct {
	Limit float32
	Grid  float32
	Floor float32
}

// Default returns the reference rules: limit 9, unit grid, floor at y = 0.
func Default() Rules {
	return Rules{Limit: DefaultLimit, Grid: 1, Floor: 0}
}

// Resolve snaps x and z to the grid, forces y to the floor, then clamps x and z into [-Limit, Limit].
// Snapping runs first so a snapped value past the wall still lands on the boundary.
func (r Rules) Resolve(raw mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		r.axis(raw.X()),
		r.Floor,
		r.axis(raw.Z()),
	}
}

func (r Rules) axis(v float32) float32 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	if r.Grid > 0 && !math.IsInf(f, 0) {
		g := float64(r.Grid)
		f = math.Round(f/g) * g
	}
	limit := math.Abs(float64(r.Limit))
	f = math.Max(-limit, math.Min(limit, f))
	// +0 instead of -0, so -0.3 snaps to a plain zero.
	return float32(f + 0)
}

// Contains reports whether p already satisfies the bounds (ignoring the grid).
func (r Rules) Contains(p mgl32.Vec3) bool {
	limit := float32(math.Abs(float64(r.Limit)))
	return p.X() >= -limit && p.X() <= limit && p.Z() >= -limit && p.Z() <= limit
}

// QuantizeYaw wraps yaw into [0, 2pi) and snaps it to the nearest multiple of step.
// step <= 0 only wraps.
func QuantizeYaw(yaw, step float32) float32 {
	y := float64(yaw)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0
	}
	if step > 0 {
		s := float64(step)
		y = math.Round(y/s) * s
	}
	y = math.Mod(y, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	// Values within float noise of a full turn fold back to 0.
	if 2*math.Pi-y < 1e-6 {
		y = 0
	}
	return float32(y + 0)
}
