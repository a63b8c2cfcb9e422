package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-6

// Up is the world up axis. The floor is the XZ plane.
var Up = mgl32.Vec3{0, 1, 0}

// Ray is a half-line from Origin along Dir. Dir does not have to be normalized,
// but distances returned by the intersection helpers are in units of Dir's length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// FloorPlane returns the horizontal plane at height y facing up.
func FloorPlane(y float32) Plane {
	return Plane{Point: mgl32.Vec3{0, y, 0}, Normal: Up}
}

// IntersectPlane returns where the ray meets the plane. ok is false when the ray is parallel
// to the plane or the plane lies behind the ray origin.
func (r Ray) IntersectPlane(p Plane) (hit mgl32.Vec3, ok bool) {
	denom := p.Normal.Dot(r.Dir)
	if float32(math.Abs(float64(denom))) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectAABB runs the slab test and returns the entry distance of the ray into the box.
// A ray starting inside the box reports t = 0.
func (r Ray) IntersectAABB(b AABB) (t float32, ok bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if float32(math.Abs(float64(r.Dir[i]))) < parallelEpsilon {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
