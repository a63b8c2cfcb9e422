package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box. Min holds the smallest coordinate on every axis, Max the largest.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB returns the box spanned by two opposite corners, in any order.
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// BoxFromCenter returns the box centered on center with the given full size.
// A zero size component is treated as 1 so degenerate items still occupy a cell.
func BoxFromCenter(center, size mgl32.Vec3) AABB {
	half := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		s := size[i]
		if s == 0 {
			s = 1
		}
		half[i] = s * 0.5
	}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Size returns the extent of the box on each axis.
func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Translate returns the box moved by d.
func (a AABB) Translate(d mgl32.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// RotateY returns the bounds of the box after rotating it by yaw radians around the Y axis through the origin.
// The result encloses the four rotated XZ corners, so it grows for angles that are not multiples of pi/2.
func (a AABB) RotateY(yaw float32) AABB {
	if yaw == 0 {
		return a
	}
	rot := mgl32.Rotate3DY(yaw)
	corners := [4]mgl32.Vec3{
		{a.Min.X(), 0, a.Min.Z()},
		{a.Max.X(), 0, a.Min.Z()},
		{a.Min.X(), 0, a.Max.Z()},
		{a.Max.X(), 0, a.Max.Z()},
	}
	first := rot.Mul3x1(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := rot.Mul3x1(c)
		out.Min[0] = min(out.Min[0], p[0])
		out.Min[2] = min(out.Min[2], p[2])
		out.Max[0] = max(out.Max[0], p[0])
		out.Max[2] = max(out.Max[2], p[2])
	}
	out.Min[1] = a.Min.Y()
	out.Max[1] = a.Max.Y()
	return out
}

// Intersects reports whether the two boxes overlap or touch.
// Boxes that only share a face, edge or corner intersect.
func (a AABB) Intersects(b AABB) bool {
	return a.Max.X() >= b.Min.X() && a.Min.X() <= b.Max.X() &&
		a.Max.Y() >= b.Min.Y() && a.Min.Y() <= b.Max.Y() &&
		a.Max.Z() >= b.Min.Z() && a.Min.Z() <= b.Max.Z()
}

// Penetration returns the overlap depth and axis index (0=X, 1=Y, 2=Z) with the smallest overlap.
// If the boxes do not overlap with positive volume, returns (0, -1).
func (a AABB) Penetration(b AABB) (depth float32, axis int) {
	overlapX := min(a.Max.X(), b.Max.X()) - max(a.Min.X(), b.Min.X())
	overlapY := min(a.Max.Y(), b.Max.Y()) - max(a.Min.Y(), b.Min.Y())
	overlapZ := min(a.Max.Z(), b.Max.Z()) - max(a.Min.Z(), b.Min.Z())
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// ContainsPoint reports whether p lies inside or on the box.
func (a AABB) ContainsPoint(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}
