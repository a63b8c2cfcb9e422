package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"room-editor/internal/interaction"
	"room-editor/internal/room"
)

const (
	gizmoRingSegments = 32
	gizmoRingMargin   = 0.4
	gizmoLift         = 0.02 // keeps floor-level lines from z-fighting with the floor
)

var (
	gizmoColor   = rl.NewColor(255, 200, 40, 255)
	gizmoRotate  = rl.NewColor(80, 180, 255, 255)
	gizmoForward = rl.NewColor(220, 80, 80, 255)
)

// Gizmo outlines the selected item: its oriented model box, a facing arrow, and in rotate
// mode a ring around it on the floor. It implements selection.Gizmo.
type Gizmo struct {
	item *room.Item
	// Mode reports the active drag mode; nil draws translate mode.
	Mode func() interaction.Mode
}

// Attach starts outlining it.
func (g *Gizmo) Attach(it *room.Item) { g.item = it }

// Detach hides the outline.
func (g *Gizmo) Detach() { g.item = nil }

// Attached returns the outlined item, or nil.
func (g *Gizmo) Attached() *room.Item { return g.item }

// Draw renders the gizmo on top of the scene. Call inside BeginMode3D.
func (g *Gizmo) Draw() {
	it := g.item
	if it == nil {
		return
	}
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()

	rot := rl.MatrixRotateY(it.Yaw)
	pos := toVector(it.Position)
	lo, hi := it.Local.Min, it.Local.Max
	corners := [8]rl.Vector3{
		{X: lo[0], Y: lo[1], Z: lo[2]},
		{X: hi[0], Y: lo[1], Z: lo[2]},
		{X: hi[0], Y: lo[1], Z: hi[2]},
		{X: lo[0], Y: lo[1], Z: hi[2]},
		{X: lo[0], Y: hi[1], Z: lo[2]},
		{X: hi[0], Y: hi[1], Z: lo[2]},
		{X: hi[0], Y: hi[1], Z: hi[2]},
		{X: lo[0], Y: hi[1], Z: hi[2]},
	}
	for i := range corners {
		corners[i] = rl.Vector3Add(rl.Vector3Transform(corners[i], rot), pos)
	}
	for i := 0; i < 4; i++ {
		rl.DrawLine3D(corners[i], corners[(i+1)%4], gizmoColor)
		rl.DrawLine3D(corners[i+4], corners[(i+1)%4+4], gizmoColor)
		rl.DrawLine3D(corners[i], corners[i+4], gizmoColor)
	}

	// Facing arrow along local +z.
	base := rl.NewVector3(pos.X, pos.Y+gizmoLift, pos.Z)
	reach := hi[2] + gizmoRingMargin
	tip := rl.Vector3Add(base, rl.Vector3Transform(rl.NewVector3(0, 0, reach), rot))
	rl.DrawLine3D(base, tip, gizmoForward)
	rl.DrawSphere(tip, 0.08, gizmoForward)

	if g.Mode != nil && g.Mode() == interaction.ModeRotate {
		size := it.Local.Size()
		radius := float32(math.Hypot(float64(size[0]), float64(size[2])))/2 + gizmoRingMargin
		for s := 0; s < gizmoRingSegments; s++ {
			t0 := float64(s) / gizmoRingSegments * 2 * math.Pi
			t1 := float64(s+1) / gizmoRingSegments * 2 * math.Pi
			p0 := rl.NewVector3(pos.X+radius*float32(math.Cos(t0)), base.Y, pos.Z+radius*float32(math.Sin(t0)))
			p1 := rl.NewVector3(pos.X+radius*float32(math.Cos(t1)), base.Y, pos.Z+radius*float32(math.Sin(t1)))
			rl.DrawLine3D(p0, p1, gizmoRotate)
		}
	}

	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
}
