package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 200
	gridMajorEvery = 5
	wallHeight     = 2.5
	floorInset     = 0.01 // floor sits just below the grid so lines stay visible
)

var (
	floorColor = rl.NewColor(58, 60, 66, 255)
	wallColor  = rl.NewColor(150, 150, 160, 255)
)

// Shell is the static room around the furniture: floor, grid and wall outline.
type Shell struct {
	// Limit is the half-extent of the room on x and z.
	Limit float32
	// Step is the grid spacing. Zero hides the grid.
	Step float32
	// Floor is the floor height.
	Floor float32
}

// Draw renders the shell. Call inside BeginMode3D.
func (s Shell) Draw() {
	lim, y := s.Limit, s.Floor
	rl.DrawPlane(rl.NewVector3(0, y-floorInset, 0), rl.NewVector2(2*lim, 2*lim), floorColor)
	if s.Step > 0 {
		s.drawGrid()
	}

	corners := [4]rl.Vector3{
		rl.NewVector3(-lim, y, -lim),
		rl.NewVector3(lim, y, -lim),
		rl.NewVector3(lim, y, lim),
		rl.NewVector3(-lim, y, lim),
	}
	up := rl.NewVector3(0, wallHeight, 0)
	for i, c := range corners {
		next := corners[(i+1)%4]
		rl.DrawLine3D(c, next, wallColor)
		rl.DrawLine3D(rl.Vector3Add(c, up), rl.Vector3Add(next, up), wallColor)
		rl.DrawLine3D(c, rl.Vector3Add(c, up), wallColor)
	}
}

// drawGrid draws grid lines on the floor every Step units with a brighter line every
// gridMajorEvery steps, plus the x (red) and z (blue) axes through the origin.
func (s Shell) drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	lim, y := s.Limit, s.Floor
	n := int(lim / s.Step)
	var start, end rl.Vector3
	for i := -n; i <= n; i++ {
		if i == 0 {
			continue
		}
		c := minor
		if i%gridMajorEvery == 0 {
			c = major
		}
		v := float32(i) * s.Step
		start.X, start.Y, start.Z = v, y, -lim
		end.X, end.Y, end.Z = v, y, lim
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -lim, y, v
		end.X, end.Y, end.Z = lim, y, v
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-lim, y, 0), rl.NewVector3(lim, y, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, y, -lim), rl.NewVector3(0, y, lim), axisZ)
}
