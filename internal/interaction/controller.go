// Package interaction turns raw pointer and keyboard events into selection changes, drags and rotations.
//
// All input is dispatched through a table keyed by (phase, event kind). A pair with no entry is ignored,
// which keeps the reachable transitions listed in one place.
package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"room-editor/internal/feedback"
	"room-editor/internal/geom"
	"room-editor/internal/physics"
	"room-editor/internal/placement"
	"room-editor/internal/room"
	"room-editor/internal/selection"
)

// Hit is one ray intersection with a renderable sub-part.
type Hit struct {
	Part     room.PartID
	Distance float32
}

// Viewpoint turns a screen position into a world-space picking ray through the active camera.
type Viewpoint interface {
	Ray(x, y float32) geom.Ray
}

// Picker casts a ray against the given sub-parts and returns the hits, nearest first.
type Picker interface {
	CastRay(r geom.Ray, candidates []room.PartID) []Hit
}

// Transformer pushes an item's position and yaw to the renderer.
type Transformer interface {
	SetTransform(it *room.Item)
}

// Orbit toggles free camera orbiting. It is suspended while a drag session exists.
type Orbit interface {
	SetOrbitEnabled(enabled bool)
}

// Deps are the collaborators of a Controller. Orbit and Log are optional.
type Deps struct {
	Registry  *room.Registry
	Selection *selection.State
	Rules     placement.Rules
	Checker   *physics.Checker
	Feedback  *feedback.Emitter
	View      Viewpoint
	Picker    Picker
	Scene     Transformer
	Orbit     Orbit
	Keymap    Keymap
	// RotateStep is the yaw change of one rotate key press (default pi/2).
	RotateStep float32
	// RotateSnap quantizes yaw after rotate drags and key presses (default pi/4).
	RotateSnap float32
	Log        logrus.FieldLogger
}

// session is an active drag. It exists only between a pointer-down on an item and the next pointer-up.
type session struct {
	item       *room.Item
	offset     mgl32.Vec3
	plane      geom.Plane
	mode       Mode
	startYaw   float32
	startAngle float32
}

type handler func(c *Controller, ev Event) Result

type transition struct {
	phase Phase
	kind  Kind
}

// dispatch is the complete transition table. Anything absent is ignored.
var dispatch = map[transition]handler{
	{Idle, PointerDown}:      (*Controller).onPointerDown,
	{Selected, PointerDown}:  (*Controller).onPointerDown,
	{Dragging, PointerMove}:  (*Controller).onDragMove,
	{Dragging, PointerUp}:    (*Controller).onDragEnd,
	{Dragging, PointerLeave}: (*Controller).onDragEnd,
	{Idle, KeyDown}:          (*Controller).onKey,
	{Selected, KeyDown}:      (*Controller).onKey,
	{Dragging, KeyDown}:      (*Controller).onKeyDuringDrag,
}

// Controller owns the input state machine of one room.
type Controller struct {
	reg    *room.Registry
	sel    *selection.State
	rules  placement.Rules
	check  *physics.Checker
	fb     *feedback.Emitter
	view   Viewpoint
	picker Picker
	scene  Transformer
	orbit  Orbit
	keys   Keymap
	step   float32
	snap   float32
	log    logrus.FieldLogger

	mode Mode
	drag *session
}

// New returns a controller in translate mode with no drag session.
func New(d Deps) *Controller {
	c := &Controller{
		reg:    d.Registry,
		sel:    d.Selection,
		rules:  d.Rules,
		check:  d.Checker,
		fb:     d.Feedback,
		view:   d.View,
		picker: d.Picker,
		scene:  d.Scene,
		orbit:  d.Orbit,
		keys:   d.Keymap,
		step:   d.RotateStep,
		snap:   d.RotateSnap,
		log:    d.Log,
	}
	if c.keys == nil {
		c.keys = DefaultKeymap()
	}
	if c.step == 0 {
		c.step = math.Pi / 2
	}
	if c.snap == 0 {
		c.snap = math.Pi / 4
	}
	if c.check == nil {
		c.check = physics.New()
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// Phase returns the state events are dispatched on.
func (c *Controller) Phase() Phase {
	switch {
	case c.drag != nil:
		return Dragging
	case c.sel.Current() != nil:
		return Selected
	default:
		return Idle
	}
}

// Handle processes one event to completion.
func (c *Controller) Handle(ev Event) Result {
	h, ok := dispatch[transition{c.Phase(), ev.Kind}]
	if !ok {
		return Ignored
	}
	return h(c, ev)
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// Mode returns the current drag mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode switches what subsequent drags do. It is ignored mid-drag and when nothing changes.
func (c *Controller) SetMode(m Mode) Result {
	if c.drag != nil || c.mode == m {
		return Ignored
	}
	c.mode = m
	c.log.WithField("mode", m).Debug("drag mode changed")
	return Handled
}

// Rotate turns the selected item by delta radians around the up axis. Its position is untouched.
func (c *Controller) Rotate(delta float32) Result {
	it := c.sel.Current()
	if it == nil {
		return Ignored
	}
	it.Yaw = placement.QuantizeYaw(it.Yaw+delta, c.snap)
	if c.drag != nil {
		c.drag.startYaw += delta
	}
	c.scene.SetTransform(it)
	c.Evaluate(it)
	return Handled
}

// Delete removes the selected item. It is refused while a drag session is active
// and ignored when nothing is selected.
func (c *Controller) Delete() Result {
	if c.drag != nil {
		c.log.Debug("delete ignored during drag")
		return Ignored
	}
	it := c.sel.Current()
	if !c.sel.Delete() {
		return Ignored
	}
	c.fb.Forget(it)
	c.EvaluateAll()
	c.log.WithFields(logrus.Fields{"item": it.ID, "model": it.Model}).Info("item deleted")
	return Handled
}

// Reset ends any drag session, keeping the item where it was last placed.
func (c *Controller) Reset() {
	if c.drag != nil {
		c.endDrag()
	}
}

// Evaluate runs the collision check for it and pushes the result to the feedback emitter.
func (c *Controller) Evaluate(it *room.Item) bool {
	colliding := c.check.Collides(it, c.reg.Items())
	c.fb.Apply(it, colliding)
	return colliding
}

// EvaluateAll re-runs Evaluate for every registered item so partners of a
// changed item drop or gain the highlight too.
func (c *Controller) EvaluateAll() {
	for _, it := range c.reg.Items() {
		c.Evaluate(it)
	}
}

func (c *Controller) onPointerDown(ev Event) Result {
	if ev.Target == TargetUI {
		return Ignored
	}
	ray := c.view.Ray(ev.X, ev.Y)
	it := c.pick(ray)
	if it == nil {
		c.sel.Deselect()
		return Handled
	}
	c.sel.Select(it)
	c.beginDrag(it, ray)
	return Handled
}

// pick returns the registered item owning the nearest hit sub-part.
func (c *Controller) pick(ray geom.Ray) *room.Item {
	var best *room.Item
	bestDist := float32(math.MaxFloat32)
	for _, h := range c.picker.CastRay(ray, c.reg.Parts()) {
		owner := c.reg.Owner(h.Part)
		if owner == nil || h.Distance >= bestDist {
			continue
		}
		best, bestDist = owner, h.Distance
	}
	return best
}

func (c *Controller) beginDrag(it *room.Item, ray geom.Ray) {
	plane := geom.FloorPlane(c.rules.Floor)
	grab, ok := ray.IntersectPlane(plane)
	if !ok {
		// Looking at the horizon: select without dragging.
		return
	}
	offset := grab.Sub(it.Position)
	offset[1] = 0
	c.drag = &session{
		item:       it,
		offset:     offset,
		plane:      plane,
		mode:       c.mode,
		startYaw:   it.Yaw,
		startAngle: angleAround(it.Position, grab),
	}
	if c.orbit != nil {
		c.orbit.SetOrbitEnabled(false)
	}
}

func (c *Controller) onDragMove(ev Event) Result {
	s := c.drag
	p, ok := c.view.Ray(ev.X, ev.Y).IntersectPlane(s.plane)
	if !ok {
		return Ignored
	}
	switch s.mode {
	case ModeRotate:
		delta := angleAround(s.item.Position, p) - s.startAngle
		s.item.Yaw = placement.QuantizeYaw(s.startYaw+delta, c.snap)
	default:
		s.item.Position = c.rules.Resolve(p.Sub(s.offset))
	}
	c.scene.SetTransform(s.item)
	c.Evaluate(s.item)
	return Handled
}

func (c *Controller) onDragEnd(ev Event) Result {
	c.endDrag()
	return Handled
}

func (c *Controller) endDrag() {
	it := c.drag.item
	c.drag = nil
	if c.orbit != nil {
		c.orbit.SetOrbitEnabled(true)
	}
	c.EvaluateAll()
	c.log.WithFields(logrus.Fields{
		"item": it.ID,
		"x":    it.Position.X(),
		"z":    it.Position.Z(),
		"yaw":  it.Yaw,
	}).Debug("drag committed")
}

func (c *Controller) onKey(ev Event) Result {
	act, ok := c.keys.Lookup(ev.Key)
	if !ok {
		return Ignored
	}
	switch act {
	case ActionRotateLeft:
		return c.Rotate(c.step)
	case ActionRotateRight:
		return c.Rotate(-c.step)
	case ActionDelete:
		return c.Delete()
	case ActionTranslateMode:
		return c.SetMode(ModeTranslate)
	case ActionRotateMode:
		return c.SetMode(ModeRotate)
	case ActionDeselect:
		if c.sel.Current() == nil {
			return Ignored
		}
		c.sel.Deselect()
		return Handled
	}
	return Ignored
}

// onKeyDuringDrag allows rotation only. Delete, mode switches and deselect wait for pointer-up.
func (c *Controller) onKeyDuringDrag(ev Event) Result {
	act, ok := c.keys.Lookup(ev.Key)
	if !ok {
		return Ignored
	}
	switch act {
	case ActionRotateLeft, ActionRotateRight:
		return c.onKey(ev)
	}
	return Ignored
}

// angleAround returns the yaw that points from center towards p, matching the sign of Item.Yaw.
func angleAround(center, p mgl32.Vec3) float32 {
	d := p.Sub(center)
	return float32(math.Atan2(float64(-d.Z()), float64(d.X())))
}
