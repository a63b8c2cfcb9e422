// Package editor owns one furnished room: its items, selection, input controller and
// the asynchronous persistence that saves and restores it.
//
// Everything except the persistence network calls runs on the caller's thread. Completed
// saves and loads are queued and applied by Pump, which the frame loop calls once per frame.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"room-editor/internal/catalog"
	"room-editor/internal/feedback"
	"room-editor/internal/geom"
	"room-editor/internal/interaction"
	"room-editor/internal/layout"
	"room-editor/internal/physics"
	"room-editor/internal/placement"
	"room-editor/internal/room"
	"room-editor/internal/selection"
)

// ErrUnknownModel is returned when a model id is not in the catalog.
var ErrUnknownModel = catalog.ErrUnknownModel

// Model is what the loader reports for a freshly loaded model.
type Model struct {
	// Handle is the renderer's object; the editor passes it back untouched.
	Handle any
	// Local is the scaled model-space bounding box.
	Local geom.AABB
	// Parts is the number of renderable sub-parts.
	Parts int
}

// ModelLoader loads furniture models by catalog id.
type ModelLoader interface {
	LoadModel(ctx context.Context, id string) (Model, error)
}

// Scene is the renderer as seen by the editor.
type Scene interface {
	interaction.Picker
	interaction.Transformer
	selection.Remover
	feedback.Highlighter
	AddToScene(it *room.Item)
	SetColor(it *room.Item)
}

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(msg string, failed bool)
}

// Deps are the collaborators of an Editor. Orbit, Panel, Gizmo and Notifier are optional.
type Deps struct {
	Scene    Scene
	Loader   ModelLoader
	Store    layout.Store
	View     interaction.Viewpoint
	Orbit    interaction.Orbit
	Panel    selection.Panel
	Gizmo    selection.Gizmo
	Notifier Notifier
	Log      logrus.FieldLogger
}

// Options tune an Editor. Zero values take the reference defaults.
type Options struct {
	Rules        placement.Rules
	RotateStep   float32
	RotateSnap   float32
	DefaultModel string
	// Timeout bounds each save or load request.
	Timeout time.Duration
	// Catalog supplies starting colours for new items. Nil means every item starts white.
	Catalog *catalog.Catalog
}

// Editor is one room instance.
type Editor struct {
	reg   *room.Registry
	sel   *selection.State
	fb    *feedback.Emitter
	check *physics.Checker
	ctrl  *interaction.Controller

	scene  Scene
	loader ModelLoader
	store  layout.Store
	notify Notifier
	log    logrus.FieldLogger
	opts   Options

	mu    sync.Mutex
	inbox []func()
	// spawn runs persistence calls off the caller's thread.
	spawn func(func())
}

// New builds an empty room around d.
func New(d Deps, opts Options) *Editor {
	if opts.Rules == (placement.Rules{}) {
		opts.Rules = placement.Default()
	}
	if opts.RotateStep == 0 {
		opts.RotateStep = math.Pi / 2
	}
	if opts.RotateSnap == 0 {
		opts.RotateSnap = math.Pi / 4
	}
	if opts.DefaultModel == "" {
		opts.DefaultModel = "chair.glb"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := &Editor{
		reg:    room.NewRegistry(),
		check:  physics.New(),
		scene:  d.Scene,
		loader: d.Loader,
		store:  d.Store,
		notify: d.Notifier,
		log:    log,
		opts:   opts,
		spawn:  func(f func()) { go f() },
	}
	e.fb = feedback.New(d.Scene)
	e.sel = selection.New(e.reg, d.Scene, d.Panel, d.Gizmo)
	e.ctrl = interaction.New(interaction.Deps{
		Registry:   e.reg,
		Selection:  e.sel,
		Rules:      opts.Rules,
		Checker:    e.check,
		Feedback:   e.fb,
		View:       d.View,
		Picker:     d.Scene,
		Scene:      d.Scene,
		Orbit:      d.Orbit,
		RotateStep: opts.RotateStep,
		RotateSnap: opts.RotateSnap,
		Log:        log,
	})
	return e
}

// Handle feeds one input event to the controller.
func (e *Editor) Handle(ev interaction.Event) interaction.Result {
	return e.ctrl.Handle(ev)
}

// Controller exposes the input state machine.
func (e *Editor) Controller() *interaction.Controller {
	return e.ctrl
}

// Selected returns the selected item or nil.
func (e *Editor) Selected() *room.Item {
	return e.sel.Current()
}

// Items returns the placed items in insertion order.
func (e *Editor) Items() []*room.Item {
	return e.reg.Items()
}

// Colliding reports whether it currently carries the collision highlight.
func (e *Editor) Colliding(it *room.Item) bool {
	return e.fb.Highlighted(it)
}

// Collisions returns every overlapping pair in the room.
func (e *Editor) Collisions() []physics.Pair {
	return e.check.Pairs(e.reg.Items())
}

// AddItem loads model, places it at the room origin and selects it.
// On failure nothing is registered and the error is logged and returned.
func (e *Editor) AddItem(ctx context.Context, model string) (*room.Item, error) {
	tint := uint32(0xFFFFFF)
	if e.opts.Catalog != nil {
		m, err := e.opts.Catalog.Lookup(model)
		if err != nil {
			e.log.WithFields(logrus.Fields{"model": model, "error": err}).Warn("model not in catalog")
			return nil, err
		}
		tint = m.Tint()
	}
	it, err := e.spawnItem(ctx, model)
	if err != nil {
		return nil, err
	}
	it.SetColor(tint)
	e.place(it)
	e.ctrl.EvaluateAll()
	e.sel.Select(it)
	e.log.WithFields(logrus.Fields{"item": it.ID, "model": model}).Info("item added")
	return it, nil
}

// spawnItem loads model and wraps it in an unregistered item.
func (e *Editor) spawnItem(ctx context.Context, model string) (*room.Item, error) {
	m, err := e.loader.LoadModel(ctx, model)
	if err != nil {
		e.log.WithFields(logrus.Fields{"model": model, "error": err}).Error("model load failed")
		return nil, fmt.Errorf("load %s: %w", model, err)
	}
	return room.NewItem(model, m.Handle, m.Local, m.Parts), nil
}

// place registers it and pushes its full state to the scene.
// Collision feedback is left to the caller.
func (e *Editor) place(it *room.Item) {
	it.Position = e.opts.Rules.Resolve(it.Position)
	e.reg.Add(it)
	e.scene.AddToScene(it)
	e.scene.SetTransform(it)
	e.scene.SetColor(it)
}

// Recolor tints every sub-part of the selected item.
func (e *Editor) Recolor(rgb uint32) interaction.Result {
	it := e.sel.Current()
	if it == nil {
		return interaction.Ignored
	}
	it.SetColor(rgb)
	e.scene.SetColor(it)
	return interaction.Handled
}

// RotateSelected turns the selected item one rotate step. left is counter-clockwise seen from above.
func (e *Editor) RotateSelected(left bool) interaction.Result {
	step := e.opts.RotateStep
	if !left {
		step = -step
	}
	return e.ctrl.Rotate(step)
}

// DeleteSelected removes the selected item. It is ignored while dragging or with nothing selected.
func (e *Editor) DeleteSelected() interaction.Result {
	return e.ctrl.Delete()
}

// Snapshot returns the persisted form of every item, in insertion order.
func (e *Editor) Snapshot() []layout.Record {
	return layout.Snapshot(e.reg.Items())
}

// ApplyLayout replaces the room with records. An empty layout yields one default item.
// Invalid records and models that fail to load are skipped and their errors joined
// into the result after everything loadable has been placed. If nothing could be
// placed the default item is used so the room is never left empty.
func (e *Editor) ApplyLayout(ctx context.Context, records []layout.Record) error {
	e.clear()
	if len(records) == 0 {
		records = e.defaultLayout()
	}

	errs := e.placeRecords(ctx, records)
	if e.reg.Len() == 0 && len(errs) > 0 {
		e.log.WithField("errors", len(errs)).Warn("no layout record could be restored, using the default layout")
		errs = append(errs, e.placeRecords(ctx, e.defaultLayout())...)
	}
	e.ctrl.EvaluateAll()
	e.log.WithFields(logrus.Fields{"items": e.reg.Len(), "records": len(records)}).Info("layout applied")
	return errors.Join(errs...)
}

// placeRecords places every valid, loadable record and returns the errors of the rest.
func (e *Editor) placeRecords(ctx context.Context, records []layout.Record) []error {
	var errs []error
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			e.log.WithFields(logrus.Fields{"index": i, "error": err}).Warn("skipping layout record")
			errs = append(errs, err)
			continue
		}
		it, err := e.spawnItem(ctx, rec.Model)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rec.Apply(it)
		e.place(it)
	}
	return errs
}

func (e *Editor) defaultLayout() []layout.Record {
	return []layout.Record{{Model: e.opts.DefaultModel, Color: 0xFFFFFF}}
}

// clear ends any drag, drops the selection and removes every item.
func (e *Editor) clear() {
	e.ctrl.Reset()
	e.sel.Deselect()
	for _, it := range e.reg.Items() {
		e.reg.Remove(it)
		e.scene.RemoveFromScene(it)
	}
	e.fb.Reset()
}
