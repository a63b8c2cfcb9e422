package main

import (
	"context"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"room-editor/internal/assets"
	"room-editor/internal/catalog"
	"room-editor/internal/commands"
	"room-editor/internal/config"
	"room-editor/internal/debug"
	"room-editor/internal/editor"
	"room-editor/internal/graphics"
	"room-editor/internal/interaction"
	"room-editor/internal/layout"
	"room-editor/internal/logger"
	"room-editor/internal/render"
	"room-editor/internal/terminal"
	"room-editor/internal/ui"
)

const toastTTL = 4 * time.Second

func main() {
	log, err := logger.New(logger.LogFilePath, os.Stderr)
	if err != nil {
		logrus.Fatalf("open log: %v", err)
	}
	defer log.Close()

	if err := config.LoadEnvFile(".env"); err != nil {
		log.WithError(err).Warn("read .env")
	}
	cfg, err := config.LoadEditor(config.EditorConfigPath)
	if err != nil {
		log.WithError(err).Warn("editor config invalid, using defaults")
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.WithError(err).Warn("catalog invalid, using built-in models")
		cat = catalog.Default()
	}

	var store layout.Store
	if cfg.Offline {
		store = layout.NewMemory(nil)
		log.Info("offline: layouts are kept in memory")
	} else {
		client := layout.NewClient(cfg.BackendURL, cfg.RequestTimeout())
		store = client
		log.WithField("url", client.URL()).Info("room service")
	}

	var ed *editor.Editor
	toast := ui.NewToast(toastTTL)
	eng := ui.New()
	if cfg.Stylesheet != "" {
		if err := eng.LoadCSS(cfg.Stylesheet); err != nil {
			log.WithError(err).Warn("stylesheet not loaded")
		}
	}
	panel := ui.NewPanel(cat.Palette, ui.PanelActions{
		Recolor: func(rgb uint32) { ed.Recolor(rgb) },
		Rotate:  func(left bool) { ed.RotateSelected(left) },
		Delete:  func() { ed.DeleteSelected() },
	})
	toolbar := ui.NewToolbar(cat.Models, ui.ToolbarActions{
		Add: func(model string) {
			if _, err := ed.AddItem(context.Background(), model); err != nil {
				toast.Notify(fmt.Sprintf("Could not add %s: %v", model, err), true)
			}
		},
		Save:       func() { ed.Save() },
		Load:       func() { ed.Load() },
		ToggleMode: func() { toggleMode(ed) },
	})
	eng.AddNode(toolbar.Node())
	eng.AddNode(panel.Node())
	eng.AddNode(toast.Node())

	cam := render.NewCamera(cfg.RoomLimit)
	scene := render.NewScene(render.Shell{Limit: cfg.RoomLimit, Step: cfg.GridStep, Floor: cfg.Floor}, log)
	defer scene.Unload()
	gizmo := &render.Gizmo{}

	ed = editor.New(editor.Deps{
		Scene:    scene,
		Loader:   render.NewLoader(cat, cfg.ModelsDir),
		Store:    store,
		View:     cam,
		Orbit:    cam,
		Panel:    panel,
		Gizmo:    gizmo,
		Notifier: toast,
		Log:      log,
	}, editor.Options{
		Rules:        cfg.Rules(),
		RotateStep:   cfg.RotateStep(),
		RotateSnap:   cfg.RotateSnap(),
		DefaultModel: cfg.DefaultModel,
		Timeout:      cfg.RequestTimeout(),
		Catalog:      cat,
	})
	gizmo.Mode = ed.Controller().Mode

	reg := commands.NewRegistry()
	ed.RegisterCommands(reg)
	term := terminal.New(log, reg)
	input := render.NewInput(eng.Contains)
	hud := debug.New()
	hud.ShowFPS = cfg.ShowFPS

	fontDirs := assets.SearchDirs(cfg.FontsDir)
	fontLoaded := false
	loadFont := func() {
		fontLoaded = true
		path, err := assets.Find(fontDirs, assets.FontExts, cfg.UIFont)
		if err != nil {
			log.WithField("font", cfg.UIFont).Debug("ui font not found, using default")
			return
		}
		if err := eng.LoadFont(path); err != nil {
			log.WithError(err).WithField("path", path).Warn("ui font not loaded")
			return
		}
		term.SetFont(eng.Font())
		hud.SetFont(eng.Font())
	}

	ed.Load()

	update := func() {
		if !fontLoaded {
			loadFont()
		}
		// Keys go to the editor only when the terminal was closed before and after its update.
		keys := !term.IsOpen()
		term.Update()
		for _, ev := range input.Poll(keys && !term.IsOpen()) {
			if ev.Kind == interaction.PointerDown && ev.Target == interaction.TargetUI {
				eng.Click(ev.X, ev.Y)
			}
			ed.Handle(ev)
		}
		mouse := rl.GetMousePosition()
		cam.Update(eng.Contains(mouse.X, mouse.Y))
		ed.Pump()

		toast.Update()
		panel.Sync(ed.Selected())
		if ed.Controller().Mode() == interaction.ModeRotate {
			toolbar.SetMode("Rotate")
		} else {
			toolbar.SetMode("Move")
		}
	}
	draw := func() {
		scene.Draw(cam.Camera3D(), gizmo.Draw)
		eng.Draw()
		term.Draw()
		stats := debug.Stats{
			Items:      len(ed.Items()),
			Collisions: len(ed.Collisions()),
			Mode:       ed.Controller().Mode().String(),
		}
		if it := ed.Selected(); it != nil {
			stats.Selected = it.Model
		}
		hud.Draw(stats)
	}

	graphics.Run(graphics.Window{
		Width:  cfg.WindowWidth,
		Height: cfg.WindowHeight,
		Title:  cfg.WindowTitle,
	}, update, draw)
}

func toggleMode(ed *editor.Editor) {
	ctrl := ed.Controller()
	if ctrl.Mode() == interaction.ModeRotate {
		ctrl.SetMode(interaction.ModeTranslate)
		return
	}
	ctrl.SetMode(interaction.ModeRotate)
}
