// Package config loads editor preferences and backend settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jinzhu/copier"

	"room-editor/internal/placement"
)

// EditorConfigPath is the path to the editor config file, relative to the process working directory.
const EditorConfigPath = "config/editor.json"

// Editor holds the editor's persisted preferences. Zero values in the file keep the defaults.
type Editor struct {
	RoomLimit        float32 `json:"room_limit"`
	GridStep         float32 `json:"grid_step"`
	Floor            float32 `json:"floor"`
	RotateStepDeg    float32 `json:"rotate_step_deg"`
	RotateSnapDeg    float32 `json:"rotate_snap_deg"`
	BackendURL       string  `json:"backend_url"`
	Offline          bool    `json:"offline,omitempty"`
	RequestTimeoutMs int     `json:"request_timeout_ms"`
	CatalogPath      string  `json:"catalog_path"`
	ModelsDir        string  `json:"models_dir"`
	DefaultModel     string  `json:"default_model"`
	WindowWidth      int     `json:"window_width"`
	WindowHeight     int     `json:"window_height"`
	WindowTitle      string  `json:"window_title"`
	ShowFPS          bool    `json:"show_fps,omitempty"`
	// UIFont is searched for under FontsDir; raylib's built-in font is used when nothing matches.
	UIFont   string `json:"ui_font"`
	FontsDir string `json:"fonts_dir"`
	// Stylesheet optionally overrides the built-in panel theme.
	Stylesheet string `json:"stylesheet,omitempty"`
}

// DefaultEditor returns the reference room: a 9 unit half-width, unit grid, quarter-turn rotation.
func DefaultEditor() Editor {
	return Editor{
		RoomLimit:        placement.DefaultLimit,
		GridStep:         1,
		Floor:            0,
		RotateStepDeg:    90,
		RotateSnapDeg:    45,
		BackendURL:       "http://localhost:3000",
		RequestTimeoutMs: 5000,
		CatalogPath:      "config/catalog.yaml",
		ModelsDir:        "assets/models",
		DefaultModel:     "chair.glb",
		WindowWidth:      1280,
		WindowHeight:     720,
		WindowTitle:      "Room Editor",
		UIFont:           "Inter",
		FontsDir:         "assets/fonts",
	}
}

// LoadEditor reads path over the defaults and then applies environment overrides.
// A missing file is not an error. An unreadable or invalid file returns the defaults
// (with env overrides) together with the error so the caller can report it.
func LoadEditor(path string) (Editor, error) {
	cfg := DefaultEditor()
	var fileErr error
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		fileErr = fmt.Errorf("read %s: %w", path, err)
	default:
		var fromFile Editor
		if err := json.Unmarshal(data, &fromFile); err != nil {
			fileErr = fmt.Errorf("parse %s: %w", path, err)
		} else if err := copier.CopyWithOption(&cfg, &fromFile, copier.Option{IgnoreEmpty: true}); err != nil {
			fileErr = fmt.Errorf("merge %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, fileErr
}

// SaveEditor writes cfg to path, creating the directory if needed.
func SaveEditor(path string, cfg Editor) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (e *Editor) applyEnv() {
	if v := os.Getenv("ROOM_BACKEND_URL"); v != "" {
		e.BackendURL = v
	}
	if v := os.Getenv("ROOM_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 && !math.IsInf(f, 0) {
			e.RoomLimit = float32(f)
		}
	}
	if v := os.Getenv("ROOM_CATALOG"); v != "" {
		e.CatalogPath = v
	}
	if v := os.Getenv("ROOM_MODELS_DIR"); v != "" {
		e.ModelsDir = v
	}
	if v, err := strconv.ParseBool(os.Getenv("ROOM_OFFLINE")); err == nil {
		e.Offline = v
	}
}

// Rules returns the placement rules described by the config.
func (e Editor) Rules() placement.Rules {
	return placement.Rules{Limit: e.RoomLimit, Grid: e.GridStep, Floor: e.Floor}
}

// RotateStep is the yaw change of one rotate action, in radians.
func (e Editor) RotateStep() float32 {
	return e.RotateStepDeg * math.Pi / 180
}

// RotateSnap is the yaw quantum in radians.
func (e Editor) RotateSnap() float32 {
	return e.RotateSnapDeg * math.Pi / 180
}

// RequestTimeout bounds one persistence request.
func (e Editor) RequestTimeout() time.Duration {
	return time.Duration(e.RequestTimeoutMs) * time.Millisecond
}
