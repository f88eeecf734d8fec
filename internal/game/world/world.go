// Package world owns the instanced grid, its animations, and the help
// overlay model.
package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/mode"
	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/logger"
)

// Model slots.
const (
	GridModel = 0
	HelpModel = 1
)

const (
	minScale  = 0.5
	maxScale  = 1.0
	scaleStep = 0.01
	scaleEps  = 1e-4

	fullTurn = 360
)

// Help panel placement.
var (
	helpPosition = mgl32.Vec3{0, 0, -1}
	helpAngle    = float32(270)
)

// Settings configures a World.
type Settings struct {
	GridSize int
	Spacing  float32
}

// DefaultSettings returns a 5x5 grid three units apart.
func DefaultSettings() Settings {
	return Settings{GridSize: 5, Spacing: 3.0}
}

// World drives the instance grid on model 0 and the help panel on model 1.
type World struct {
	models []*model.Model

	gridSize int
	spacing  float32

	curAngle  float32
	curScale  float32
	spinning  bool
	resizing  bool
	upscaling bool

	recolorLatched bool
	pending        bool // regenerate on the next navigating frame
	helpPlaced     bool
	exit           mode.ExitLatch

	log *zap.Logger
}

// New creates a world over loaded models. It needs at least the grid and
// help models.
func New(models []*model.Model, s Settings) (*World, error) {
	if len(models) <= HelpModel {
		return nil, fmt.Errorf("world needs at least %d models, got %d", HelpModel+1, len(models))
	}
	if s.GridSize < 0 {
		return nil, fmt.Errorf("invalid grid size %d", s.GridSize)
	}
	return &World{
		models:   models,
		gridSize: s.GridSize,
		spacing:  s.Spacing,
		curScale: maxScale,
		pending:  true,
		log:      logger.Named("world"),
	}, nil
}

// Models returns every model in draw order.
func (w *World) Models() []*model.Model { return w.models }

// GridSize returns the current grid dimension.
func (w *World) GridSize() int { return w.gridSize }

// Angle returns the current grid rotation in degrees.
func (w *World) Angle() float32 { return w.curAngle }

// Scale returns the current instance scale.
func (w *World) Scale() float32 { return w.curScale }

// Spinning reports whether the spin animation is on.
func (w *World) Spinning() bool { return w.spinning }

// Resizing reports whether the scale animation is on.
func (w *World) Resizing() bool { return w.resizing }

// HandleEdge claims the world's actions. Spin and resize toggle on press;
// grow, shrink and recolor are read from the input state each frame.
func (w *World) HandleEdge(edge input.Edge) bool {
	switch edge.Action {
	case input.ToggleSpin:
		if edge.Pressed {
			w.spinning = !w.spinning
			w.log.Debug("spin toggled", zap.Bool("on", w.spinning))
		}
		return true
	case input.ToggleResize:
		if edge.Pressed {
			w.resizing = !w.resizing
			w.log.Debug("resize toggled", zap.Bool("on", w.resizing))
		}
		return true
	case input.GrowGrid, input.ShrinkGrid, input.Recolor:
		return true
	default:
		return false
	}
}

// Update advances animations by one frame and regenerates the grid when
// anything visible changed. Nothing moves while the help overlay is up.
func (w *World) Update(state *input.State, modes *mode.Tracker) {
	if modes.Navigating() {
		w.animate(state)
	}
	w.overlay(modes)
}

func (w *World) animate(state *input.State) {
	changed := w.pending
	w.pending = false

	if state.Held(input.GrowGrid) {
		w.gridSize++
		changed = true
	}
	if state.Held(input.ShrinkGrid) && w.gridSize > 0 {
		w.gridSize--
		changed = true
	}

	if w.spinning {
		w.curAngle += SpinStep(w.gridSize)
		if w.curAngle >= fullTurn {
			w.curAngle -= fullTurn
		}
		changed = true
	}

	if state.Held(input.Recolor) {
		if !w.recolorLatched {
			w.recolorLatched = true
			w.models[GridModel].ChangeMaterial()
			changed = true
		}
	} else {
		w.recolorLatched = false
	}

	if w.resizing {
		w.stepScale()
		changed = true
	}

	if changed {
		w.models[GridModel].SetInstances(GenerateGrid(w.gridSize, w.spacing, w.curAngle, w.curScale))
		w.log.Debug("grid regenerated",
			zap.Int("size", w.gridSize),
			zap.Int("instances", w.gridSize*w.gridSize),
		)
	}
}

func (w *World) stepScale() {
	if w.upscaling {
		w.curScale += scaleStep
		if w.curScale >= maxScale-scaleEps {
			w.curScale = maxScale
			w.upscaling = false
		}
		return
	}
	w.curScale -= scaleStep
	if w.curScale <= minScale+scaleEps {
		w.curScale = minScale
		w.upscaling = true
	}
}

func (w *World) overlay(modes *mode.Tracker) {
	grid, help := w.models[GridModel], w.models[HelpModel]

	if !modes.Navigating() {
		if !w.helpPlaced {
			help.SetInstances([]model.Instance{{
				Position: helpPosition,
				Rotation: model.ZRotation(helpAngle),
				Scale:    1,
			}})
			w.helpPlaced = true
		}
		grid.Visible = false
		help.Visible = true
		return
	}

	if w.exit.Consume(modes) {
		help.Visible = false
		grid.Visible = true
		w.helpPlaced = false
	}
}
