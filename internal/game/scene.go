package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/camera"
	"github.com/Faultbox/gridview/internal/engine/gpu"
	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/mode"
	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/game/world"
	"github.com/Faultbox/gridview/internal/logger"
)

// ClearColor is the background behind the scene.
var ClearColor = gpu.Color{R: 0.5, G: 0.1, B: 0.5, A: 1}

// SceneConfig configures a Scene.
type SceneConfig struct {
	Width, Height int

	FovY, ZNear, ZFar float32
	Controller        camera.Settings
	World             world.Settings
	Keymap            input.Keymap
}

// Scene is the platform-free viewer core: it routes input events to the
// consumers, advances one frame per Update and draws with Render.
type Scene struct {
	camera     *camera.Camera
	uniform    *camera.Uniform
	controller *camera.Controller
	grabber    *input.MouseGrabber
	world      *world.World
	modes      *mode.Tracker
	dispatcher *input.Dispatcher

	device        gpu.Device
	uniformBuffer gpu.Buffer
	cameraGroup   gpu.BindGroup

	width, height int
	reconfigure   bool
	quit          bool

	log *zap.Logger
}

// NewScene builds a scene over uploaded models. Model 0 is the grid and
// model 1 the help panel. The scene starts on the help overlay.
func NewScene(device gpu.Device, cursor input.Cursor, models []*model.Model, cfg SceneConfig) (*Scene, error) {
	w, err := world.New(models, cfg.World)
	if err != nil {
		return nil, err
	}

	keymap := cfg.Keymap
	if keymap == nil {
		keymap = input.DefaultKeymap()
	}

	cam := camera.New(cfg.Width, cfg.Height)
	cam.Eye = cfg.Controller.Eye
	cam.Target = cfg.Controller.Target
	if cfg.FovY > 0 {
		cam.FovY = cfg.FovY
	}
	if cfg.ZNear > 0 && cfg.ZFar > cfg.ZNear {
		cam.ZNear, cam.ZFar = cfg.ZNear, cfg.ZFar
	}

	s := &Scene{
		camera:     cam,
		uniform:    camera.NewUniform(),
		controller: camera.NewController(cfg.Controller),
		grabber:    input.NewMouseGrabber(cursor),
		world:      w,
		modes:      mode.NewTracker(mode.Help),
		dispatcher: input.NewDispatcher(keymap),
		device:     device,
		width:      cfg.Width,
		height:     cfg.Height,
		log:        logger.Named("scene"),
	}

	s.uniform.Update(cam)
	s.uniformBuffer = device.CreateBuffer("camera", gpu.UsageUniform, s.uniform.Bytes())
	s.cameraGroup = device.CreateUniformBindGroup("camera", s.uniformBuffer)
	return s, nil
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera { return s.camera }

// Controller returns the camera controller.
func (s *Scene) Controller() *camera.Controller { return s.controller }

// World returns the instance world.
func (s *Scene) World() *world.World { return s.world }

// Mode returns the current viewer mode.
func (s *Scene) Mode() mode.Mode { return s.modes.Current() }

// CursorLocked reports whether the mouse is captured.
func (s *Scene) CursorLocked() bool { return s.grabber.Locked() }

// QuitRequested reports whether the user asked to leave.
func (s *Scene) QuitRequested() bool { return s.quit }

// HandleEvent routes one input event. Key transitions reach every consumer;
// the result is true if any of them handled it.
func (s *Scene) HandleEvent(e input.Event) bool {
	switch e.Type {
	case input.EventQuit:
		s.quit = true
		return true

	case input.EventWindowResize:
		s.Resize(e.Width, e.Height)
		return true

	case input.EventFocusLost:
		s.dispatcher.State().Reset()
		s.log.Debug("focus lost, input released")
		return true

	case input.EventMouseButton:
		return s.grabber.HandleEvent(e)

	case input.EventMouseMotion:
		locked := s.grabber.Locked()
		if locked {
			s.controller.MouseDelta(e.DX, e.DY, s.modes)
		}
		s.grabber.Motion()
		return locked

	case input.EventScroll:
		if !s.grabber.Locked() {
			return false
		}
		s.controller.Scroll(s.camera, e.Scroll, e.ScrollUnit, s.modes)
		return true

	case input.EventKey:
		edge, ok := s.dispatcher.Key(e)
		if !ok {
			return false
		}
		handled := s.grabber.HandleEdge(edge)
		handled = s.controller.HandleEdge(edge, s.modes) || handled
		handled = s.world.HandleEdge(edge) || handled

		// Releasing an already free cursor means leave.
		if !handled && edge.Action == input.ReleaseCursor && edge.Pressed {
			s.log.Info("quit requested")
			s.quit = true
		}
		return handled
	}
	return false
}

// Resize records a new drawable size. The surface is reconfigured on the
// next Render.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.camera.SetViewport(width, height)
	s.reconfigure = true
}

// Update advances one frame: world, then camera, then the uniform mirror.
func (s *Scene) Update() {
	state := s.dispatcher.State()
	s.world.Update(state, s.modes)
	s.controller.Update(s.camera, state, s.modes)
	s.uniform.Update(s.camera)
}

// Render draws one frame. Lost, outdated and timed-out surfaces are
// recovered here; any other error is fatal for the loop.
func (s *Scene) Render(surface gpu.Surface) error {
	if s.reconfigure {
		surface.Configure(s.width, s.height)
		s.reconfigure = false
	}

	s.device.WriteBuffer(s.uniformBuffer, 0, s.uniform.Bytes())

	frame, err := surface.Acquire()
	if err != nil {
		return s.recover(surface, err)
	}

	pass := frame.BeginPass(ClearColor)
	model.Draw(pass, s.cameraGroup, s.world.Models()...)

	if err := frame.Submit(); err != nil {
		return s.recover(surface, err)
	}
	frame.Present()
	return nil
}

func (s *Scene) recover(surface gpu.Surface, err error) error {
	switch {
	case errors.Is(err, gpu.ErrSurfaceLost), errors.Is(err, gpu.ErrSurfaceOutdated):
		s.log.Debug("reconfiguring surface", zap.Error(err),
			zap.Int("width", s.width), zap.Int("height", s.height))
		surface.Configure(s.width, s.height)
		return nil
	case errors.Is(err, gpu.ErrTimeout):
		s.log.Warn("surface timeout")
		return nil
	default:
		return fmt.Errorf("render: %w", err)
	}
}

// Close releases the scene's GPU resources and models.
func (s *Scene) Close() {
	s.cameraGroup.Release()
	s.uniformBuffer.Release()
	for _, m := range s.world.Models() {
		m.Release()
	}
}
