// Package window handles the SDL2 window, its OpenGL context and the
// translation of SDL events into viewer input events.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its OpenGL context. It implements
// input.Cursor and renderer.Presenter.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	events []input.Event

	// Position of a pending cursor warp whose motion event must be dropped.
	warpPending bool
	warpX       int32
	warpY       int32
}

var _ input.Cursor = (*Window)(nil)

// New creates a window with an OpenGL 4.1 core context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
		events: make([]input.Event, 0, 16),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetVisible shows or hides the cursor. A hidden cursor is also confined
// to the window.
func (w *Window) SetVisible(visible bool) {
	toggle := sdl.DISABLE
	if visible {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		w.log.Warn("show cursor failed", zap.Error(err))
	}
	w.sdlWindow.SetGrab(!visible)
}

// Center warps the cursor to the middle of the window.
func (w *Window) Center() {
	width, height := w.sdlWindow.GetSize()
	w.warpX, w.warpY = width/2, height/2
	w.warpPending = true
	w.sdlWindow.WarpMouseInWindow(w.warpX, w.warpY)
}

// Poll drains the SDL queue. The returned slice is reused by the next call.
func (w *Window) Poll() []input.Event {
	w.events = w.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := w.translate(event); ok {
			w.events = append(w.events, e)
		}
	}
	return w.events
}

func (w *Window) translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			width, height := w.DrawableSize()
			return input.Event{Type: input.EventWindowResize, Width: width, Height: height}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return input.Event{Type: input.EventFocusLost}, true
		}
		return input.Event{}, false

	case *sdl.KeyboardEvent:
		return input.Event{
			Type:    input.EventKey,
			Key:     KeyFromScancode(e.Keysym.Scancode),
			Pressed: e.Type == sdl.KEYDOWN,
			Repeat:  e.Repeat != 0,
		}, true

	case *sdl.MouseMotionEvent:
		if w.warpPending && e.X == w.warpX && e.Y == w.warpY {
			w.warpPending = false
			return input.Event{}, false
		}
		return input.Event{
			Type: input.EventMouseMotion,
			DX:   float64(e.XRel),
			DY:   float64(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		return input.Event{
			Type:    input.EventMouseButton,
			Button:  mouseButton(e.Button),
			Pressed: e.Type == sdl.MOUSEBUTTONDOWN,
		}, true

	case *sdl.MouseWheelEvent:
		delta := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		return input.Event{
			Type:       input.EventScroll,
			Scroll:     delta,
			ScrollUnit: input.ScrollLines,
		}, true
	}
	return input.Event{}, false
}

func mouseButton(b uint8) input.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	default:
		return input.ButtonNone
	}
}
