// Package game wires the viewer together and runs the frame loop.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/assets"
	"github.com/Faultbox/gridview/internal/config"
	"github.com/Faultbox/gridview/internal/engine/camera"
	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/engine/renderer"
	"github.com/Faultbox/gridview/internal/engine/window"
	"github.com/Faultbox/gridview/internal/game/world"
	"github.com/Faultbox/gridview/internal/logger"
)

// Game owns the platform resources and the scene.
type Game struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	files    *assets.Manager
	scene    *Scene
	log      *zap.Logger
}

// New creates the window and renderer, loads every model listed in the
// manifest and builds the scene. Any load failure is fatal.
func New(ctx context.Context, cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}

	sc, err := sceneConfig(cfg)
	if err != nil {
		return nil, err
	}

	g.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	sc.Width, sc.Height = g.window.DrawableSize()

	// Renderer must come after the window, since OpenGL context must exist
	g.renderer, err = renderer.New(g.window, sc.Width, sc.Height)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	models, err := g.loadModels(ctx)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.scene, err = NewScene(g.renderer, g.window, models, sc)
	if err != nil {
		for _, m := range models {
			m.Release()
		}
		g.Close()
		return nil, err
	}

	fields := []zap.Field{zap.Int("models", len(models))}
	if k, ok := sc.Keymap.KeyFor(input.ToggleHelp); ok {
		fields = append(fields, zap.Stringer("help_key", k))
	}
	g.log.Info("viewer initialized", fields...)
	return g, nil
}

func (g *Game) loadModels(ctx context.Context) ([]*model.Model, error) {
	start := time.Now()

	g.files = assets.NewManager(g.config.Assets.Root)
	names, err := assets.ReadManifest(g.files, g.config.Assets.Manifest)
	if err != nil {
		return nil, err
	}

	data, err := assets.LoadAll(ctx, assets.NewFileLoader(g.files), names, g.config.Assets.LoadWorkers)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}

	models := make([]*model.Model, 0, len(data))
	for _, d := range data {
		m, err := model.Upload(g.renderer, d)
		if err != nil {
			for _, m := range models {
				m.Release()
			}
			return nil, err
		}
		models = append(models, m)
	}

	// Raw bytes are on the GPU now.
	hits, misses := g.files.Stats()
	g.files.Close()

	g.log.Info("models loaded",
		zap.Strings("models", names),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
		zap.Duration("took", time.Since(start)),
	)
	return models, nil
}

// Run drives update and render until the user quits, ctx is canceled or
// rendering fails.
func (g *Game) Run(ctx context.Context) error {
	frames := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for !g.scene.QuitRequested() {
		if err := ctx.Err(); err != nil {
			g.log.Info("frame loop canceled", zap.Error(err))
			return nil
		}

		for _, e := range g.window.Poll() {
			g.scene.HandleEvent(e)
		}
		if g.scene.QuitRequested() {
			break
		}

		g.scene.Update()

		if err := g.scene.Render(g.renderer); err != nil {
			g.log.Error("render failed", zap.Error(err))
			return err
		}

		frames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			g.log.Debug("fps",
				zap.Float64("fps", float64(frames)/elapsed.Seconds()),
				zap.Int("instances", len(g.scene.World().Models()[world.GridModel].Instances())),
				zap.Stringer("mode", g.scene.Mode()),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("frame loop finished")
	return nil
}

// Close releases everything New created.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// sceneConfig translates the configuration file into scene settings.
func sceneConfig(cfg *config.Config) (SceneConfig, error) {
	keymap := input.DefaultKeymap()
	if err := keymap.Apply(cfg.Keys); err != nil {
		return SceneConfig{}, fmt.Errorf("keys: %w", err)
	}

	c := cfg.Camera
	return SceneConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FovY:   c.FovY,
		ZNear:  c.ZNear,
		ZFar:   c.ZFar,
		Controller: camera.Settings{
			Speed:       c.Speed,
			Sensitivity: c.Sensitivity,
			LookRate:    c.LookRate,
			Yaw:         c.Yaw,
			Pitch:       c.Pitch,
			Eye:         mgl32.Vec3(c.Eye),
			Target:      mgl32.Vec3(c.Target),
		},
		World: world.Settings{
			GridSize: cfg.World.GridSize,
			Spacing:  cfg.World.Spacing,
		},
		Keymap: keymap,
	}, nil
}
