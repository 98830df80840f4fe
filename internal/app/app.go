// Package app wires the viewer together and runs the main loop.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/morphview/internal/config"
	"github.com/Faultbox/morphview/internal/engine/camera"
	"github.com/Faultbox/morphview/internal/engine/input"
	"github.com/Faultbox/morphview/internal/engine/renderer"
	"github.com/Faultbox/morphview/internal/engine/scene"
	"github.com/Faultbox/morphview/internal/engine/window"
	"github.com/Faultbox/morphview/internal/loader"
	"github.com/Faultbox/morphview/internal/logger"
	"github.com/Faultbox/morphview/pkg/math"
	"github.com/Faultbox/morphview/pkg/morph"
	"github.com/veandco/go-sdl2/sdl"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	cloud    *scene.PointCloud

	assets    []loader.Asset
	scheduler *morph.Scheduler

	titleIndex int // shape index the window title currently shows
}

// New loads the configured models and creates the window, renderer and
// morph scheduler.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		titleIndex: -1,
	}

	// Load geometry before touching SDL so a config problem fails fast.
	assets, err := loader.LoadAll(cfg.Assets.GLBPaths, cfg.Morph.TargetSize)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}
	a.assets = assets

	a.scheduler, err = morph.New(loader.Meshes(assets), morph.Options{
		DurationTicks: cfg.Morph.DurationTicks,
		IntervalTicks: cfg.Morph.IntervalTicks,
	})
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      "MorphView",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.cloud, err = scene.NewPointCloud(assets[0].Mesh.VertexCount, cfg.Display.PointSize)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create point cloud: %w", err)
	}
	a.cloud.Upload(a.scheduler.Current())

	a.input = input.New()
	a.camera = camera.NewOrbitCamera()

	a.updateTitle()

	logger.Info("viewer initialized", zap.Int("models", len(assets)))
	return a, nil
}

// Run starts the main loop: one morph tick per rendered frame.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		frameStart := time.Now()

		if a.input.Update() {
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		if dirty := a.scheduler.Tick(); dirty {
			a.cloud.Upload(a.scheduler.Current())
		}
		a.updateTitle()

		a.renderer.Begin()
		proj := math.Perspective(float32(gomath.Pi/4), a.renderer.Aspect(), 0.1, 100.0)
		view := a.camera.ViewMatrix()
		a.cloud.Draw(view, proj)
		a.window.SwapBuffers()

		// Without VSync the swap returns immediately; pace to ~60Hz so
		// tick-based morph durations keep their meaning.
		if !a.cfg.Display.VSync {
			if elapsed := time.Since(frameStart); elapsed < 16*time.Millisecond {
				sdl.Delay(uint32((16*time.Millisecond - elapsed).Milliseconds()))
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount),
				zap.String("state", a.scheduler.State().String()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents dispatches the frame's input events.
func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventQuit:
			a.running = false

		case input.EventWindowResize:
			a.renderer.Resize(e.Width, e.Height)

		case input.EventKeyDown:
			a.handleKey(e.Key)

		case input.EventMouseMove:
			if e.Mask&sdl.ButtonLMask() != 0 {
				a.camera.HandleDrag(float32(e.RelX), float32(e.RelY))
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(e.WheelY))
		}
	}
}

// handleKey maps keyboard input to morph and viewer actions.
func (a *App) handleKey(key sdl.Scancode) {
	switch {
	case key == sdl.SCANCODE_ESCAPE:
		a.running = false

	case key == sdl.SCANCODE_SPACE:
		a.scheduler.TriggerShapeMorph()
		logger.Debug("shape morph triggered",
			zap.Int("target", a.scheduler.ActiveShapeIndex()))

	case key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9:
		idx := int(key - sdl.SCANCODE_1)
		if err := a.scheduler.TriggerViewMorph(idx); err != nil {
			logger.Debug("view morph ignored", zap.Int("index", idx), zap.Error(err))
			return
		}
		logger.Debug("view morph triggered", zap.Int("target", idx))
	}
}

// updateTitle refreshes the window title when the active shape changes.
// The vertex count shown is the model's true count, not the padded one.
func (a *App) updateTitle() {
	idx := a.scheduler.ActiveShapeIndex()
	if idx == a.titleIndex {
		return
	}
	a.titleIndex = idx
	a.window.SetTitle(fmt.Sprintf("MorphView - %s (%d vertices)",
		a.assets[idx].Name, a.scheduler.TrueVertexCount(idx)))
}

// Close releases all viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.cloud != nil {
		a.cloud.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
